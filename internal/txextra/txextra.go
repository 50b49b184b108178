// Package txextra encodes the tx extra field: a sorted list of typed elements, each written as
// varint(type) || varint(length) || value.
package txextra

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/seraphis-project/spcrypto/internal/codec"
	"github.com/seraphis-project/spcrypto/internal/config"
)

var ErrMalformed = errors.New("malformed tx extra")

// TxExtra is an encoded tx extra field.
type TxExtra []byte

type Element struct {
	Type  uint64
	Value []byte
}

var _ codec.Marshaler = Element{}

// Compare orders elements by type, then by value length, then by value bytes.
func Compare(a, b Element) int {
	if c := cmp.Compare(a.Type, b.Type); c != 0 {
		return c
	}
	if c := cmp.Compare(len(a.Value), len(b.Value)); c != 0 {
		return c
	}
	return bytes.Compare(a.Value, b.Value)
}

func (e Element) Less(other Element) bool {
	return Compare(e, other) < 0
}

func (e Element) MarshalTo(target codec.Target) {
	target.WriteVarint(e.Type)
	target.WriteLengthPrefixedBytes(e.Value)
}

// tryReadElement reads one element. On failure the source may be partially consumed.
func tryReadElement(s codec.Source) (Element, bool) {
	t, ok := s.TryReadVarint()
	if !ok {
		return Element{}, false
	}
	length, ok := s.TryReadVarint()
	if !ok || length > uint64(s.Available()) {
		return Element{}, false
	}
	value := s.ReadBytes(int(length))
	return Element{t, bytes.Clone(value)}, true
}

// Make sorts a copy of elements and encodes them.
func Make(elements []Element) TxExtra {
	sorted := slices.Clone(elements)
	slices.SortStableFunc(sorted, Compare)

	size := 0
	for _, e := range sorted {
		size += 2*binary.MaxVarintLen64 + len(e.Value)
	}
	t := codec.NewTarget(size)
	for _, e := range sorted {
		t.Write(e)
	}
	return TxExtra(t.Bytes())
}

// Parse decodes a tx extra field. The field must consist of complete elements only, in sorted order.
func Parse(extra TxExtra) ([]Element, error) {
	s := codec.NewSource(extra)
	var elements []Element
	for s.Available() > 0 {
		e, ok := tryReadElement(s)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is truncated", ErrMalformed, len(elements))
		}
		elements = append(elements, e)
	}
	if !slices.IsSortedFunc(elements, Compare) {
		return nil, fmt.Errorf("%w: elements are not sorted", ErrMalformed)
	}
	return elements, nil
}

// Accumulate appends the elements of add to elements.
func Accumulate(elements []Element, add []Element) []Element {
	return append(slices.Grow(elements, len(add)), add...)
}

// AccumulateFromExtra parses a partial tx extra and appends its elements to elements.
func AccumulateFromExtra(elements []Element, partial TxExtra) ([]Element, error) {
	add, err := Parse(partial)
	if err != nil {
		return elements, fmt.Errorf("cannot accumulate tx extra elements: %w", err)
	}
	return Accumulate(elements, add), nil
}

// Random returns an element with a random type and a random value of at most config.MaxTxExtraRandomFieldSize bytes.
func Random(rand io.Reader) (Element, error) {
	var buf [9]byte
	for {
		if _, err := io.ReadFull(rand, buf[:]); err != nil {
			return Element{}, err
		}
		// uniform length in [0, max]
		const span = config.MaxTxExtraRandomFieldSize + 1
		if int(buf[8]) >= 256-256%span {
			continue
		}
		e := Element{
			Type:  binary.LittleEndian.Uint64(buf[:8]),
			Value: make([]byte, int(buf[8])%span),
		}
		if _, err := io.ReadFull(rand, e.Value); err != nil {
			return Element{}, err
		}
		return e, nil
	}
}
