package codec

import "fmt"

// High level type definitions for the codec package.
// Use the codec.Marshal(...) and codec.Unmarshal(...) functions for marshaling and unmarshaling.
//
// Integers and lengths are written as unsigned LEB128 varints, the same encoding CryptoNote binary archives use.
// Keys (points and scalars) are written as their raw 32-byte encodings.
//
// The codec.Unmarshal(...) and codec.UnmarshalUsing(...) functions always recover from panics during unmarshaling.

// KeySize is the encoded size of a point or scalar.
const KeySize = 32

// MaxVarintLen is the maximum number of bytes a 64-bit varint occupies.
const MaxVarintLen = 10

type Marshaler interface {
	MarshalTo(target Target)
}

type Unmarshaler[T any] interface {
	UnmarshalFrom(source Source) T
}

type Codec[T any] interface {
	Marshaler
	Unmarshaler[T]
}

type Target = *target
type Source = *source

// NewSource wraps data for reading. The slice is not copied.
func NewSource(data []byte) Source {
	return &source{data}
}

// NewTarget returns an empty target, optionally with preallocated capacity.
func NewTarget(capacity int) Target {
	return &target{make([]byte, 0, capacity)}
}

// Marshals the given (non-nil) object into a byte slice.
// Panics during marshaling are recovered and returned as errors.
func Marshal(object Marshaler) ([]byte, error) {
	target := &target{}
	err := target.Marshal(object)
	if err != nil {
		return nil, err
	}
	return target.buffer, nil
}

// Unmarshal the given byte slice into a new instance of type T. Panics during unmarshaling are recovered and returned
// as errors. Additionally, this function also checks that all input bytes are consumed during unmarshaling, returning
// an error if any non-read bytes remain.
func Unmarshal[T any](data []byte, unmarshaler Unmarshaler[T]) (T, error) {
	return UnmarshalUsing(data, unmarshaler.UnmarshalFrom)
}

// Unmarshal the given byte slice into a new instance of type T. The unmarshaling is implemented by the provided
// function. This a wrapper to ensure panics during unmarshaling are recovered and returned as errors. Additionally,
// this function also checks that all input bytes are consumed during unmarshaling, returning an error if any non-read
// bytes remain.
func UnmarshalUsing[T any](data []byte, unmarshalFunc func(Source) T) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result, err = zero, fmt.Errorf("recovered panic while unmarshaling: %v", r)
		}
	}()

	src := &source{data}
	result = unmarshalFunc(src)

	if src.Available() > 0 {
		var zero T
		return zero, fmt.Errorf(
			"unmarshaling did not consume all bytes, %d bytes remaining", src.Available(),
		)
	}
	return result, nil
}

// Read the next object of type T from the given source using the provided unmarshaler. Panics during unmarshaling are
// recovered and returned as errors. Additional data remaining in the source after unmarshaling is not considered an
// error.
func UnmarshalFromSource[T any](source Source, obj Unmarshaler[T]) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered panic while unmarshaling: %v", r)
		}
	}()
	return obj.UnmarshalFrom(source), nil
}

// ReadKeys reads a varint-prefixed vector of 32-byte keys.
func ReadKeys[K ~[KeySize]byte](s Source) []K {
	return ReadKeysN[K](s, s.ReadLength(KeySize))
}

// ReadKeysN reads n raw 32-byte keys whose count is known from context.
func ReadKeysN[K ~[KeySize]byte](s Source, n int) []K {
	if n < 0 || n > s.Available()/KeySize {
		panic(fmt.Sprintf("ReadKeysN called for %d keys, but only %d bytes available", n, s.Available()))
	}
	keys := make([]K, n)
	for i := range keys {
		s.ReadBytesInto(keys[i][:])
	}
	return keys
}

// WriteKeys writes a varint count followed by the raw keys.
func WriteKeys[K ~[KeySize]byte](t Target, keys []K) {
	t.WriteVarint(uint64(len(keys)))
	WriteKeysN(t, keys)
}

// WriteKeysN writes the raw keys without a count; the reader must know it from context.
func WriteKeysN[K ~[KeySize]byte](t Target, keys []K) {
	for i := range keys {
		t.WriteBytes(keys[i][:])
	}
}
