package codec

import (
	"encoding/binary"
	"fmt"
)

type target struct {
	buffer []byte
}

func (t *target) Written() int {
	return len(t.buffer)
}

// Bytes returns the bytes written so far. The slice aliases the target's buffer.
func (t *target) Bytes() []byte {
	return t.buffer
}

// Marshals the given object into the this target. Panics, which may be raised by the marshaling of child objects,
// are recovered and returned as errors. To propagate (i.e., not catch) the panic use target.Write(...) instead.
func (t *target) Marshal(object Marshaler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered panic during marshaling: %v", r)
		}
	}()

	t.Write(object)
	return nil
}

// Write the given object into this target. This is just an alias for object.MarshalTo(target). The given object must
// not be nil. Panics raised during marshaling are NOT recovered and must be handled by the caller.
func (t *target) Write(object Marshaler) {
	if object == nil {
		panic("Write called with nil object")
	}
	object.MarshalTo(t)
}

// WriteVarint appends value as an unsigned LEB128 varint.
func (t *target) WriteVarint(value uint64) {
	t.buffer = binary.AppendUvarint(t.buffer, value)
}

func (t *target) WriteBool(value bool) {
	if value {
		t.buffer = append(t.buffer, 1)
	} else {
		t.buffer = append(t.buffer, 0)
	}
}

func (t *target) WriteBytes(value []byte) {
	t.buffer = append(t.buffer, value...)
}

func (t *target) WriteKey(key [KeySize]byte) {
	t.buffer = append(t.buffer, key[:]...)
}

func (t *target) WriteLengthPrefixedBytes(value []byte) {
	t.WriteVarint(uint64(len(value)))
	t.WriteBytes(value)
}

func (t *target) WriteString(value string) {
	t.WriteVarint(uint64(len(value)))
	t.buffer = append(t.buffer, value...)
}
