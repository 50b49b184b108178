package codec

import (
	"encoding/binary"
	"fmt"
)

// Internal representation for a source of bytes to be unmarshaled. The buffer slice is modified during reading.
type source struct {
	buffer []byte
}

// Available returns the number of bytes that are still available for reading from the source.
func (s *source) Available() int {
	return len(s.buffer)
}

// ReadVarint reads an unsigned LEB128 varint from the source.
// It panics if the source ends before the varint does, if the value overflows 64 bits, or if the encoding is not the
// shortest one for its value.
func (s *source) ReadVarint() uint64 {
	value, n := binary.Uvarint(s.buffer)
	if n == 0 {
		panic("ReadVarint called, but the source ends inside the varint")
	}
	if n < 0 {
		panic("ReadVarint call failed, varint overflows 64 bits")
	}
	if n != varintSize(value) {
		panic("ReadVarint call failed, varint is not canonically encoded")
	}
	s.buffer = s.buffer[n:]
	return value
}

// TryReadVarint is the non-panicking variant of ReadVarint. On failure, the source is left unchanged.
func (s *source) TryReadVarint() (uint64, bool) {
	value, n := binary.Uvarint(s.buffer)
	if n <= 0 || n != varintSize(value) {
		return 0, false
	}
	s.buffer = s.buffer[n:]
	return value, true
}

// varintSize returns the length of the shortest LEB128 encoding of value.
func varintSize(value uint64) int {
	var buf [binary.MaxVarintLen64]byte
	return len(binary.AppendUvarint(buf[:0], value))
}

// ReadLength reads a varint length and checks that at least minElementSize * length bytes remain, so that a hostile
// length prefix cannot trigger a huge allocation.
func (s *source) ReadLength(minElementSize int) int {
	length := s.ReadVarint()
	if minElementSize > 0 && length > uint64(len(s.buffer)/minElementSize) {
		panic(fmt.Sprintf("ReadLength call failed, length %d exceeds the %d bytes available", length, len(s.buffer)))
	}
	return int(length)
}

// ReadBool reads a boolean value from the source.
// It panics if not enough bytes are available in the source.
func (s *source) ReadBool() bool {
	if len(s.buffer) < 1 {
		panic("ReadBool called on empty source buffer")
	}
	value := s.buffer[0] != 0
	s.buffer = s.buffer[1:]
	return value
}

// ReadBytes reads a specified number of bytes from the source. Its returns a slice of the source's buffer without
// creating a copy. Consider using ReadBytesInto if the result outlives the source.
func (s *source) ReadBytes(length int) []byte {
	if length < 0 || len(s.buffer) < length {
		panic(fmt.Sprintf("ReadBytes called with length %d, but only %d bytes available", length, len(s.buffer)))
	}
	value := s.buffer[:length:length] // limit cap(value) to prevent overwriting the source's buffer on append
	s.buffer = s.buffer[length:]
	return value
}

// ReadBytesInto reads from the source to fill the provided buffer.
// It panics if not enough bytes are available in the source.
func (s *source) ReadBytesInto(buffer []byte) {
	if len(s.buffer) < len(buffer) {
		panic(fmt.Sprintf("ReadBytesInto called with buffer length %d, but only %d bytes available", len(buffer), len(s.buffer)))
	}
	copy(buffer, s.buffer[:len(buffer)])
	s.buffer = s.buffer[len(buffer):]
}

// ReadKey reads a raw 32-byte key.
func (s *source) ReadKey() [KeySize]byte {
	var key [KeySize]byte
	s.ReadBytesInto(key[:])
	return key
}

// ReadLengthPrefixedBytes reads a varint length followed by that many bytes, returning a copy.
func (s *source) ReadLengthPrefixedBytes() []byte {
	length := s.ReadLength(1)
	value := make([]byte, length)
	s.ReadBytesInto(value)
	return value
}

// ReadString reads a varint-prefixed string from the source.
func (s *source) ReadString() string {
	return string(s.ReadBytes(s.ReadLength(1)))
}
