// Package transcript builds the byte strings that are hashed to derive Fiat-Shamir challenges and signing messages.
//
// Values are appended in order; vectors and strings carry a varint length prefix so that the encoding is unique.
// In ModeFull every value is preceded by its label and a one-byte type flag, in ModeSimple only the values are
// written. Fiat-Shamir transcripts (NewFS) use ModeSimple and always start with the protocol prefix followed by a
// domain separator.
package transcript

import (
	"github.com/seraphis-project/spcrypto/internal/codec"
	"github.com/seraphis-project/spcrypto/internal/config"
	"github.com/seraphis-project/spcrypto/internal/crypto/curve"
)

type Mode int

const (
	ModeFull Mode = iota
	ModeSimple
)

type objType byte

const (
	_ objType = iota
	objTypeLabel
	objTypeBytes
	objTypeString
	objTypeUint
	objTypeKey
	objTypeScalar
	objTypeList
	objTypeObject
)

// Appender is implemented by composite values that know how to append themselves to a transcript.
type Appender interface {
	AppendToTranscript(b *Builder)
}

type Builder struct {
	mode   Mode
	target codec.Target
}

func NewBuilder(estimatedSize int, mode Mode) *Builder {
	return &Builder{mode, codec.NewTarget(estimatedSize)}
}

// NewFS returns a Fiat-Shamir transcript: prefix || domain separator || [appended values].
func NewFS(domainSeparator string, estimatedSize int) *Builder {
	b := NewBuilder(2*len(config.TranscriptPrefix)+len(domainSeparator)+estimatedSize+15, ModeSimple)
	b.AppendString("FSp", config.TranscriptPrefix)
	b.AppendString("ds", domainSeparator)
	return b
}

// Data returns the transcript bytes. The slice aliases the builder's buffer and must not be modified.
func (b *Builder) Data() []byte {
	return b.target.Bytes()
}

func (b *Builder) Size() int {
	return b.target.Written()
}

func (b *Builder) appendLabel(label string) {
	if b.mode == ModeSimple || label == "" {
		return
	}
	b.target.WriteString(label)
}

func (b *Builder) appendFlag(t objType) {
	if b.mode == ModeSimple {
		return
	}
	b.target.WriteBytes([]byte{byte(t)})
}

func (b *Builder) AppendBytes(label string, data []byte) {
	b.appendLabel(label)
	b.appendFlag(objTypeBytes)
	b.target.WriteLengthPrefixedBytes(data)
}

func (b *Builder) AppendString(label string, s string) {
	b.appendLabel(label)
	b.appendFlag(objTypeString)
	b.target.WriteString(s)
}

// AppendUint64 appends v as a varint.
func (b *Builder) AppendUint64(label string, v uint64) {
	b.appendLabel(label)
	b.appendFlag(objTypeUint)
	b.target.WriteVarint(v)
}

func (b *Builder) AppendKey(label string, k curve.Key) {
	b.appendLabel(label)
	b.appendFlag(objTypeKey)
	b.target.WriteKey(k)
}

func (b *Builder) AppendScalar(label string, s *curve.Scalar) {
	b.appendLabel(label)
	b.appendFlag(objTypeScalar)
	b.target.WriteKey(curve.KeyFromScalar(s))
}

func (b *Builder) AppendKeys(label string, keys []curve.Key) {
	b.appendLabel(label)
	b.appendFlag(objTypeList)
	b.target.WriteVarint(uint64(len(keys)))
	for _, k := range keys {
		b.AppendKey("", k)
	}
}

func (b *Builder) Append(label string, a Appender) {
	b.appendLabel(label)
	b.appendFlag(objTypeObject)
	a.AppendToTranscript(b)
}
