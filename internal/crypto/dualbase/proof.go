// Package dualbase implements the dual base vector proof: a proof of knowledge of scalars k_i such that
// V1_i = k_i * G1 and V2_i = k_i * G2 for two bases G1, G2 and every i, aggregated into a single Schnorr challenge.
//
// Proof keys are stored multiplied by (1/8). Verification multiplies them by 8 first, so that a proof never vouches
// for a point with a torsion component.
package dualbase

import (
	"errors"
	"fmt"

	"github.com/seraphis-project/spcrypto/internal/codec"
	"github.com/seraphis-project/spcrypto/internal/crypto/curve"
	"github.com/seraphis-project/spcrypto/internal/crypto/transcript"
)

var ErrInvalidInput = errors.New("invalid dual base vector proof input")

// Proof is a dual base vector proof for n keys. M is the message the proof is bound to, C the challenge, R the
// response, and V1, V2 the proof keys (1/8) * k_i * G1 and (1/8) * k_i * G2.
type Proof struct {
	M  curve.Key
	C  curve.Key
	R  curve.Key
	V1 []curve.Key
	V2 []curve.Key
}

var _ codec.Marshaler = &Proof{}
var _ transcript.Appender = &Proof{}

// Size returns the encoded size of a proof for n keys.
func Size(n int) int {
	return (3 + 2*n) * curve.KeySize
}

// NumKeys returns the number of keys the proof is for. It is only meaningful for proofs that are well-formed, i.e.
// where len(V1) == len(V2).
func (p *Proof) NumKeys() int {
	return len(p.V1)
}

// MarshalTo writes m || c || r || V1 || V2. The number of keys is not encoded; the reader must know it.
func (p *Proof) MarshalTo(target codec.Target) {
	if len(p.V1) != len(p.V2) {
		panic(fmt.Sprintf("cannot marshal proof with %d V1 keys and %d V2 keys", len(p.V1), len(p.V2)))
	}
	target.WriteKey(p.M)
	target.WriteKey(p.C)
	target.WriteKey(p.R)
	codec.WriteKeysN(target, p.V1)
	codec.WriteKeysN(target, p.V2)
}

// UnmarshalProof decodes a proof for n keys from data, which must contain exactly Size(n) bytes.
func UnmarshalProof(data []byte, n int) (*Proof, error) {
	return codec.UnmarshalUsing(data, func(s codec.Source) *Proof {
		return unmarshalProof(s, n)
	})
}

func unmarshalProof(s codec.Source, n int) *Proof {
	if n <= 0 {
		panic(fmt.Sprintf("cannot unmarshal proof for %d keys", n))
	}
	p := &Proof{}
	p.M = s.ReadKey()
	p.C = s.ReadKey()
	p.R = s.ReadKey()
	p.V1 = codec.ReadKeysN[curve.Key](s, n)
	p.V2 = codec.ReadKeysN[curve.Key](s, n)
	return p
}

// ReadProof reads a proof for n keys from a source that may hold further data.
func ReadProof(s codec.Source, n int) (*Proof, error) {
	return codec.UnmarshalFromSource[*Proof](s, proofReader(n))
}

type proofReader int

func (n proofReader) UnmarshalFrom(s codec.Source) *Proof {
	return unmarshalProof(s, int(n))
}

func (p *Proof) AppendToTranscript(b *transcript.Builder) {
	b.AppendKey("m", p.M)
	b.AppendKey("c", p.C)
	b.AppendKey("r", p.R)
	b.AppendKeys("V_1", p.V1)
	b.AppendKeys("V_2", p.V2)
}
