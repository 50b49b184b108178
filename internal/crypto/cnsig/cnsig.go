// Package cnsig implements CryptoNote Schnorr signatures over a 32-byte message hash:
// c = Hs(h || P || k*G), r = k - c*x.
package cnsig

import (
	"errors"
	"fmt"
	"io"

	"filippo.io/edwards25519"

	"github.com/seraphis-project/spcrypto/internal/codec"
	"github.com/seraphis-project/spcrypto/internal/crypto/curve"
	"github.com/seraphis-project/spcrypto/internal/crypto/hash"
)

const Size = 2 * curve.KeySize

var ErrKeyMismatch = errors.New("secret key does not match public key")

type Signature struct {
	C curve.Key
	R curve.Key
}

var _ codec.Codec[*Signature] = &Signature{}

// Sign signs prefixHash with the secret key sec, whose public key is pub.
func Sign(prefixHash hash.Hash, pub curve.Key, sec curve.SecretKey, rand io.Reader) (*Signature, error) {
	x, err := sec.Scalar()
	if err != nil {
		return nil, err
	}
	defer x.Set(edwards25519.NewScalar())
	if curve.ScalarBaseMultKey(x) != pub {
		return nil, ErrKeyMismatch
	}

	for {
		k, err := curve.RandomScalar(rand)
		if err != nil {
			return nil, fmt.Errorf("failed to sample signature nonce: %w", err)
		}
		c := challenge(prefixHash, pub, curve.ScalarBaseMultKey(k))
		r := edwards25519.NewScalar().Negate(c)
		r.MultiplyAdd(r, x, k)
		k.Set(edwards25519.NewScalar())
		if curve.IsZeroScalar(c) || curve.IsZeroScalar(r) {
			continue
		}
		return &Signature{curve.KeyFromScalar(c), curve.KeyFromScalar(r)}, nil
	}
}

// Verify reports whether sig is a valid signature of prefixHash under pub.
func Verify(prefixHash hash.Hash, pub curve.Key, sig *Signature) bool {
	if sig == nil {
		return false
	}
	p, err := curve.Decompress(pub)
	if err != nil {
		return false
	}
	c, err := curve.ScalarFromKey(sig.C)
	if err != nil || curve.IsZeroScalar(c) {
		return false
	}
	r, err := curve.ScalarFromKey(sig.R)
	if err != nil {
		return false
	}

	// c*P + r*G
	comm := edwards25519.NewIdentityPoint().VarTimeDoubleScalarBaseMult(c, p, r)
	if curve.IsIdentity(comm) {
		return false
	}
	expected := challenge(prefixHash, pub, curve.KeyFromPoint(comm))
	return expected.Equal(c) == 1
}

func challenge(prefixHash hash.Hash, pub, comm curve.Key) *curve.Scalar {
	return hash.KeccakToScalar(prefixHash[:], pub[:], comm[:])
}

func (s *Signature) MarshalTo(target codec.Target) {
	target.WriteKey(s.C)
	target.WriteKey(s.R)
}

func (s *Signature) UnmarshalFrom(source codec.Source) *Signature {
	return &Signature{source.ReadKey(), source.ReadKey()}
}
