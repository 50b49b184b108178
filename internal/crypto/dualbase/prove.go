package dualbase

import (
	"fmt"
	"io"

	"filippo.io/edwards25519"

	"github.com/seraphis-project/spcrypto/internal/crypto/curve"
)

// Prove creates a proof for the keys k_i with V1_i = (1/8) * k_i * G1 and V2_i = (1/8) * k_i * G2, bound to
// message. Every key must be nonzero and canonical. rand is the source of the proof nonce.
//
// Invalid caller input is reported as an error wrapping ErrInvalidInput.
func Prove(message, g1, g2 curve.Key, privkeys []curve.SecretKey, rand io.Reader) (*Proof, error) {
	n := len(privkeys)
	if n == 0 {
		return nil, fmt.Errorf("%w: no keys to prove", ErrInvalidInput)
	}
	base1, err := newBase(g1)
	if err != nil {
		return nil, err
	}
	base2, err := newBase(g2)
	if err != nil {
		return nil, err
	}

	k := make([]*curve.Scalar, n)
	defer wipe(k)

	proof := &Proof{
		M:  message,
		V1: make([]curve.Key, n),
		V2: make([]curve.Key, n),
	}
	v1Mul8 := make([]curve.Key, n)
	v2Mul8 := make([]curve.Key, n)

	kInv8 := edwards25519.NewScalar()
	defer kInv8.Set(edwards25519.NewScalar())
	for i, privkey := range privkeys {
		if k[i], err = privkey.Scalar(); err != nil {
			return nil, fmt.Errorf("%w: key %d: %w", ErrInvalidInput, i, err)
		}
		if curve.IsZeroScalar(k[i]) {
			return nil, fmt.Errorf("%w: key %d is zero", ErrInvalidInput, i)
		}
		kInv8.Multiply(k[i], curve.InvEight)

		p1 := base1.mul(kInv8)
		p2 := base2.mul(kInv8)
		proof.V1[i] = curve.KeyFromPoint(p1)
		proof.V2[i] = curve.KeyFromPoint(p2)

		p1 = curve.Mul8(p1)
		p2 = curve.Mul8(p2)
		if curve.IsIdentity(p1) || curve.IsIdentity(p2) {
			return nil, fmt.Errorf("%w: proof key %d is the identity", ErrInvalidInput, i)
		}
		v1Mul8[i] = curve.KeyFromPoint(p1)
		v2Mul8[i] = curve.KeyFromPoint(p2)
	}

	// signature openers alpha * G1, alpha * G2
	alpha, err := curve.RandomScalar(rand)
	if err != nil {
		return nil, fmt.Errorf("failed to sample proof nonce: %w", err)
	}
	defer alpha.Set(edwards25519.NewScalar())
	a1 := curve.KeyFromPoint(base1.mul(alpha))
	a2 := curve.KeyFromPoint(base2.mul(alpha))

	mu := aggregationCoefficient(message, g1, g2, v1Mul8, v2Mul8)
	m := challengeMessage(mu)
	c := challenge(m, a1, a2)

	// r = alpha - c * sum_i(mu^i * k_i)
	sum := edwards25519.NewScalar()
	defer sum.Set(edwards25519.NewScalar())
	for i, muPow := range curve.PowersOfScalar(mu, n) {
		sum.MultiplyAdd(muPow, k[i], sum)
	}
	negC := edwards25519.NewScalar().Negate(c)
	r := edwards25519.NewScalar().MultiplyAdd(negC, sum, alpha)

	proof.C = curve.KeyFromScalar(c)
	proof.R = curve.KeyFromScalar(r)
	return proof, nil
}

func wipe(scalars []*curve.Scalar) {
	for _, s := range scalars {
		if s != nil {
			s.Set(edwards25519.NewScalar())
		}
	}
}
