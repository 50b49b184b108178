package dualbase

import (
	"filippo.io/edwards25519"

	"github.com/seraphis-project/spcrypto/internal/crypto/curve"
	"github.com/seraphis-project/spcrypto/internal/logger"
)

var log = logger.New("dualbase")

// Verify reports whether proof is a valid proof for the bases G1 and G2. It returns false for any malformed proof and
// never panics.
func Verify(proof *Proof, g1, g2 curve.Key) (valid bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("proof verification aborted", logger.Fields{"reason": r})
			valid = false
		}
	}()

	if proof == nil {
		return false
	}
	n := len(proof.V1)
	if n == 0 || n != len(proof.V2) {
		return false
	}
	r, err := curve.ScalarFromKey(proof.R)
	if err != nil || curve.IsZeroScalar(r) {
		return false
	}
	c, err := curve.ScalarFromKey(proof.C)
	if err != nil {
		return false
	}
	p1, err := curve.Decompress(g1)
	if err != nil {
		return false
	}
	p2, err := curve.Decompress(g2)
	if err != nil {
		return false
	}

	// recover the cofactor-cleared proof keys
	v1Mul8, v1Points, ok := mul8All(proof.V1)
	if !ok {
		return false
	}
	v2Mul8, v2Points, ok := mul8All(proof.V2)
	if !ok {
		return false
	}

	mu := aggregationCoefficient(proof.M, g1, g2, v1Mul8, v2Mul8)
	m := challengeMessage(mu)

	// A1' = r * G1 + sum_i(c * mu^i * 8 * V1_i), A2' likewise
	scalars := make([]*curve.Scalar, n+1)
	scalars[0] = r
	for i, muPow := range curve.PowersOfScalar(mu, n) {
		scalars[i+1] = edwards25519.NewScalar().Multiply(c, muPow)
	}
	a1 := curve.VarTimeMultiScalarMult(scalars, append([]*curve.Point{p1}, v1Points...))
	a2 := curve.VarTimeMultiScalarMult(scalars, append([]*curve.Point{p2}, v2Points...))

	expected := challenge(m, curve.KeyFromPoint(a1), curve.KeyFromPoint(a2))
	return expected.Equal(c) == 1
}

func mul8All(keys []curve.Key) ([]curve.Key, []*curve.Point, bool) {
	encoded := make([]curve.Key, len(keys))
	points := make([]*curve.Point, len(keys))
	for i, k := range keys {
		p, err := curve.Decompress(k)
		if err != nil {
			return nil, nil, false
		}
		points[i] = curve.Mul8(p)
		encoded[i] = curve.KeyFromPoint(points[i])
	}
	return encoded, points, true
}
