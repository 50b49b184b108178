package dualbase

import (
	"github.com/seraphis-project/spcrypto/internal/config"
	"github.com/seraphis-project/spcrypto/internal/crypto/curve"
	"github.com/seraphis-project/spcrypto/internal/crypto/hash"
	"github.com/seraphis-project/spcrypto/internal/crypto/transcript"
)

// The oracle outputs below are zero with negligible probability. A zero output means the hash function is broken, so
// these helpers panic; Verify turns the panic into a rejection.

// aggregationCoefficient computes mu = H_n(message, G1, G2, {8 * V1}, {8 * V2}).
func aggregationCoefficient(message, g1, g2 curve.Key, v1, v2 []curve.Key) *curve.Scalar {
	if len(v1) != len(v2) {
		panic("aggregation coefficient keys have mismatching sizes")
	}
	t := transcript.NewFS(config.HashKeyDualBaseVectorProofAggregationCoeff, (3+2*len(v1))*curve.KeySize)
	t.AppendKey("message", message)
	t.AppendKey("G_1", g1)
	t.AppendKey("G_2", g2)
	t.AppendKeys("V_1", v1)
	t.AppendKeys("V_2", v2)

	mu := hash.HashToScalar(t.Data())
	if curve.IsZeroScalar(mu) {
		panic("aggregation coefficient is zero")
	}
	return mu
}

// challengeMessage computes m = H_32(mu).
func challengeMessage(mu *curve.Scalar) curve.Key {
	t := transcript.NewFS(config.HashKeyDualBaseVectorProofChallengeMsg, curve.KeySize)
	t.AppendScalar("message", mu)

	m := curve.Key(hash.HashTo32(t.Data()))
	if m == curve.ZeroKey {
		panic("challenge message is zero")
	}
	return m
}

// challenge computes c = H_n(m, A1, A2).
func challenge(m, a1, a2 curve.Key) *curve.Scalar {
	t := transcript.NewFS(config.HashKeyDualBaseVectorProofChallenge, 3*curve.KeySize)
	t.AppendKey("message", m)
	t.AppendKey("V_1_proofkey", a1)
	t.AppendKey("V_2_proofkey", a2)

	c := hash.HashToScalar(t.Data())
	if curve.IsZeroScalar(c) {
		panic("challenge is zero")
	}
	return c
}
