package testhelpers

import (
	"io"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/require"

	"github.com/seraphis-project/spcrypto/internal/crypto/curve"
)

// NewSecretKeys samples n random nonzero secret keys.
func NewSecretKeys(t *testing.T, n int, rand io.Reader) []curve.SecretKey {
	keys := make([]curve.SecretKey, n)
	for i := range keys {
		k, err := curve.RandomSecretKey(rand)
		require.NoError(t, err)
		keys[i] = k
	}
	return keys
}

// NewKeyPair samples a secret key x and returns it together with x * G.
func NewKeyPair(t *testing.T, rand io.Reader) (curve.SecretKey, curve.Key) {
	s, err := curve.RandomScalar(rand)
	require.NoError(t, err)
	return curve.SecretKeyFromScalar(s), curve.ScalarBaseMultKey(s)
}

// NewPoint returns a random point in the prime-order subgroup.
func NewPoint(t *testing.T, rand io.Reader) curve.Key {
	_, k := NewKeyPair(t, rand)
	return k
}

// NewKey returns 32 random bytes, not necessarily a valid point or scalar.
func NewKey(t *testing.T, rand io.Reader) curve.Key {
	var k curve.Key
	_, err := io.ReadFull(rand, k[:])
	require.NoError(t, err)
	return k
}

// NewScalarKey returns the encoding of a random nonzero scalar.
func NewScalarKey(t *testing.T, rand io.Reader) curve.Key {
	s, err := curve.RandomScalar(rand)
	require.NoError(t, err)
	return curve.KeyFromScalar(s)
}

// AddOne returns the encoding of the scalar k + 1.
func AddOne(t *testing.T, k curve.Key) curve.Key {
	s, err := curve.ScalarFromKey(k)
	require.NoError(t, err)
	return curve.KeyFromScalar(edwards25519.NewScalar().Add(s, curve.ScalarOne()))
}
