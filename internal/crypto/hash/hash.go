// Package hash implements the hash functions used by the protocol: the legacy keccak "fast hash" of CryptoNote, and
// the blake2b based random oracles used for Fiat-Shamir challenges. Domain separation is the caller's job (see the
// transcript package); the functions here hash exactly the bytes they are given.
package hash

import (
	"filippo.io/edwards25519"
	"github.com/dchest/blake2b"
	"golang.org/x/crypto/sha3"
)

const Size = 32

type Hash = [Size]byte

// Keccak256 is cn_fast_hash: original (pre-standard) keccak with a 32-byte output over the concatenated inputs.
func Keccak256(data ...[]byte) Hash {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		_, _ = h.Write(d)
	}
	var out Hash
	h.Sum(out[:0])
	return out
}

// KeccakToScalar is the CryptoNote hash_to_scalar: keccak256 of the input, reduced mod l.
func KeccakToScalar(data ...[]byte) *edwards25519.Scalar {
	h := Keccak256(data...)
	return reduce32(h)
}

// HashTo32 is the H_32 random oracle: blake2b with a 32-byte output.
func HashTo32(data []byte) Hash {
	return blake2b.Sum256(data)
}

// HashToScalar is the H_n random oracle: a 64-byte blake2b output reduced mod l, which gives a scalar that is
// statistically close to uniform.
func HashToScalar(data []byte) *edwards25519.Scalar {
	wide := blake2b.Sum512(data)
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		// SetUniformBytes only fails on input length.
		panic(err)
	}
	return s
}

func reduce32(h Hash) *edwards25519.Scalar {
	var wide [64]byte
	copy(wide[:], h[:])
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		panic(err)
	}
	return s
}
