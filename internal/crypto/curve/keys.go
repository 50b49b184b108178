// Package curve adapts filippo.io/edwards25519 to the conventions of the CryptoNote/seraphis protocols: points and
// scalars travel as 32-byte keys, public keys received from outside are cofactor-cleared before use, and points
// committed to in proofs are stored multiplied by (1/8).
package curve

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"filippo.io/edwards25519"
)

const KeySize = 32

type (
	Point  = edwards25519.Point
	Scalar = edwards25519.Scalar
)

// Key is the 32-byte encoding of a point (compressed) or of a scalar (little-endian).
type Key [KeySize]byte

// SecretKey is a 32-byte little-endian scalar. It is a distinct type so that it does not end up in logs by accident.
type SecretKey [KeySize]byte

var (
	ErrInvalidPoint  = errors.New("invalid point encoding")
	ErrInvalidScalar = errors.New("invalid scalar encoding")
)

var (
	// IdentityKey is the encoding of the neutral element (0, 1).
	IdentityKey = KeyFromPoint(edwards25519.NewIdentityPoint())

	// ZeroKey is the all-zero key: the zero scalar, and not a valid point.
	ZeroKey Key

	// InvEight is 8^-1 mod l.
	InvEight = newInvEight()
)

func newInvEight() *Scalar {
	var b [KeySize]byte
	b[0] = 8
	eight, err := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		panic(err)
	}
	return edwards25519.NewScalar().Invert(eight)
}

func KeyFromPoint(p *Point) Key {
	var k Key
	copy(k[:], p.Bytes())
	return k
}

func KeyFromScalar(s *Scalar) Key {
	var k Key
	copy(k[:], s.Bytes())
	return k
}

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Equal compares two keys in constant time.
func (k Key) Equal(other Key) bool {
	return subtle.ConstantTimeCompare(k[:], other[:]) == 1
}

// Less orders keys by their byte encoding, as memcmp does.
func (k Key) Less(other Key) bool {
	for i := range k {
		if k[i] != other[i] {
			return k[i] < other[i]
		}
	}
	return false
}

// Decompress decodes k as a point. Only canonical encodings are accepted: a y coordinate that is not reduced mod p,
// or a negative zero x coordinate, is rejected.
func Decompress(k Key) (*Point, error) {
	p, err := edwards25519.NewIdentityPoint().SetBytes(k[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	if subtle.ConstantTimeCompare(p.Bytes(), k[:]) != 1 {
		return nil, fmt.Errorf("%w: not in canonical form", ErrInvalidPoint)
	}
	return p, nil
}

// ScalarFromKey decodes k as a scalar, which must be canonically reduced mod l.
func ScalarFromKey(k Key) (*Scalar, error) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(k[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}
	return s, nil
}

// Scalar decodes the secret key, which must be canonically reduced mod l.
func (k SecretKey) Scalar() (*Scalar, error) {
	return ScalarFromKey(Key(k))
}

func (k SecretKey) String() string {
	return "<secret>"
}

func SecretKeyFromScalar(s *Scalar) SecretKey {
	return SecretKey(KeyFromScalar(s))
}

// Wipe overwrites the secret key with zeros.
func (k *SecretKey) Wipe() {
	clear(k[:])
}

// IsZeroScalar reports whether s is zero.
func IsZeroScalar(s *Scalar) bool {
	return s.Equal(edwards25519.NewScalar()) == 1
}

// RandomScalar samples a uniformly random nonzero scalar from rand.
func RandomScalar(rand io.Reader) (*Scalar, error) {
	var wide [64]byte
	for {
		if _, err := io.ReadFull(rand, wide[:]); err != nil {
			return nil, err
		}
		s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
		if err != nil {
			return nil, err
		}
		if !IsZeroScalar(s) {
			return s, nil
		}
	}
}

// RandomSecretKey samples a uniformly random nonzero secret key from rand.
func RandomSecretKey(rand io.Reader) (SecretKey, error) {
	s, err := RandomScalar(rand)
	if err != nil {
		return SecretKey{}, err
	}
	return SecretKeyFromScalar(s), nil
}
