package curve

import (
	"filippo.io/edwards25519"
)

var groupOrderMinusOne = edwards25519.NewScalar().Negate(scalarOne())

func scalarOne() *Scalar {
	var b [KeySize]byte
	b[0] = 1
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		panic(err)
	}
	return s
}

// ScalarOne returns a new scalar set to 1.
func ScalarOne() *Scalar {
	return scalarOne()
}

func IsIdentity(p *Point) bool {
	return p.Equal(edwards25519.NewIdentityPoint()) == 1
}

// Mul8 returns 8 * p.
func Mul8(p *Point) *Point {
	return edwards25519.NewIdentityPoint().MultByCofactor(p)
}

// Mul8Key returns 8 * P for an encoded point P.
func Mul8Key(k Key) (Key, error) {
	p, err := Decompress(k)
	if err != nil {
		return Key{}, err
	}
	return KeyFromPoint(Mul8(p)), nil
}

// ScalarMultKey returns s * P for an encoded point P.
func ScalarMultKey(k Key, s *Scalar) (Key, error) {
	p, err := Decompress(k)
	if err != nil {
		return Key{}, err
	}
	return KeyFromPoint(edwards25519.NewIdentityPoint().ScalarMult(s, p)), nil
}

// ScalarBaseMultKey returns s * G.
func ScalarBaseMultKey(s *Scalar) Key {
	return KeyFromPoint(edwards25519.NewIdentityPoint().ScalarBaseMult(s))
}

// IsInPrimeSubgroup reports whether k decodes to a point P with l * P = identity, i.e. a point without a torsion
// component.
func IsInPrimeSubgroup(k Key) bool {
	p, err := Decompress(k)
	if err != nil {
		return false
	}
	// l * P = (l - 1) * P + P, the scalar l itself is not representable.
	lp := edwards25519.NewIdentityPoint().ScalarMult(groupOrderMinusOne, p)
	lp.Add(lp, p)
	return IsIdentity(lp)
}

// PowersOfScalar returns [1, x, x^2, ..., x^(n-1)].
func PowersOfScalar(x *Scalar, n int) []*Scalar {
	if n <= 0 {
		return nil
	}
	powers := make([]*Scalar, n)
	powers[0] = scalarOne()
	for i := 1; i < n; i++ {
		powers[i] = edwards25519.NewScalar().Multiply(powers[i-1], x)
	}
	return powers
}

// VarTimeMultiScalarMult returns sum_i(scalars[i] * points[i]) in variable time. Only for public inputs.
func VarTimeMultiScalarMult(scalars []*Scalar, points []*Point) *Point {
	if len(scalars) != len(points) {
		panic("VarTimeMultiScalarMult called with mismatched lengths")
	}
	if len(scalars) == 0 {
		return edwards25519.NewIdentityPoint()
	}
	return edwards25519.NewIdentityPoint().VarTimeMultiScalarMult(scalars, points)
}
