package curve

import (
	"encoding/binary"
	"errors"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"

	"github.com/seraphis-project/spcrypto/internal/crypto/hash"
)

// Field constants for the map below. A = 486662 is the Montgomery curve parameter of curve25519.
var (
	feZero   = new(field.Element).Zero()
	feOne    = new(field.Element).One()
	fe19     = feFromUint64(19)
	feMA     = new(field.Element).Negate(feFromUint64(486662))                                 // -A
	feMA2    = new(field.Element).Negate(new(field.Element).Square(feFromUint64(486662)))      // -A^2
	feAA2    = new(field.Element).Multiply(feFromUint64(486662), feFromUint64(486662+2))       // A(A+2)
	feSqrtM1 = feSqrt(new(field.Element).Negate(feOne))                                        // sqrt(-1)
	feFFFB1  = feSqrt(new(field.Element).Negate(new(field.Element).Add(feAA2, feAA2)))         // sqrt(-2A(A+2))
	feFFFB2  = feSqrt(new(field.Element).Add(feAA2, feAA2))                                    // sqrt(2A(A+2))
	feFFFB3  = feSqrt(new(field.Element).Negate(new(field.Element).Multiply(feSqrtM1, feAA2))) // sqrt(-sqrt(-1)A(A+2))
	feFFFB4  = feSqrt(new(field.Element).Multiply(feSqrtM1, feAA2))                            // sqrt(sqrt(-1)A(A+2))
)

var errNotOnCurve = errors.New("field embedding produced an invalid point")

func feFromUint64(v uint64) *field.Element {
	var b [KeySize]byte
	binary.LittleEndian.PutUint64(b[:8], v)
	e, err := new(field.Element).SetBytes(b[:])
	if err != nil {
		panic(err)
	}
	return e
}

func feSqrt(x *field.Element) *field.Element {
	r, wasSquare := new(field.Element).SqrtRatio(x, feOne)
	if wasSquare != 1 {
		panic("field constant is not a square")
	}
	return r
}

func feIsZero(x *field.Element) bool {
	return x.Equal(feZero) == 1
}

// feFromBytesWide interprets all 256 bits of b as an integer mod p. field.Element.SetBytes ignores the top bit, which
// is worth 2^255 = 19 mod p.
func feFromBytesWide(b *[KeySize]byte) *field.Element {
	low := *b
	low[31] &= 0x7f
	u, err := new(field.Element).SetBytes(low[:])
	if err != nil {
		panic(err)
	}
	if b[31]&0x80 != 0 {
		u.Add(u, fe19)
	}
	return u
}

// (u/v)^((p+3)/8)
func feDivPowM1(u, v *field.Element) *field.Element {
	v3 := new(field.Element).Square(v)
	v3.Multiply(v3, v)
	uv7 := new(field.Element).Square(v3)
	uv7.Multiply(uv7, v)
	uv7.Multiply(uv7, u)
	r := new(field.Element).Pow22523(uv7)
	r.Multiply(r, v3)
	return r.Multiply(r, u)
}

// DecompressNonStrict maps 32 arbitrary bytes to a curve point (ge_fromfe_frombytes_vartime). Unlike Decompress it
// does not interpret the bytes as an encoded point; it uses them as a field element u and applies an Elligator-style
// map, so every input yields a point. The result may carry a torsion component. Variable time.
func DecompressNonStrict(b [KeySize]byte) (*Point, error) {
	u := feFromBytesWide(&b)

	v := new(field.Element).Square(u)
	v.Add(v, v)                           // 2u^2
	w := new(field.Element).Add(v, feOne) // 2u^2 + 1
	x := new(field.Element).Square(w)
	y := new(field.Element).Multiply(feMA2, v)
	x.Add(x, y) // w^2 - 2A^2u^2

	rX := feDivPowM1(w, x)
	y.Square(rX)
	x.Multiply(y, x)
	y.Subtract(w, x)
	z := new(field.Element).Set(feMA)

	sign := 0
	switch {
	case feIsZero(y):
		rX.Multiply(rX, feFFFB2)
		rX.Multiply(rX, u)
		z.Multiply(z, v)
	case feIsZero(y.Add(w, x)):
		rX.Multiply(rX, feFFFB1)
		rX.Multiply(rX, u)
		z.Multiply(z, v)
	default:
		x.Multiply(x, feSqrtM1)
		if feIsZero(y.Subtract(w, x)) {
			rX.Multiply(rX, feFFFB4)
		} else {
			rX.Multiply(rX, feFFFB3)
		}
		sign = 1
	}
	if rX.IsNegative() != sign {
		rX.Negate(rX)
	}

	// projective (X : Y : Z) = (rX * (z + w) : z - w : z + w)
	zz := new(field.Element).Add(z, w)
	yy := new(field.Element).Subtract(z, w)
	xx := new(field.Element).Multiply(rX, zz)

	invZ := new(field.Element).Invert(zz)
	xa := new(field.Element).Multiply(xx, invZ)
	ya := new(field.Element).Multiply(yy, invZ)
	ta := new(field.Element).Multiply(xa, ya)
	p, err := edwards25519.NewIdentityPoint().SetExtendedCoordinates(xa, ya, feOne, ta)
	if err != nil {
		return nil, errNotOnCurve
	}
	return p, nil
}

// HashToPoint is H_p(data) = 8 * DecompressNonStrict(keccak(data)). The result lies in the prime-order subgroup.
func HashToPoint(data []byte) (Key, error) {
	p, err := DecompressNonStrict(hash.Keccak256(data))
	if err != nil {
		return Key{}, err
	}
	return KeyFromPoint(Mul8(p)), nil
}

// KeyImageBase returns Hp(Ko), the base point of the key image of the one-time address Ko.
func KeyImageBase(onetimeAddress Key) (Key, error) {
	return HashToPoint(onetimeAddress[:])
}
