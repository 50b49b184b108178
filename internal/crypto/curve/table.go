package curve

import (
	"crypto/subtle"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
)

const (
	tableRows  = 64 // one row per signed radix-16 digit of a scalar
	tableWidth = 8  // multiples 1..8 per row, digits are in [-8, 8]
)

type affinePoint struct {
	x, y field.Element
}

// Table is a precomputed fixed-base table for a point P: entry [i][j] holds (j+1) * 16^i * P in affine form.
// Multiplying P by a scalar with the table costs 64 point additions and no doublings, and the table lookups are
// constant time. A Table is immutable after construction and safe for concurrent use.
type Table struct {
	rows [tableRows][tableWidth]affinePoint
}

func NewTable(p *Point) *Table {
	t := &Table{}
	base := edwards25519.NewIdentityPoint().Set(p)
	multiple := edwards25519.NewIdentityPoint()
	for i := 0; i < tableRows; i++ {
		multiple.Set(base)
		for j := 0; j < tableWidth; j++ {
			t.rows[i][j] = toAffine(multiple)
			multiple.Add(multiple, base)
		}
		for k := 0; k < 4; k++ {
			base.Add(base, base)
		}
	}
	return t
}

func toAffine(p *Point) affinePoint {
	X, Y, Z, _ := p.ExtendedCoordinates()
	invZ := new(field.Element).Invert(Z)
	var a affinePoint
	a.x.Multiply(X, invZ)
	a.y.Multiply(Y, invZ)
	return a
}

// ScalarMult returns s * P.
func (t *Table) ScalarMult(s *Scalar) *Point {
	digits := signedRadix16(s.Bytes())
	acc := edwards25519.NewIdentityPoint()
	for i := 0; i < tableRows; i++ {
		acc.Add(acc, t.lookup(i, digits[i]))
	}
	return acc
}

// lookup returns digit * 16^i * P, selecting the entry without branching on the digit.
func (t *Table) lookup(i int, digit int8) *Point {
	negative := int(uint8(digit) >> 7)
	abs := digit - ((-int8(negative) & digit) << 1)

	x := new(field.Element).Zero()
	y := new(field.Element).One()
	for j := 0; j < tableWidth; j++ {
		cond := subtle.ConstantTimeByteEq(uint8(abs), uint8(j+1))
		x.Select(&t.rows[i][j].x, x, cond)
		y.Select(&t.rows[i][j].y, y, cond)
	}
	negX := new(field.Element).Negate(x)
	x.Select(negX, x, negative)

	xy := new(field.Element).Multiply(x, y)
	p, err := edwards25519.NewIdentityPoint().SetExtendedCoordinates(x, y, feOne, xy)
	if err != nil {
		// Every entry was computed from a valid point.
		panic("corrupted precomputed table: " + err.Error())
	}
	return p
}

// signedRadix16 splits a canonical little-endian scalar into 64 digits e[i] in [-8, 8] with s = sum(e[i] * 16^i).
func signedRadix16(b []byte) [tableRows]int8 {
	var e [tableRows]int8
	for i := 0; i < 32; i++ {
		e[2*i] = int8(b[i] & 15)
		e[2*i+1] = int8((b[i] >> 4) & 15)
	}
	var carry int8
	for i := 0; i < tableRows-1; i++ {
		e[i] += carry
		carry = (e[i] + 8) >> 4
		e[i] -= carry << 4
	}
	e[tableRows-1] += carry
	return e
}
