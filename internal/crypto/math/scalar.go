// Constant time modular arithmetic based on the bigmod package from Go's internal stdlib, exported via
// filippo.io/bigmod. Used where arithmetic modulo something other than the group order is needed, e.g. in the field
// of the curve.

package math

import (
	"slices"

	"filippo.io/bigmod"
)

// Scalar represents a value modulo some modulus.
// Scalars of different moduli are not compatible, and cannot be used together in arithmetic operations.
// Executing any arithmetic operation on scalars with different moduli will result in a panic.
type Scalar = *scalar

type scalar struct {
	value   *bigmod.Nat
	modulus *Modulus
}

// NewScalar creates a new scalar with the given modulus.
// The value is initialized to zero.
func NewScalar(m *Modulus) Scalar {
	return &scalar{bigmod.NewNat().ExpandFor(&m.value), m}
}

// x.SetUint(y) sets x = y, returns the scalar x.
// y must be smaller than the modulus of x.
func (x *scalar) SetUint(y uint) Scalar {
	x.value.SetUint(y).ExpandFor(&x.modulus.value)
	return x
}

// x.Multiply(y) computes x = x * y (mod modulus), and returns x.
func (x *scalar) Multiply(y Scalar) Scalar {
	requireEqualModulus(x, y)
	x.value.Mul(y.value, &x.modulus.value)
	return x
}

// x.InverseVarTime() computes the modular inverse of x = x^-1 and returns (x, true) if the inverse exists, or
// (nil, false) otherwise.
func (x *scalar) InverseVarTime() (Scalar, bool) {
	if _, ok := x.value.InverseVarTime(x.value, &x.modulus.value); !ok {
		return nil, false
	}
	return x, true
}

// x.BytesLE() returns the little-endian encoding of x padded to the size of the modulus, the byte order used by
// curve25519 encodings.
func (x *scalar) BytesLE() []byte {
	b := x.value.Bytes(&x.modulus.value)
	slices.Reverse(b)
	return b
}

// Checks that two scalars have the same modulus, and panics otherwise.
func requireEqualModulus(x Scalar, y Scalar) {
	if !x.modulus.Equal(y.modulus) {
		panic("scalars have different moduli")
	}
}
