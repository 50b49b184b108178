package math

import (
	"math/big"

	"filippo.io/bigmod"
)

// FieldModulus is the prime p = 2^255 - 19 of the field edwards25519 is defined over.
var FieldModulus = NewModulus("57896044618658097711785492504343953926634992332820282019728792003956564819949")

type Modulus struct {
	value bigmod.Modulus
}

// Non-constant time function, to be used for testing purposes and initialization only.
// Panics on invalid input; value must represent a natural number.
func NewModulus(value string) *Modulus {
	n, ok := new(big.Int).SetString(value, 10)
	if !ok {
		panic("invalid modulus value: " + value)
	}
	m, err := bigmod.NewModulus(n.Bytes())
	if err != nil {
		panic("invalid modulus value: " + value + ", error: " + err.Error())
	}
	return &Modulus{*m}
}

func (m *Modulus) Equal(other *Modulus) bool {
	return m == other || (&m.value).Nat().Equal((&other.value).Nat()) == 1
}
