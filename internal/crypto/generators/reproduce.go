package generators

import (
	"fmt"

	"github.com/seraphis-project/spcrypto/internal/config"
	"github.com/seraphis-project/spcrypto/internal/crypto/curve"
	"github.com/seraphis-project/spcrypto/internal/crypto/hash"
	"github.com/seraphis-project/spcrypto/internal/crypto/math"
)

func reproduce(n Name) (curve.Key, error) {
	switch n {
	case G:
		return reproduceG()
	case H:
		return reproduceH()
	case X:
		return reproduceFromSalt(config.HashKeySeraphisX)
	case U:
		return reproduceFromSalt(config.HashKeySeraphisU)
	default:
		return curve.Key{}, fmt.Errorf("unknown generator %v", n)
	}
}

// reproduceG encodes the point with y = 4/5 mod p and positive x. The sign bit of x is zero, so the encoding is just
// y in little-endian.
func reproduceG() (curve.Key, error) {
	four := math.NewScalar(math.FieldModulus).SetUint(4)
	invFive, ok := math.NewScalar(math.FieldModulus).SetUint(5).InverseVarTime()
	if !ok {
		return curve.Key{}, fmt.Errorf("5 is not invertible mod p")
	}
	var k curve.Key
	copy(k[:], four.Multiply(invFive).BytesLE())
	return k, nil
}

func reproduceH() (curve.Key, error) {
	h := hash.Keccak256(raw[G][:])
	return curve.Mul8Key(curve.Key(h))
}

func reproduceFromSalt(salt string) (curve.Key, error) {
	h := hash.Keccak256([]byte(salt))
	return curve.HashToPoint(h[:])
}
