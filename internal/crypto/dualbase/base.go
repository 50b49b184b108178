package dualbase

import (
	"fmt"

	"filippo.io/edwards25519"

	"github.com/seraphis-project/spcrypto/internal/crypto/curve"
	"github.com/seraphis-project/spcrypto/internal/crypto/generators"
)

// base is a proof base. Registered generators come with a precomputed table.
type base struct {
	key   curve.Key
	point *curve.Point
	table *curve.Table
}

func newBase(k curve.Key) (*base, error) {
	if name, ok := generators.Lookup(k); ok {
		return &base{k, generators.Point(name), generators.Cached(name)}, nil
	}
	p, err := curve.Decompress(k)
	if err != nil {
		return nil, fmt.Errorf("%w: base %v: %w", ErrInvalidInput, k, err)
	}
	return &base{k, p, nil}, nil
}

// mul returns s * base in constant time.
func (b *base) mul(s *curve.Scalar) *curve.Point {
	if b.table != nil {
		return b.table.ScalarMult(s)
	}
	return edwards25519.NewIdentityPoint().ScalarMult(s, b.point)
}
