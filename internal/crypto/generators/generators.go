// Package generators is the registry of the fixed base points G, H, X and U, and of the x25519 base point.
//
// The compressed encodings are constants and can be read at any time. The first call that needs a decompressed or
// precomputed form initializes the registry for the whole process: every constant is decompressed and compared
// against its reproduction formula, and a fixed-base table is built for it. A failed check means the build is
// corrupted; it is logged and the process panics.
package generators

import (
	"fmt"
	"sync"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/curve25519"

	"github.com/seraphis-project/spcrypto/internal/crypto/curve"
	"github.com/seraphis-project/spcrypto/internal/logger"
)

type Name int

const (
	// G is the standard edwards25519 base point.
	G Name = iota
	// H = 8 * decompress(keccak(G)), the amount commitment generator.
	H
	// X = H_p(keccak("seraphis_X")).
	X
	// U = H_p(keccak("seraphis_U")).
	U

	numGenerators
)

func (n Name) String() string {
	switch n {
	case G:
		return "G"
	case H:
		return "H"
	case X:
		return "X"
	case U:
		return "U"
	default:
		return fmt.Sprintf("Name(%d)", int(n))
	}
}

var raw = [numGenerators]curve.Key{
	G: {0x58, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
		0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66},
	H: {0x8b, 0x65, 0x59, 0x70, 0x15, 0x37, 0x99, 0xaf, 0x2a, 0xea, 0xdc, 0x9f, 0xf1, 0xad, 0xd0, 0xea,
		0x6c, 0x72, 0x51, 0xd5, 0x41, 0x54, 0xcf, 0xa9, 0x2c, 0x17, 0x3a, 0x0d, 0xd3, 0x9c, 0x1f, 0x94},
	X: {0xa4, 0xfb, 0x43, 0xca, 0x69, 0x5e, 0x12, 0x99, 0x88, 0x02, 0xa2, 0x0a, 0x15, 0x8f, 0x12, 0xea,
		0x79, 0x47, 0x4f, 0xb9, 0x01, 0x21, 0x16, 0x95, 0x6a, 0x69, 0x76, 0x7c, 0x4d, 0x41, 0x11, 0x0f},
	U: {0x10, 0x94, 0x8b, 0x00, 0xd2, 0xde, 0x50, 0xb5, 0x76, 0x99, 0x8c, 0x11, 0xe8, 0x3c, 0x59, 0xa7,
		0x96, 0x84, 0xd2, 0x5c, 0x9f, 0x8a, 0x0d, 0xc6, 0x86, 0x45, 0x70, 0xd7, 0x97, 0xb9, 0xc1, 0x6e},
}

type registry struct {
	points [numGenerators]*curve.Point
	tables [numGenerators]*curve.Table
}

var (
	initOnce sync.Once
	instance *registry
	log      = logger.New("generators")
)

func get() *registry {
	initOnce.Do(func() {
		r, err := newRegistry(raw)
		if err != nil {
			log.Panic("generator self-test failed", logger.Fields{"error": err.Error()})
		}
		log.Debug("generators initialized", nil)
		instance = r
	})
	return instance
}

func newRegistry(keys [numGenerators]curve.Key) (*registry, error) {
	r := &registry{}
	for n := G; n < numGenerators; n++ {
		p, err := curve.Decompress(keys[n])
		if err != nil {
			return nil, fmt.Errorf("generator %v does not decompress: %w", n, err)
		}
		expected, err := reproduce(n)
		if err != nil {
			return nil, fmt.Errorf("generator %v cannot be reproduced: %w", n, err)
		}
		if !expected.Equal(keys[n]) {
			return nil, fmt.Errorf("generator %v mismatch: constant %v, reproduced %v", n, keys[n], expected)
		}
		r.points[n] = p
		r.tables[n] = curve.NewTable(p)
	}
	return r, nil
}

// Raw returns the compressed encoding of the named generator.
func Raw(n Name) curve.Key {
	return raw[n]
}

// Point returns the named generator. The returned point is a copy owned by the caller.
func Point(n Name) *curve.Point {
	return edwards25519.NewIdentityPoint().Set(get().points[n])
}

// Cached returns the precomputed fixed-base table of the named generator.
func Cached(n Name) *curve.Table {
	return get().tables[n]
}

// Lookup returns the name of the generator encoded as k, if k is one of the registered generators.
func Lookup(k curve.Key) (Name, bool) {
	for n := G; n < numGenerators; n++ {
		if raw[n] == k {
			return n, true
		}
	}
	return 0, false
}

// X25519G returns the base point of x25519, the u-coordinate 9.
func X25519G() [curve.KeySize]byte {
	var b [curve.KeySize]byte
	copy(b[:], curve25519.Basepoint)
	return b
}
