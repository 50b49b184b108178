package curve

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"filippo.io/edwards25519"
	"github.com/seraphis-project/spcrypto/internal/crypto/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustKey(t *testing.T, s string) Key {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, b, KeySize)
	return Key(b)
}

func keccak(s string) []byte {
	h := hash.Keccak256([]byte(s))
	return h[:]
}

func TestHashToPointVectors(t *testing.T) {
	g := KeyFromPoint(edwards25519.NewGeneratorPoint())
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"empty", nil, "d6d7d783ab18e1be65586adb7902a4175b737ef0b902875e1d1d5c5cf0478c0b"},
		{"generator", g[:], "d6329b5b1f7c0805b5c345f4957554002a2f557845f64d7645dae0e051a6498a"},
		{"abc", []byte("abc"), "5697a435347c8d6f988ba157c69e7825c1ede8abf00ceb74c0c45bea8d1d85ba"},
		{"seraphis_X", keccak("seraphis_X"), "a4fb43ca695e12998802a20a158f12ea79474fb9012116956a69767c4d41110f"},
		{"seraphis_U", keccak("seraphis_U"), "10948b00d2de50b576998c11e83c59a79684d25c9f8a0dc6864570d797b9c16e"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HashToPoint(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.True(t, IsInPrimeSubgroup(got))
		})
	}
}

func TestDecompressNonStrictAcceptsAnyBytes(t *testing.T) {
	for i := 0; i < 64; i++ {
		var b [KeySize]byte
		_, err := rand.Read(b[:])
		require.NoError(t, err)
		p, err := DecompressNonStrict(b)
		require.NoError(t, err)
		assert.True(t, IsInPrimeSubgroup(KeyFromPoint(Mul8(p))))
	}

	var ones [KeySize]byte
	for i := range ones {
		ones[i] = 0xff
	}
	_, err := DecompressNonStrict(ones)
	require.NoError(t, err)
}

func TestDecompress(t *testing.T) {
	t.Run("generator", func(t *testing.T) {
		g := KeyFromPoint(edwards25519.NewGeneratorPoint())
		p, err := Decompress(g)
		require.NoError(t, err)
		assert.Equal(t, 1, p.Equal(edwards25519.NewGeneratorPoint()))
	})

	t.Run("non-canonical y", func(t *testing.T) {
		// y = p, which reduces to y = 0
		k := mustKey(t, "edffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f")
		_, err := edwards25519.NewIdentityPoint().SetBytes(k[:])
		require.NoError(t, err)
		_, err = Decompress(k)
		assert.ErrorIs(t, err, ErrInvalidPoint)
	})

	t.Run("not on curve", func(t *testing.T) {
		k := mustKey(t, "0200000000000000000000000000000000000000000000000000000000000000")
		_, err := Decompress(k)
		assert.ErrorIs(t, err, ErrInvalidPoint)
	})
}

func TestScalarFromKey(t *testing.T) {
	_, err := ScalarFromKey(Key{1})
	require.NoError(t, err)

	l := mustKey(t, "edd3f55c1a631258d69cf7a2def9de1400000000000000000000000000000010")
	_, err = ScalarFromKey(l)
	assert.ErrorIs(t, err, ErrInvalidScalar)
}

func TestIsInPrimeSubgroup(t *testing.T) {
	g := KeyFromPoint(edwards25519.NewGeneratorPoint())
	assert.True(t, IsInPrimeSubgroup(g))
	assert.True(t, IsInPrimeSubgroup(IdentityKey))

	// order 2: (0, -1)
	assert.False(t, IsInPrimeSubgroup(mustKey(t, "ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f")))
	// order 8
	torsion := mustKey(t, "26e8958fc2b227b045c3f489f2ef98f0d5dfac05d3c63339b13802886d53fc05")
	assert.False(t, IsInPrimeSubgroup(torsion))

	// G + T has a torsion component, 8 * (G + T) does not
	tp, err := Decompress(torsion)
	require.NoError(t, err)
	mixed := edwards25519.NewIdentityPoint().Add(edwards25519.NewGeneratorPoint(), tp)
	assert.False(t, IsInPrimeSubgroup(KeyFromPoint(mixed)))
	assert.True(t, IsInPrimeSubgroup(KeyFromPoint(Mul8(mixed))))

	assert.False(t, IsInPrimeSubgroup(ZeroKey))
}

func TestInvEight(t *testing.T) {
	eight := edwards25519.NewScalar().Add(ScalarOne(), ScalarOne())
	eight.Add(eight, eight)
	eight.Add(eight, eight)
	prod := edwards25519.NewScalar().Multiply(eight, InvEight)
	assert.Equal(t, 1, prod.Equal(ScalarOne()))

	s, err := RandomScalar(rand.Reader)
	require.NoError(t, err)
	p := edwards25519.NewIdentityPoint().ScalarBaseMult(s)
	q := edwards25519.NewIdentityPoint().ScalarMult(InvEight, p)
	assert.Equal(t, 1, Mul8(q).Equal(p))
}

func TestTableScalarMult(t *testing.T) {
	s, err := RandomScalar(rand.Reader)
	require.NoError(t, err)
	base := edwards25519.NewIdentityPoint().ScalarBaseMult(s)

	tables := map[string]struct {
		table *Table
		point *Point
	}{
		"generator": {NewTable(edwards25519.NewGeneratorPoint()), edwards25519.NewGeneratorPoint()},
		"random":    {NewTable(base), base},
	}
	scalars := []*Scalar{edwards25519.NewScalar(), ScalarOne(), edwards25519.NewScalar().Negate(ScalarOne())}
	for i := 0; i < 16; i++ {
		r, err := RandomScalar(rand.Reader)
		require.NoError(t, err)
		scalars = append(scalars, r)
	}

	for name, tc := range tables {
		t.Run(name, func(t *testing.T) {
			for _, x := range scalars {
				want := edwards25519.NewIdentityPoint().ScalarMult(x, tc.point)
				got := tc.table.ScalarMult(x)
				assert.Equal(t, 1, got.Equal(want))
			}
		})
	}
}

func TestSignedRadix16(t *testing.T) {
	s, err := RandomScalar(rand.Reader)
	require.NoError(t, err)
	digits := signedRadix16(s.Bytes())

	sum := edwards25519.NewScalar()
	radix := ScalarOne()
	sixteen := scalarFromInt(16)
	for _, d := range digits {
		require.GreaterOrEqual(t, d, int8(-8))
		require.LessOrEqual(t, d, int8(8))
		term := edwards25519.NewScalar().Multiply(scalarFromInt(d), radix)
		sum.Add(sum, term)
		radix.Multiply(radix, sixteen)
	}
	assert.Equal(t, 1, sum.Equal(s))
}

func scalarFromInt(v int8) *Scalar {
	var b [KeySize]byte
	neg := v < 0
	if neg {
		v = -v
	}
	b[0] = byte(v)
	s, _ := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	if neg {
		s.Negate(s)
	}
	return s
}

func TestPowersOfScalar(t *testing.T) {
	assert.Nil(t, PowersOfScalar(ScalarOne(), 0))

	x := scalarFromInt(3)
	powers := PowersOfScalar(x, 4)
	require.Len(t, powers, 4)
	assert.Equal(t, 1, powers[0].Equal(ScalarOne()))
	assert.Equal(t, 1, powers[3].Equal(scalarFromInt(27)))
}

func TestKeyOrdering(t *testing.T) {
	a := Key{1}
	b := Key{2}
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.False(t, a.Less(a))
	assert.True(t, a.Equal(Key{1}))
}

func TestSecretKeyNotPrinted(t *testing.T) {
	k, err := RandomSecretKey(rand.Reader)
	require.NoError(t, err)
	assert.Equal(t, "<secret>", k.String())
	k.Wipe()
	assert.Equal(t, SecretKey{}, k)
}
