package dualbase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seraphis-project/spcrypto/internal/codec"
	"github.com/seraphis-project/spcrypto/internal/crypto/curve"
	"github.com/seraphis-project/spcrypto/internal/crypto/generators"
	"github.com/seraphis-project/spcrypto/internal/testimplementations/testhelpers"
	"github.com/seraphis-project/spcrypto/internal/testimplementations/unsaferand"
)

func newProof(t *testing.T, n int, g1, g2 curve.Key) (*Proof, []curve.SecretKey) {
	t.Helper()
	rand := unsaferand.New(t.Name(), n)
	keys := testhelpers.NewSecretKeys(t, n, rand)
	proof, err := Prove(testhelpers.NewKey(t, rand), g1, g2, keys, rand)
	require.NoError(t, err)
	return proof, keys
}

func TestProveVerify(t *testing.T) {
	rand := unsaferand.New(t.Name())
	bases := map[string][2]curve.Key{
		"G,H":           {generators.Raw(generators.G), generators.Raw(generators.H)},
		"X,U":           {generators.Raw(generators.X), generators.Raw(generators.U)},
		"G,random":      {generators.Raw(generators.G), testhelpers.NewPoint(t, rand)},
		"random,random": {testhelpers.NewPoint(t, rand), testhelpers.NewPoint(t, rand)},
	}
	for name, b := range bases {
		for _, n := range []int{1, 2, 3, 7} {
			proof, keys := newProof(t, n, b[0], b[1])
			assert.True(t, Verify(proof, b[0], b[1]), "%s, n=%d", name, n)
			assert.Len(t, proof.V1, n)
			assert.Len(t, proof.V2, n)

			// V_i = (1/8) * k_i * G
			for i, k := range keys {
				s, err := k.Scalar()
				require.NoError(t, err)
				want, err := curve.ScalarMultKey(b[0], s)
				require.NoError(t, err)
				got, err := curve.Mul8Key(proof.V1[i])
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
		}
	}
}

func TestProofKeepsMessage(t *testing.T) {
	rand := unsaferand.New(t.Name())
	message := testhelpers.NewKey(t, rand)
	g, h := generators.Raw(generators.G), generators.Raw(generators.H)
	proof, err := Prove(message, g, h, testhelpers.NewSecretKeys(t, 2, rand), rand)
	require.NoError(t, err)
	assert.Equal(t, message, proof.M)

	proof.M[0] ^= 1
	assert.False(t, Verify(proof, g, h))
}

func TestVerifyRejectsTampering(t *testing.T) {
	g, h := generators.Raw(generators.G), generators.Raw(generators.H)
	valid, _ := newProof(t, 3, g, h)

	clone := func() *Proof {
		p := *valid
		p.V1 = append([]curve.Key(nil), valid.V1...)
		p.V2 = append([]curve.Key(nil), valid.V2...)
		return &p
	}

	tests := []struct {
		name   string
		tamper func(p *Proof)
	}{
		{"c flipped", func(p *Proof) { p.C[0] ^= 1 }},
		{"r flipped", func(p *Proof) { p.R[0] ^= 1 }},
		{"r plus one", func(p *Proof) { p.R = testhelpers.AddOne(t, p.R) }},
		{"r zero", func(p *Proof) { p.R = curve.ZeroKey }},
		{"r not canonical", func(p *Proof) { p.R[31] |= 0xf0 }},
		{"c not canonical", func(p *Proof) { p.C[31] |= 0xf0 }},
		{"V1 flipped", func(p *Proof) { p.V1[1][0] ^= 1 }},
		{"V2 flipped", func(p *Proof) { p.V2[2][0] ^= 1 }},
		{"V1 swapped", func(p *Proof) { p.V1[0], p.V1[1] = p.V1[1], p.V1[0] }},
		{"both swapped", func(p *Proof) {
			p.V1[0], p.V1[1] = p.V1[1], p.V1[0]
			p.V2[0], p.V2[1] = p.V2[1], p.V2[0]
		}},
		{"V1 shorter", func(p *Proof) { p.V1 = p.V1[:2] }},
		{"both shorter", func(p *Proof) { p.V1, p.V2 = p.V1[:2], p.V2[:2] }},
		{"empty", func(p *Proof) { p.V1, p.V2 = nil, nil }},
		{"V1 not a point", func(p *Proof) { p.V1[0] = curve.Key{2} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := clone()
			tt.tamper(p)
			assert.False(t, Verify(p, g, h))
		})
	}

	assert.True(t, Verify(valid, g, h))
}

func TestVerifyRejectsWrongBases(t *testing.T) {
	g, h := generators.Raw(generators.G), generators.Raw(generators.H)
	proof, _ := newProof(t, 2, g, h)

	assert.False(t, Verify(proof, h, g))
	assert.False(t, Verify(proof, g, generators.Raw(generators.U)))
	assert.False(t, Verify(proof, g, curve.Key{2}))
	assert.False(t, Verify(nil, g, h))
}

func TestVerifyRejectsForeignKeys(t *testing.T) {
	// V2 proves a different key than V1
	rand := unsaferand.New(t.Name())
	g, h := generators.Raw(generators.G), generators.Raw(generators.H)
	keys := testhelpers.NewSecretKeys(t, 2, rand)

	a, err := Prove(curve.Key{1}, g, h, keys, rand)
	require.NoError(t, err)
	b, err := Prove(curve.Key{1}, g, h, []curve.SecretKey{keys[1], keys[0]}, rand)
	require.NoError(t, err)

	mixed := *a
	mixed.V2 = b.V2
	assert.False(t, Verify(&mixed, g, h))
}

func TestProveRejectsInvalidInput(t *testing.T) {
	rand := unsaferand.New(t.Name())
	g, h := generators.Raw(generators.G), generators.Raw(generators.H)
	valid := testhelpers.NewSecretKeys(t, 2, rand)

	var notCanonical curve.SecretKey
	for i := range notCanonical {
		notCanonical[i] = 0xff
	}

	tests := []struct {
		name   string
		g1, g2 curve.Key
		keys   []curve.SecretKey
	}{
		{"no keys", g, h, nil},
		{"zero key", g, h, []curve.SecretKey{valid[0], {}}},
		{"non-canonical key", g, h, []curve.SecretKey{notCanonical}},
		{"invalid base", curve.Key{2}, h, valid},
		{"identity base", curve.IdentityKey, h, valid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Prove(curve.Key{}, tt.g1, tt.g2, tt.keys, rand)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestProveNonceFailure(t *testing.T) {
	rand := unsaferand.New(t.Name())
	g, h := generators.Raw(generators.G), generators.Raw(generators.H)
	_, err := Prove(curve.Key{}, g, h, testhelpers.NewSecretKeys(t, 1, rand), unsaferand.Failing{})
	assert.ErrorIs(t, err, unsaferand.ErrFailingReader)
}

func TestMarshalUnmarshal(t *testing.T) {
	g, x := generators.Raw(generators.G), generators.Raw(generators.X)
	proof, _ := newProof(t, 4, g, x)

	data, err := codec.Marshal(proof)
	require.NoError(t, err)
	require.Len(t, data, Size(4))

	decoded, err := UnmarshalProof(data, 4)
	require.NoError(t, err)
	assert.Equal(t, proof, decoded)
	assert.True(t, Verify(decoded, g, x))

	_, err = UnmarshalProof(data, 3)
	assert.Error(t, err)
	_, err = UnmarshalProof(data, 5)
	assert.Error(t, err)
	_, err = UnmarshalProof(data, 0)
	assert.Error(t, err)

	src := codec.NewSource(append(data, 0xaa))
	decoded, err = ReadProof(src, 4)
	require.NoError(t, err)
	assert.Equal(t, proof, decoded)
	assert.Equal(t, 1, src.Available())
}

func TestMarshalMismatchedSizes(t *testing.T) {
	_, err := codec.Marshal(&Proof{V1: make([]curve.Key, 2), V2: make([]curve.Key, 1)})
	assert.Error(t, err)
}
