package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type keyPair struct {
	a [KeySize]byte
	b [KeySize]byte
}

func (p *keyPair) MarshalTo(target Target) {
	target.WriteKey(p.a)
	target.WriteKey(p.b)
}

func (p *keyPair) UnmarshalFrom(source Source) *keyPair {
	p.a = source.ReadKey()
	p.b = source.ReadKey()
	return p
}

func TestVarintEncoding(t *testing.T) {
	cases := []struct {
		value   uint64
		encoded []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xac, 0x02}},
		{^uint64(0), []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
	}

	for _, c := range cases {
		target := NewTarget(MaxVarintLen)
		target.WriteVarint(c.value)
		require.Equal(t, c.encoded, target.Bytes())

		value, err := UnmarshalUsing(c.encoded, func(s Source) uint64 { return s.ReadVarint() })
		require.NoError(t, err)
		require.Equal(t, c.value, value)
	}
}

func TestTruncatedVarint(t *testing.T) {
	_, err := UnmarshalUsing([]byte{0x80, 0x80}, func(s Source) uint64 { return s.ReadVarint() })
	require.Error(t, err)

	src := NewSource([]byte{0x80})
	_, ok := src.TryReadVarint()
	require.False(t, ok)
	require.Equal(t, 1, src.Available())
}

func TestNonCanonicalVarint(t *testing.T) {
	for _, encoded := range [][]byte{{0x80, 0x00}, {0x81, 0x00}, {0xac, 0x82, 0x00}} {
		_, err := UnmarshalUsing(encoded, func(s Source) uint64 { return s.ReadVarint() })
		require.Error(t, err)

		src := NewSource(encoded)
		_, ok := src.TryReadVarint()
		require.False(t, ok)
		require.Equal(t, len(encoded), src.Available())
	}
}

func TestKeysRoundTrip(t *testing.T) {
	keys := make([][KeySize]byte, 3)
	for i := range keys {
		keys[i][0] = byte(i + 1)
		keys[i][KeySize-1] = byte(0xf0 + i)
	}

	target := NewTarget(0)
	WriteKeys(target, keys)
	require.Equal(t, 1+3*KeySize, target.Written())

	decoded, err := UnmarshalUsing(target.Bytes(), ReadKeys[[KeySize]byte])
	require.NoError(t, err)
	require.Equal(t, keys, decoded)
}

func TestHostileLengthPrefix(t *testing.T) {
	target := NewTarget(0)
	target.WriteVarint(1 << 40)
	target.WriteBytes(make([]byte, KeySize))

	_, err := UnmarshalUsing(target.Bytes(), ReadKeys[[KeySize]byte])
	require.ErrorContains(t, err, "exceeds")
}

func TestUnmarshalRejectsTrailingBytes(t *testing.T) {
	p := &keyPair{}
	p.a[0], p.b[0] = 1, 2
	data, err := Marshal(p)
	require.NoError(t, err)

	decoded, err := Unmarshal(data, &keyPair{})
	require.NoError(t, err)
	require.Equal(t, p, decoded)

	_, err = Unmarshal(append(data, 0), &keyPair{})
	require.ErrorContains(t, err, "1 bytes remaining")

	_, err = Unmarshal(data[:KeySize+1], &keyPair{})
	require.ErrorContains(t, err, "recovered panic")
}

func TestLengthPrefixedStrings(t *testing.T) {
	target := NewTarget(0)
	target.WriteString("seraphis")
	target.WriteLengthPrefixedBytes([]byte{9, 8, 7})
	target.WriteBool(true)

	src := NewSource(target.Bytes())
	require.Equal(t, "seraphis", src.ReadString())
	require.Equal(t, []byte{9, 8, 7}, src.ReadLengthPrefixedBytes())
	require.True(t, src.ReadBool())
	require.Zero(t, src.Available())
}
