package smf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncatingConstructors(t *testing.T) {
	assert.Equal(t, uint8(0x03), NewUint2(0xFF).Uint8())
	assert.Equal(t, uint8(0x0F), NewUint4(0xFF).Uint8())
	assert.Equal(t, uint8(0x7F), NewUint7(0xFF).Uint8())
	assert.Equal(t, uint16(0x3FFF), NewUint14(0xFFFF).Uint16())
	assert.Equal(t, uint16(0x7FFF), NewUint15(0xFFFF).Uint16())
	assert.Equal(t, uint32(0xFFFFFF), NewUint24(0xFFFFFFFF).Uint32())
	assert.Equal(t, uint32(0xFFFFFFF), NewUint28(0xFFFFFFFF).Uint32())

	// values in range pass through untouched
	assert.Equal(t, uint8(96), NewUint7(96).Uint8())
	assert.Equal(t, uint16(480), NewUint15(480).Uint16())
}

func TestCheckedConstructors(t *testing.T) {
	v, err := CheckedUint7(127)
	require.NoError(t, err)
	assert.Equal(t, uint8(127), v.Uint8())

	_, err = CheckedUint7(128)
	assert.ErrorIs(t, err, ErrMalformedData)

	v15, err := CheckedUint15(0x7FFF)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x7FFF), v15.Uint16())

	_, err = CheckedUint15(0x8000)
	assert.ErrorIs(t, err, ErrMalformedData)

	_, err = CheckedUint2(4)
	assert.ErrorIs(t, err, ErrMalformedData)
	_, err = CheckedUint28(1 << 28)
	assert.ErrorIs(t, err, ErrMalformedData)
}

func TestReadRestrictedLenient(t *testing.T) {
	r := NewReader([]byte{0xFF, 0x80, 0x60})

	v7, err := r.ReadUint7()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x7F), v7.Uint8())

	v15, err := r.ReadUint15()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x60), v15.Uint16())
}

func TestReadRestrictedStrict(t *testing.T) {
	r := NewStrictReader([]byte{0xFF})
	_, err := r.ReadUint7()
	assert.ErrorIs(t, err, ErrMalformedData)

	r = NewStrictReader([]byte{0x80, 0x60})
	_, err = r.ReadUint15()
	assert.ErrorIs(t, err, ErrMalformedData)

	r = NewStrictReader([]byte{0x7F, 0x00, 0x60})
	v7, err := r.ReadUint7()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x7F), v7.Uint8())
	v15, err := r.ReadUint15()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x60), v15.Uint16())
}

func TestReadUint24(t *testing.T) {
	r := NewReader([]byte{0x12, 0x34, 0x56})
	v, err := r.ReadUint24()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x123456), v.Uint32())

	_, err = NewReader([]byte{0x12, 0x34}).ReadUint24()
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestReadUint14Packed(t *testing.T) {
	// 0x40 0x00 -> 0x40<<7
	r := NewReader([]byte{0x40, 0x00})
	v, err := r.ReadUint14Packed()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x2000), v.Uint16())

	// lenient masks the padding bit
	r = NewReader([]byte{0xC0, 0x81})
	v, err = r.ReadUint14Packed()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x2001), v.Uint16())

	// strict rejects it
	r = NewStrictReader([]byte{0xC0, 0x81})
	_, err = r.ReadUint14Packed()
	assert.ErrorIs(t, err, ErrMalformedData)
}

func TestVarLenBoundaries(t *testing.T) {
	assert.Equal(t, []byte{0x00}, AppendVarLen(nil, 0))
	assert.Equal(t, []byte{0x7F}, AppendVarLen(nil, 127))
	assert.Equal(t, []byte{0x81, 0x00}, AppendVarLen(nil, 128))
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0x7F}, AppendVarLen(nil, 1<<28-1))
}

func TestVarLenRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 0x40, 0x7F, 0x80, 0x2000, 0x3FFF, 0x4000,
		0x1FFFFF, 0x200000, 0xFFFFFFF}

	for _, want := range values {
		encoded := AppendVarLen(nil, Uint28(want))
		r := NewStrictReader(encoded)
		got, err := r.ReadVarLen()
		require.NoError(t, err)
		assert.Equal(t, want, got.Uint32())
		assert.Equal(t, 0, r.Len())
	}
}

func TestVarLenCanonicalMinimality(t *testing.T) {
	for _, v := range []uint32{0, 1, 127, 128, 300, 16384, 1 << 27} {
		encoded := AppendVarLen(nil, Uint28(v))
		if v == 0 {
			assert.Equal(t, []byte{0x00}, encoded)
			continue
		}
		// no leading all-zero group
		assert.NotEqual(t, byte(0x80), encoded[0])
	}
}

func TestVarLenTruncated(t *testing.T) {
	// continuation bit set but no next byte
	_, err := NewStrictReader([]byte{0x81}).ReadVarLen()
	assert.ErrorIs(t, err, ErrMalformedData)

	// lenient keeps the bits read so far
	v, err := NewReader([]byte{0x81}).ReadVarLen()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v.Uint32())
}

func TestVarLenOverlong(t *testing.T) {
	overlong := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x7F}

	_, err := NewStrictReader(overlong).ReadVarLen()
	assert.ErrorIs(t, err, ErrMalformedData)

	// lenient returns the 4-byte accumulation, ignoring the dangling
	// continuation flag
	r := NewReader(overlong)
	v, err := r.ReadVarLen()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFFFFFFF), v.Uint32())
	assert.Equal(t, 1, r.Len())
}

func TestVarLenSlice(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	encoded, err := AppendVarLenSlice(nil, payload)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0xDE, 0xAD, 0xBE, 0xEF}, encoded)

	r := NewStrictReader(encoded)
	got, err := r.ReadVarLenSlice()
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, 0, r.Len())
}

func TestVarLenSliceShort(t *testing.T) {
	// declares 4 bytes, holds 2
	short := []byte{0x04, 0xDE, 0xAD}

	_, err := NewStrictReader(short).ReadVarLenSlice()
	assert.ErrorIs(t, err, ErrMalformedData)

	// lenient returns the bytes that remain
	r := NewReader(short)
	got, err := r.ReadVarLenSlice()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD}, got)
	assert.Equal(t, 0, r.Len())
}
