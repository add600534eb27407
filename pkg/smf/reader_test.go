package smf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	r := NewReader(buf)

	head, err := r.Split(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, head)
	assert.Equal(t, 3, r.Len())

	// returned slices alias the source buffer
	assert.Same(t, &buf[0], &head[0])

	// a failed split leaves the reader unchanged
	_, err = r.Split(4)
	assert.ErrorIs(t, err, ErrInvalidData)
	assert.Equal(t, 3, r.Len())

	rest, err := r.Split(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 4, 5}, rest)
	assert.Equal(t, 0, r.Len())
}

func TestReadFixedInts(t *testing.T) {
	r := NewReader([]byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE})

	b, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x12), b)

	v16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x3456), v16)

	v32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x789ABCDE), v32)

	_, err = r.ReadUint8()
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestReadFixedIntsShort(t *testing.T) {
	r := NewReader([]byte{0x12})

	_, err := r.ReadUint16()
	assert.ErrorIs(t, err, ErrInvalidData)
	_, err = r.ReadUint32()
	assert.ErrorIs(t, err, ErrInvalidData)

	// the single byte is still there
	assert.Equal(t, 1, r.Len())
}

func TestAppendFixedInts(t *testing.T) {
	assert.Equal(t, []byte{0x34, 0x56}, AppendUint16(nil, 0x3456))
	assert.Equal(t, []byte{0x78, 0x9A, 0xBC, 0xDE}, AppendUint32(nil, 0x789ABCDE))

	// round trip
	r := NewReader(AppendUint32(AppendUint16(nil, 12345), 9876543))
	v16, err := r.ReadUint16()
	require.NoError(t, err)
	v32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint16(12345), v16)
	assert.Equal(t, uint32(9876543), v32)
}
