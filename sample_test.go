package entropic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordSizeDetection(t *testing.T) {
	tt := []struct {
		Name     string
		Data     []byte
		Expected int
	}{
		{Name: "all zero", Data: []byte{0x00, 0x00, 0x00}, Expected: 1},
		{Name: "binary", Data: []byte{0x00, 0x01, 0x01}, Expected: 1},
		{Name: "two bit", Data: []byte{0x02, 0x01}, Expected: 2},
		{Name: "four bit", Data: []byte{0x08, 0x03}, Expected: 4},
		{Name: "full byte", Data: []byte{0x80, 0x01}, Expected: 8},
		{Name: "or of values", Data: []byte{0x01, 0x02, 0x04}, Expected: 3},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			s, err := NewSample(tc.Data, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.Expected, s.WordSize)
		})
	}
}

func TestSampleValidation(t *testing.T) {
	tt := []struct {
		Name     string
		Data     []byte
		WordSize int
		Sentinel error
	}{
		{Name: "empty data", Data: []byte{}, WordSize: 0, Sentinel: ErrInvalidData},
		{Name: "nil data", Data: nil, WordSize: 8, Sentinel: ErrInvalidData},
		{Name: "negative word size", Data: []byte{0x01}, WordSize: -1, Sentinel: ErrWordSize},
		{Name: "word size too large", Data: []byte{0x01}, WordSize: 9, Sentinel: ErrWordSize},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := NewSample(tc.Data, tc.WordSize)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.Sentinel))
		})
	}
}

func TestAlphabetCompaction(t *testing.T) {
	// Values 1 and 3 under a 2-bit alphabet leave a hole at 0 and 2, so the
	// dense mapping must rewrite the symbols while Raw keeps masked values.
	s, err := NewSample([]byte{0x03, 0x01, 0x03, 0x01}, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, s.AlphSize)
	assert.Equal(t, uint8(3), s.MaxSymbol)
	assert.Equal(t, []uint8{1, 0, 1, 0}, s.Symbols)
	assert.Equal(t, []uint8{3, 1, 3, 1}, s.Raw)
}

func TestCompactionSkippedWhenDense(t *testing.T) {
	s, err := NewSample([]byte{0x00, 0x01, 0x02, 0x03}, 2)
	require.NoError(t, err)

	assert.Equal(t, 4, s.AlphSize)
	assert.Equal(t, uint8(3), s.MaxSymbol)
	assert.Equal(t, []uint8{0, 1, 2, 3}, s.Symbols)
	assert.Equal(t, s.Raw, s.Symbols)
}

func TestBitstringFromRawValues(t *testing.T) {
	// Spec example: four bytes at word size 8.  The bitstring must expand the
	// pre-compaction values MSB first, not the dense indices.
	s, err := NewSample([]byte{0x00, 0x00, 0x00, 0x01}, 8)
	require.NoError(t, err)

	assert.Equal(t, 2, s.AlphSize)
	assert.Equal(t, uint8(1), s.MaxSymbol)
	assert.Equal(t, []uint8{0, 0, 0, 1}, s.Symbols)
	assert.Equal(t, 32, s.BitLen())

	// Reconstruct the original bytes from the expansion.
	for i := 0; i < 4; i++ {
		var v uint8
		for j := 0; j < 8; j++ {
			v = v<<1 | s.Bits[i*8+j]
		}
		assert.Equal(t, s.Raw[i], v)
	}
}

func TestBitstringNotCompacted(t *testing.T) {
	// With a hole in the alphabet, expanding compacted indices would produce
	// different bits than expanding the raw values.
	s, err := NewSample([]byte{0x06, 0x01}, 3)
	require.NoError(t, err)

	assert.Equal(t, []uint8{1, 1, 0, 0, 0, 1}, s.Bits)
	assert.Equal(t, []uint8{1, 0}, s.Symbols)
}

func TestBinaryBitstringSharesSymbols(t *testing.T) {
	s, err := NewSample([]byte{0x00, 0x01, 0x01, 0x00}, 1)
	require.NoError(t, err)

	assert.Equal(t, s.Len(), s.BitLen())
	// Same backing array, no separate allocation.
	assert.Equal(t, &s.Symbols[0], &s.Bits[0])
}

func TestMaskingAppliedBeforeAlphabet(t *testing.T) {
	// 0xFF and 0xFB differ raw but both mask to 3 at 2 bits; distinct masked
	// values are {1,3}.
	s, err := NewSample([]byte{0xFF, 0x01, 0xFB}, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, s.AlphSize)
	assert.Equal(t, uint8(3), s.MaxSymbol)
	assert.Equal(t, []uint8{1, 0, 1}, s.Symbols)
}

func TestMappingPreservesValueOrder(t *testing.T) {
	// First appearance order must not matter: dense indices follow increasing
	// raw value.
	s, err := NewSample([]byte{0x07, 0x02, 0x05}, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, s.AlphSize)
	assert.Equal(t, []uint8{2, 0, 1}, s.Symbols)
}
