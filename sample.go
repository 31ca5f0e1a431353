package entropic

import (
	"fmt"
	"math/bits"
)

// Sample is the normalized form of a raw byte buffer: every byte masked to
// WordSize bits, the alphabet compacted to dense indices, and the masked
// values expanded into a bitstring.  A Sample is built once per assessment
// call and is read-only afterwards, so estimators may consume it from
// multiple goroutines without synchronization.
type Sample struct {
	// WordSize is the number of bits per symbol, in [1,8].
	WordSize int

	// Symbols holds the alphabet-compacted sequence with values in
	// [0, AlphSize).
	Symbols []uint8

	// Raw holds the masked but uncompacted values.
	Raw []uint8

	// Bits is the MSB-first binary expansion of Raw, one entry per bit.
	// Bit statistics are always taken over the pre-compaction values;
	// expanding the dense indices instead would distort them.  For
	// WordSize == 1 Bits shares backing storage with Symbols.
	Bits []uint8

	// AlphSize is the number of distinct masked values observed.
	AlphSize int

	// MaxSymbol is the largest masked value observed.
	MaxSymbol uint8
}

// Len returns the number of symbols in the sample.
func (s *Sample) Len() int { return len(s.Symbols) }

// BitLen returns the length of the bitstring expansion.
func (s *Sample) BitLen() int { return len(s.Bits) }

// NewSample normalizes raw bytes into a Sample.  A wordSize of 0 requests
// auto-detection: the smallest width that spans every observed value, with an
// all-zero buffer yielding 1.  Explicit widths must be in [1,8].
func NewSample(data []byte, wordSize int) (*Sample, error) {
	if len(data) == 0 {
		return nil, newError("NewSample", ErrInvalidData, "data is empty")
	}
	if wordSize < 0 || wordSize > 8 {
		return nil, newError("NewSample", ErrWordSize, fmt.Sprintf("got %d", wordSize))
	}
	if wordSize == 0 {
		wordSize = detectWordSize(data)
	}

	mask := uint8(1<<uint(wordSize) - 1)
	s := &Sample{
		WordSize: wordSize,
		Symbols:  make([]uint8, len(data)),
		Raw:      make([]uint8, len(data)),
	}

	var seen [256]bool
	for i, b := range data {
		v := b & mask
		s.Symbols[i] = v
		s.Raw[i] = v
		if v > s.MaxSymbol {
			s.MaxSymbol = v
		}
		seen[v] = true
	}

	// Dense mapping in increasing order of raw value.
	var table [256]uint8
	for v := 0; v < 1<<uint(wordSize); v++ {
		if seen[v] {
			table[v] = uint8(s.AlphSize)
			s.AlphSize++
		}
	}

	if wordSize == 1 {
		s.Bits = s.Symbols
	} else {
		s.Bits = make([]uint8, len(data)*wordSize)
		for i, v := range s.Raw {
			for j := 0; j < wordSize; j++ {
				s.Bits[i*wordSize+j] = (v >> uint(wordSize-1-j)) & 0x1
			}
		}
	}

	// Rewrite only when some value in the observed range never occurred;
	// otherwise the masked values are already dense.
	if s.AlphSize < int(s.MaxSymbol)+1 {
		for i, v := range s.Symbols {
			s.Symbols[i] = table[v]
		}
	}

	return s, nil
}

// detectWordSize returns the width in bits of the largest value present in
// the data, treating an all-zero buffer as width 1.
func detectWordSize(data []byte) int {
	var or uint8
	for _, b := range data {
		or |= b
	}
	if or == 0 {
		return 1
	}
	return bits.Len8(or)
}
