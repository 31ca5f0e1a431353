//go:build teststub

// Deterministic stand-ins for the cgo-backed suite, compiled only with the
// "teststub" build tag so unit tests and CI run without the C++ library and
// toolchain.  Estimates are fixed fractions of the channel width.  A sample
// whose first byte is 0xFF (all-ones prefix on the bitstring channel)
// triggers the internal-error path for testing.
package nist

import (
	"math"

	"github.com/BTBurke/entropic"
)

// stub reports frac of the channel width as the entropy estimate.
func stub(frac float64) entropic.EstimatorFunc {
	return func(symbols []uint8, alphSize int, ch entropic.Channel, verbose int) float64 {
		if ch == entropic.Bitstring && failurePrefix(symbols) {
			panic("stub failure")
		}
		return frac * math.Log2(float64(alphSize))
	}
}

// failurePrefix reports whether the bitstring opens with eight set bits,
// i.e. the original sample began with 0xFF at word size 8.
func failurePrefix(bits []uint8) bool {
	if len(bits) < 8 {
		return false
	}
	for _, b := range bits[:8] {
		if b != 1 {
			return false
		}
	}
	return true
}

func stubTupleLRS(symbols []uint8, alphSize int, ch entropic.Channel, verbose int) (float64, float64) {
	width := math.Log2(float64(alphSize))
	return 0.88 * width, 0.86 * width
}

func stubConfirm(symbols []uint8, alphSize int, verbose int) bool {
	return true
}

// Suite returns the deterministic stub suite.
func Suite() *entropic.Suite {
	return &entropic.Suite{
		MostCommon:  stub(0.95),
		Collision:   stub(0.90),
		Markov:      stub(0.85),
		Compression: stub(0.80),
		TupleLRS:    stubTupleLRS,
		MultiMCW:    stub(0.84),
		Lag:         stub(0.89),
		MultiMMC:    stub(0.83),
		LZ78Y:       stub(0.81),
		ChiSquare:   stubConfirm,
		LRSLength:   stubConfirm,
		Permutation: stubConfirm,
	}
}
