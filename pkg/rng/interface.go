// Package rng provides synthetic noise sources with known min-entropy.  They are used to
// calibrate health test cutoffs by simulation and to exercise monitors in tests.
package rng

// Source is a noise source that emits one sample at a time
type Source interface {
	Next() uint8
	// MinEntropy returns the true min-entropy of the source in bits per sample
	MinEntropy() float64
}
