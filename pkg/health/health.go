package health

import (
	"math"
)

// Test defines methods available on continuous health tests.  Record accepts one raw sample at a
// time in the order produced by the noise source.  Alarm conditions latch: once HasAlarmed returns
// true, Record errors until Reset.
type Test interface {
	Name() string
	Record(sample uint8) error
	State() State
	HasAlarmed() bool
	Failures() int
	Cutoff() int
	Reset()
	Metric() map[string]float64
}

// falseAlarmExp sets the false positive probability for both tests at 2^-20
const falseAlarmExp = 20.0

// RCTCutoff returns the repetition count cutoff 1 + ceil(20/H) for a source asserted to produce H
// bits of min-entropy per sample
func RCTCutoff(h float64) int {
	return 1 + int(math.Ceil(falseAlarmExp/h))
}

// APTWindow returns the adaptive proportion window size: 1024 samples for binary sources, 512
// otherwise
func APTWindow(binary bool) int {
	if binary {
		return 1024
	}
	return 512
}

// APTCutoff returns the smallest count of the reference sample within the window that occurs with
// probability at most 2^-20 for a source producing H bits of min-entropy per sample
func APTCutoff(h float64, window int) int {
	p := math.Pow(2, -h)
	return critBinom(window, p, 1-math.Pow(2, -falseAlarmExp)) + 1
}

// critBinom returns the smallest c such that the binomial CDF P(X <= c) meets or exceeds q for
// X ~ Binomial(n, p).  The terms are accumulated from log-space probabilities so that large
// windows do not underflow.
func critBinom(n int, p, q float64) int {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return n
	}
	logP := math.Log(p)
	logQ := math.Log1p(-p)
	lgN, _ := math.Lgamma(float64(n + 1))

	cdf := 0.0
	for k := 0; k <= n; k++ {
		lgK, _ := math.Lgamma(float64(k + 1))
		lgNK, _ := math.Lgamma(float64(n - k + 1))
		cdf += math.Exp(lgN - lgK - lgNK + float64(k)*logP + float64(n-k)*logQ)
		if cdf >= q {
			return k
		}
	}
	return n
}
