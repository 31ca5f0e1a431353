package rng

import (
	"math"
	"math/rand"
	"time"
)

var _ Source = &MarkovSource{}

// MarkovSource emits binary samples where each sample repeats the previous one with probability q.
// It models a noise source with serial correlation.  The per-sample min-entropy conditioned on the
// previous output is -log2(max(q, 1-q)).
type MarkovSource struct {
	q    float64
	last uint8
	r    *rand.Rand
}

func (s *MarkovSource) Next() uint8 {
	if s.r.Float64() >= s.q {
		s.last = 1 - s.last
	}
	return s.last
}

func (s *MarkovSource) MinEntropy() float64 {
	return -math.Log2(math.Max(s.q, 1-s.q))
}

// NewMarkovSource returns a correlated binary source with repeat probability 0 < q < 1
func NewMarkovSource(q float64) *MarkovSource {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &MarkovSource{
		q:    q,
		last: uint8(r.Intn(2)),
		r:    r,
	}
}
