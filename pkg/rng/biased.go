package rng

import (
	"math"
	"math/rand"
	"time"
)

var _ Source = &BiasedSource{}

// BiasedSource emits symbols from an alphabet of size k where symbol 0 occurs with probability p
// and the remaining probability is spread uniformly over the other symbols.  Its min-entropy is
// -log2(max(p, (1-p)/(k-1))).
type BiasedSource struct {
	k int
	p float64
	r *rand.Rand
}

func (s *BiasedSource) Next() uint8 {
	if s.r.Float64() < s.p {
		return 0
	}
	return uint8(1 + s.r.Intn(s.k-1))
}

func (s *BiasedSource) MinEntropy() float64 {
	pmax := math.Max(s.p, (1-s.p)/float64(s.k-1))
	return -math.Log2(pmax)
}

// NewBiasedSource returns a biased source over an alphabet of size k >= 2 with 0 < p < 1
func NewBiasedSource(k int, p float64) *BiasedSource {
	return &BiasedSource{
		k: k,
		p: p,
		r: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewUniformSource returns a source that emits symbols uniformly over an alphabet of size k
func NewUniformSource(k int) *BiasedSource {
	return NewBiasedSource(k, 1.0/float64(k))
}
