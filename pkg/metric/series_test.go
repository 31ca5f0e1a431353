package metric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeriesRecord(t *testing.T) {
	tt := []struct {
		name     string
		capacity int
		obs      []float64
		exp      []float64
	}{
		{name: "underfill", capacity: 5, obs: []float64{1, 2, 3}, exp: []float64{1, 2, 3, 0, 0}},
		{name: "fill", capacity: 5, obs: []float64{1, 2, 3, 4, 5}, exp: []float64{1, 2, 3, 4, 5}},
		{name: "overfill", capacity: 3, obs: []float64{1, 2, 3, 4, 5}, exp: []float64{3, 4, 5}},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := NewSeries(tc.capacity)
			for _, o := range tc.obs {
				s.Record(o)
			}
			assert.Equal(t, tc.exp, s.Values())
		})
	}
}

func TestSeriesLastMin(t *testing.T) {
	tt := []struct {
		name     string
		capacity int
		obs      []float64
		expLast  float64
		expMin   float64
	}{
		{name: "empty", capacity: 3, obs: nil, expLast: 0, expMin: math.Inf(1)},
		{name: "underfill", capacity: 4, obs: []float64{3.2, 1.5, 2.9}, expLast: 2.9, expMin: 1.5},
		{name: "wraps", capacity: 2, obs: []float64{0.5, 3.0, 2.0}, expLast: 2.0, expMin: 2.0},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := NewSeries(tc.capacity)
			for _, o := range tc.obs {
				s.Record(o)
			}
			assert.Equal(t, tc.expLast, s.Last())
			assert.Equal(t, tc.expMin, s.Min())
		})
	}
}

func TestWithValues(t *testing.T) {
	s, err := NewSeries(6, WithValues([]float64{1, 2, 3, 4}))
	assert.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 0, 0}, s.Values())
}
