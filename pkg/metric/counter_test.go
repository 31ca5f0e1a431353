package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	tt := []struct {
		name   string
		values []uint
		expect int
	}{
		{name: "positive", values: []uint{1, 1, 2, 3, 4}, expect: 11},
		{name: "zeros", values: []uint{1, 1, 0, 0, 0}, expect: 2},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCounter()
			for _, i := range tc.values {
				c.Add(i)
			}
			assert.Equal(t, tc.expect, c.Value())
			c.Reset()
			assert.Equal(t, 0, c.Value())
			c.Add(1)
			assert.Equal(t, 1, c.Value())
		})
	}
}

func TestSampleCounter(t *testing.T) {
	tt := []struct {
		name    string
		window  int
		obs     []uint
		expV    int
		expSeen int
		expH    []int
	}{
		{name: "open window", window: 4, obs: []uint{1, 0, 1}, expV: 2, expSeen: 3, expH: []int{}},
		{name: "window closes", window: 3, obs: []uint{1, 0, 1}, expV: 0, expSeen: 0, expH: []int{2}},
		{name: "two windows", window: 2, obs: []uint{1, 1, 0, 1, 1}, expV: 1, expSeen: 1, expH: []int{2, 1}},
		{name: "no window", window: 0, obs: []uint{1, 1, 1, 1}, expV: 4, expSeen: 4, expH: []int{}},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			c := NewSampleCounter(tc.window)
			for _, o := range tc.obs {
				c.Observe(o)
			}
			assert.Equal(t, tc.expV, c.Value())
			assert.Equal(t, tc.expSeen, c.Seen())
			assert.Equal(t, tc.expH, c.History())
			c.Reset()
			assert.Equal(t, 0, c.Value())
			assert.Equal(t, 0, c.Seen())
			assert.Empty(t, c.History())
		})
	}
}

func TestSampleCounterClose(t *testing.T) {
	c := NewSampleCounter(2)
	assert.False(t, c.Observe(1))
	assert.True(t, c.Observe(0))
	assert.Equal(t, []int{1}, c.History())
}
