package metric

import (
	"sync"
)

var _ CounterI = &Counter{}
var _ CounterI = &SampleCounter{}

// CounterI is the basic interface for a counter that returns its current value and adds new observations
type CounterI interface {
	Value() int
	Add(i uint)
	Reset()
}

// Counter is a monotonically increasing counter
type Counter struct {
	value int
}

// Value returns the current value of the counter
func (c *Counter) Value() int {
	return c.value
}

// Add will increase the current count by i
func (c *Counter) Add(i uint) {
	c.value += int(i)
}

// Reset sets the value of the counter to zero
func (c *Counter) Reset() {
	c.value = 0
}

// NewCounter returns a new monotonically increasing counter
func NewCounter() *Counter {
	return &Counter{}
}

// SampleCounter counts events within a window measured in observations rather than wall time.
// Continuous health tests operate on windows of a fixed number of samples, so the counter tracks
// both the event count and the number of observations seen.  When the window is exhausted the
// closed count is pushed to history and a new window begins.  A zero window never closes and the
// counter acts like a monotonic counter that also tracks observations.
type SampleCounter struct {
	window  int
	seen    int
	hist    []int
	current Counter
}

// Value returns the event count within the current window
func (c *SampleCounter) Value() int {
	return c.current.Value()
}

// Seen returns the number of observations recorded in the current window
func (c *SampleCounter) Seen() int {
	return c.seen
}

// Add will increase the current window count by i without consuming an observation.  Most callers
// want Observe instead.
func (c *SampleCounter) Add(i uint) {
	c.current.Add(i)
}

// Observe records one observation, increasing the window count by i when the observation is a
// match.  It returns true when this observation closed the window.
func (c *SampleCounter) Observe(i uint) bool {
	c.current.Add(i)
	c.seen++
	if c.window > 0 && c.seen >= c.window {
		c.hist = append(c.hist, c.current.Value())
		c.current.Reset()
		c.seen = 0
		return true
	}
	return false
}

// History returns the counts of all closed windows
func (c *SampleCounter) History() []int {
	return append([]int{}, c.hist...)
}

// Reset will clear the history and start a new zero-valued window of the same size
func (c *SampleCounter) Reset() {
	c.hist = nil
	c.current.Reset()
	c.seen = 0
}

// NewSampleCounter creates a counter that closes its window every n observations
func NewSampleCounter(n int) *SampleCounter {
	return &SampleCounter{window: n}
}

// ConcurrentCounter is a Counter that is safe for concurrent use
type ConcurrentCounter struct {
	mu sync.RWMutex
	c  *Counter
}

func (c *ConcurrentCounter) Value() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.c.Value()
}

func (c *ConcurrentCounter) Add(i uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.c.Add(i)
}

func (c *ConcurrentCounter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.c.Reset()
}

func NewConcurrentCounter() *ConcurrentCounter {
	return &ConcurrentCounter{
		c: NewCounter(),
	}
}
