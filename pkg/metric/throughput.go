package metric

import (
	"fmt"
	"sync"
	"time"
)

// ThroughputSeries tracks the byte rate read from a noise source.  Byte counts accumulate into
// the open sample window and once per window the total is folded into the backing series as a
// rate in bytes per second.  Windows with no reads record a rate of 0, so a stalled source shows
// up as a run of zeros rather than a gap.
type ThroughputSeries struct {
	s      *Series
	mu     sync.RWMutex
	t      *time.Ticker
	window time.Duration
	bytes  float64
	done   chan bool
	wg     sync.WaitGroup
}

// NewThroughputSeries returns a throughput series holding up to capacity window rates, together
// with a stop function that halts the sampling goroutine and must be called when the series is no
// longer in use.
func NewThroughputSeries(capacity int, window time.Duration, opts ...SeriesOption) (*ThroughputSeries, func(), error) {
	s, err := NewSeries(capacity, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("could not create throughput series: %v", err)
	}
	if window <= 0 {
		return nil, nil, fmt.Errorf("throughput sample window must be greater than zero")
	}

	ts := &ThroughputSeries{
		s:      s,
		t:      time.NewTicker(window),
		window: window,
		done:   make(chan bool),
	}
	ts.wg.Add(1)
	go func(ts *ThroughputSeries) {
		defer ts.wg.Done()
		for {
			select {
			case <-ts.t.C:
				ts.mu.Lock()
				ts.s.Record(ts.bytes / ts.window.Seconds())
				ts.bytes = 0
				ts.mu.Unlock()
			case <-ts.done:
				ts.t.Stop()
				return
			}
		}
	}(ts)

	return ts, func() { ts.done <- true; ts.wg.Wait() }, nil
}

// Record adds n bytes to the open sample window
func (ts *ThroughputSeries) Record(n int) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.bytes += float64(n)
}

// Values returns the recorded rates in bytes per second, oldest first
func (ts *ThroughputSeries) Values() []float64 {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.s.Values()
}

// Average returns the mean rate in bytes per second over the retained windows, or 0 before the
// first window closes
func (ts *ThroughputSeries) Average() float64 {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	n := ts.s.Count()
	if n == 0 {
		return 0
	}
	vals := ts.s.Values()
	if n > len(vals) {
		n = len(vals)
	}
	sum := 0.0
	for _, v := range vals[:n] {
		sum += v
	}
	return sum / float64(n)
}

func (ts *ThroughputSeries) Name() string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.s.Name()
}

func (ts *ThroughputSeries) Count() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.s.Count()
}
