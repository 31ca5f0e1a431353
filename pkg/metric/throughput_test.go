package metric

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThroughputSeries(t *testing.T) {
	ts, stop, err := NewThroughputSeries(10, 50*time.Millisecond, WithName("throughput_gauge", map[string]string{"source": "hwrng"}))
	assert.NoError(t, err)
	defer stop()

	ts.Record(4096)
	ts.Record(4096)
	time.Sleep(80 * time.Millisecond)

	// 8192 bytes over a 50ms window is 163840 bytes/sec
	assert.GreaterOrEqual(t, ts.Count(), 1)
	assert.Equal(t, 163840.0, ts.Values()[0])
	assert.Equal(t, "throughput_gauge[source=hwrng]", ts.Name())
}

func TestThroughputSeriesStalledSource(t *testing.T) {
	ts, stop, err := NewThroughputSeries(10, 10*time.Millisecond)
	assert.NoError(t, err)
	defer stop()

	// no reads: windows close at rate 0
	time.Sleep(25 * time.Millisecond)
	assert.GreaterOrEqual(t, ts.Count(), 1)
	assert.Equal(t, 0.0, ts.Values()[0])
	assert.Equal(t, 0.0, ts.Average())
}

func TestThroughputSeriesAverage(t *testing.T) {
	ts, stop, err := NewThroughputSeries(4, time.Hour)
	assert.NoError(t, err)
	defer stop()

	// closed windows injected directly so the test does not wait on the ticker
	ts.mu.Lock()
	ts.s.Record(100.0)
	ts.s.Record(300.0)
	ts.mu.Unlock()

	assert.Equal(t, 200.0, ts.Average())
}

func TestThroughputSeriesRejectsZeroWindow(t *testing.T) {
	_, _, err := NewThroughputSeries(10, 0)
	assert.Error(t, err)
}
