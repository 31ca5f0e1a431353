package health

import (
	"fmt"

	"github.com/BTBurke/entropic/pkg/metric"
)

var _ Test = &AdaptiveProportion{}

// AdaptiveProportion detects a large loss of entropy that shows up as one sample value occurring
// far more often than the asserted min-entropy allows.  The first sample of each window is the
// reference and the test counts its occurrences over the whole window, alarming when the count
// reaches the cutoff.
type AdaptiveProportion struct {
	name     metric.Name
	window   int
	cutoff   int
	ref      uint8
	haveRef  bool
	count    *metric.SampleCounter
	failures *metric.Counter
	fsm      *Machine
}

// APTOption applies options to construct a custom adaptive proportion test
type APTOption func(*AdaptiveProportion) error

// WithCutoff overrides the computed cutoff, e.g. with a value calibrated by simulation
func WithCutoff(c int) APTOption {
	return func(t *AdaptiveProportion) error {
		if c <= 1 {
			return fmt.Errorf("cutoff must be > 1, got %d", c)
		}
		t.cutoff = c
		return nil
	}
}

// NewAdaptiveProportion returns an adaptive proportion test for a source asserted to produce h
// bits of min-entropy per sample.  Binary sources use a window of 1024 samples, all others 512.
func NewAdaptiveProportion(h float64, binary bool, name metric.Name, opts ...APTOption) (*AdaptiveProportion, error) {
	if h <= 0 {
		return nil, fmt.Errorf("asserted min-entropy must be > 0, got %f", h)
	}
	w := APTWindow(binary)
	t := &AdaptiveProportion{
		name:     name,
		window:   w,
		cutoff:   APTCutoff(h, w),
		count:    metric.NewSampleCounter(w),
		failures: metric.NewCounter(),
		fsm: newMachine(Startup,
			T(Startup, Monitoring),
			T(Monitoring, Alarmed),
		),
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *AdaptiveProportion) Name() string {
	return t.name.String()
}

// Record checks one sample against the window reference.  It returns AlarmedError when called on a
// latched test.
func (t *AdaptiveProportion) Record(sample uint8) error {
	if t.fsm.State() == Alarmed {
		return AlarmedError{Msg: "adaptive proportion test has alarmed and must be reset"}
	}
	if t.fsm.State() == Startup {
		if err := t.fsm.Transition(Monitoring); err != nil {
			return err
		}
	}

	var match uint
	if !t.haveRef {
		t.ref = sample
		t.haveRef = true
		match = 1
	} else if sample == t.ref {
		match = 1
	}

	b := t.count.Value() + int(match)
	if t.count.Observe(match) {
		// window closed, next sample starts a new window with a new reference
		t.haveRef = false
	}
	if b >= t.cutoff {
		t.failures.Add(1)
		return t.fsm.Transition(Alarmed)
	}
	return nil
}

func (t *AdaptiveProportion) State() State {
	return t.fsm.State()
}

func (t *AdaptiveProportion) HasAlarmed() bool {
	return t.fsm.State() == Alarmed
}

// Failures returns the number of times this test has alarmed since creation
func (t *AdaptiveProportion) Failures() int {
	return t.failures.Value()
}

func (t *AdaptiveProportion) Cutoff() int {
	return t.cutoff
}

// Window returns the window size in samples
func (t *AdaptiveProportion) Window() int {
	return t.window
}

// Reset clears the alarm latch and starts a new window from the next sample.  The failure count is
// preserved for reporting.
func (t *AdaptiveProportion) Reset() {
	t.count.Reset()
	t.haveRef = false
	t.fsm.Reset()
}

// Metric returns the current window count, cutoff, and failure count identified by metadata:
// <name>[test=apt value=<(count|cutoff|failures)>]
func (t *AdaptiveProportion) Metric() map[string]float64 {
	out := make(map[string]float64)
	for k, v := range map[string]float64{
		"count":    float64(t.count.Value()),
		"cutoff":   float64(t.cutoff),
		"failures": float64(t.failures.Value()),
	} {
		n := metric.NewNameFrom(t.name)
		n.AddMetadata(map[string]string{"test": "apt", "value": k})
		out[n.String()] = v
	}
	return out
}
