package health

import (
	"fmt"

	"github.com/BTBurke/entropic/pkg/metric"
)

var _ Test = &RepetitionCount{}

// RepetitionCount detects a noise source that has become stuck on a single output.  It counts the
// length of the current run of identical samples and alarms when the run reaches the cutoff.
type RepetitionCount struct {
	name     metric.Name
	cutoff   int
	last     uint8
	run      *metric.Counter
	failures *metric.Counter
	fsm      *Machine
}

// NewRepetitionCount returns a repetition count test for a source asserted to produce h bits of
// min-entropy per sample
func NewRepetitionCount(h float64, name metric.Name) (*RepetitionCount, error) {
	if h <= 0 {
		return nil, fmt.Errorf("asserted min-entropy must be > 0, got %f", h)
	}
	return &RepetitionCount{
		name:     name,
		cutoff:   RCTCutoff(h),
		run:      metric.NewCounter(),
		failures: metric.NewCounter(),
		fsm: newMachine(Startup,
			T(Startup, Monitoring),
			T(Monitoring, Alarmed),
		),
	}, nil
}

func (t *RepetitionCount) Name() string {
	return t.name.String()
}

// Record checks one sample against the current run.  It returns AlarmedError when called on a
// latched test.
func (t *RepetitionCount) Record(sample uint8) error {
	switch t.fsm.State() {
	case Alarmed:
		return AlarmedError{Msg: "repetition count test has alarmed and must be reset"}
	case Startup:
		if err := t.fsm.Transition(Monitoring); err != nil {
			return err
		}
		t.last = sample
		t.run.Reset()
		t.run.Add(1)
		return nil
	}

	if sample == t.last {
		t.run.Add(1)
	} else {
		t.last = sample
		t.run.Reset()
		t.run.Add(1)
	}
	if t.run.Value() >= t.cutoff {
		t.failures.Add(1)
		return t.fsm.Transition(Alarmed)
	}
	return nil
}

func (t *RepetitionCount) State() State {
	return t.fsm.State()
}

func (t *RepetitionCount) HasAlarmed() bool {
	return t.fsm.State() == Alarmed
}

// Failures returns the number of times this test has alarmed since creation
func (t *RepetitionCount) Failures() int {
	return t.failures.Value()
}

func (t *RepetitionCount) Cutoff() int {
	return t.cutoff
}

// Reset clears the alarm latch and restarts the run from the next sample.  The failure count is
// preserved for reporting.
func (t *RepetitionCount) Reset() {
	t.run.Reset()
	t.fsm.Reset()
}

// Metric returns the current run length, cutoff, and failure count identified by metadata:
// <name>[test=rct value=<(run|cutoff|failures)>]
func (t *RepetitionCount) Metric() map[string]float64 {
	out := make(map[string]float64)
	for k, v := range map[string]float64{
		"run":      float64(t.run.Value()),
		"cutoff":   float64(t.cutoff),
		"failures": float64(t.failures.Value()),
	} {
		n := metric.NewNameFrom(t.name)
		n.AddMetadata(map[string]string{"test": "rct", "value": k})
		out[n.String()] = v
	}
	return out
}
