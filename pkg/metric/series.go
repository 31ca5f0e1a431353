package metric

import (
	"fmt"
	"math"
)

// SeriesRecorder accepts float observations and returns them in temporal order
type SeriesRecorder interface {
	Record(p float64)
	Values() []float64
	Count() int
	Name() string
}

var _ SeriesRecorder = &Series{}

// Series is a fixed-capacity ring buffer of observations.  Monitors use it to keep a rolling
// history of entropy estimates without unbounded growth.
type Series struct {
	name   Name
	count  int
	values []float64
}

type SeriesOption func(s *Series) error

// Values returns a copy of the current values in the series in temporal order from oldest to most recent
func (s *Series) Values() []float64 {
	switch {
	case s.count < len(s.values):
		out := make([]float64, len(s.values))
		copy(out, s.values)
		return out
	default:
		out := make([]float64, 0, len(s.values))
		oldest := s.nextIndex()
		return append(append(out, s.values[oldest:]...), s.values[0:oldest]...)
	}
}

// Record adds a new observation to the series
func (s *Series) Record(p float64) {
	if len(s.values) == 0 {
		return
	}

	s.values[s.nextIndex()] = p
	s.count++
}

// Last returns the most recent observation or 0 if nothing has been recorded
func (s *Series) Last() float64 {
	if s.count == 0 || len(s.values) == 0 {
		return 0
	}
	last := s.nextIndex() - 1
	if last < 0 {
		last = len(s.values) - 1
	}
	return s.values[last]
}

// Min returns the smallest recorded observation still held by the series.  Entropy assessments
// award the minimum over the history, so an empty series returns +Inf for use in comparisons.
func (s *Series) Min() float64 {
	if s.count == 0 {
		return math.Inf(1)
	}
	n := s.count
	if n > len(s.values) {
		n = len(s.values)
	}
	// Values pads unwritten slots with zeros when the ring has not wrapped,
	// so only the first n entries are real observations.
	min := math.Inf(1)
	for _, v := range s.Values()[:n] {
		min = math.Min(min, v)
	}
	return min
}

// nextIndex returns the index of the oldest observation in the series to be overwritten by new data
func (s *Series) nextIndex() int {
	cap := len(s.values)
	if cap == 0 {
		return 0
	}
	return s.count % cap
}

// Count returns the total number of observations for this series
func (s *Series) Count() int {
	return s.count
}

// Name returns the name of the series and associated metadata
func (s *Series) Name() string {
	return s.name.String()
}

// NewSeries creates a new series with a capacity of cap
func NewSeries(cap int, opts ...SeriesOption) (*Series, error) {
	if cap <= 0 {
		return nil, fmt.Errorf("series must be initialized with a capacity >= 1")
	}

	s := &Series{
		values: make([]float64, cap),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// WithName sets the name of the series
func WithName(name string, md map[string]string) SeriesOption {
	return func(s *Series) error {
		if name == "" {
			return fmt.Errorf("series name must be the non-empty string")
		}
		s.name = NewName(name, md)
		return nil
	}
}

// WithValues initializes a series from an existing set of observations.  The number of observations does not
// have to be equal to the capacity.
func WithValues(values []float64) SeriesOption {
	return func(s *Series) error {
		for _, v := range values {
			s.Record(v)
		}
		return nil
	}
}
