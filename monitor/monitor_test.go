package monitor

import (
	"bytes"
	"context"
	"io"
	"math"
	"sync"
	"testing"
	"time"

	entropic "github.com/BTBurke/entropic"
	"github.com/BTBurke/entropic/pkg/eventbus"
	"github.com/BTBurke/entropic/pkg/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc"
)

func init() {
	SuppressErrorReporting = true
}

// fakeSuite returns fixed fractions of the maximum entropy so monitor tests do not depend on the
// external estimator implementations
func fakeSuite() *entropic.Suite {
	est := func(frac float64) entropic.EstimatorFunc {
		return func(symbols []uint8, alphSize int, ch entropic.Channel, verbose int) float64 {
			return frac * math.Log2(float64(alphSize))
		}
	}
	return &entropic.Suite{
		MostCommon:  est(0.95),
		Collision:   est(0.90),
		Markov:      est(0.85),
		Compression: est(0.80),
		TupleLRS: func(symbols []uint8, alphSize int, ch entropic.Channel, verbose int) (float64, float64) {
			max := math.Log2(float64(alphSize))
			return 0.88 * max, 0.86 * max
		},
		MultiMCW:    est(0.84),
		Lag:         est(0.89),
		MultiMMC:    est(0.83),
		LZ78Y:       est(0.81),
		ChiSquare:   func(symbols []uint8, alphSize int, verbose int) bool { return true },
		LRSLength:   func(symbols []uint8, alphSize int, verbose int) bool { return true },
		Permutation: func(symbols []uint8, alphSize int, verbose int) bool { return true },
	}
}

type mockSender struct {
	mock.Mock
	mu      sync.Mutex
	reasons []proto.ReportReason
}

func (s *mockSender) Create(m *Monitor, reason proto.ReportReason, opts ...grpc.DialOption) {
	s.mu.Lock()
	s.reasons = append(s.reasons, reason)
	s.mu.Unlock()
	s.Called(m, reason)
}

func (s *mockSender) Send(result chan error, cancel chan bool) {
	s.Called()
	result <- nil
}

func (s *mockSender) sawReason(r proto.ReportReason) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, seen := range s.reasons {
		if seen == r {
			return true
		}
	}
	return false
}

// cycleReader emits a repeating cycle of n distinct symbols, which never trips a health test
// configured for log2(n) bits per sample
func cycleData(n, length int) []byte {
	out := make([]byte, length)
	for i := range out {
		out[i] = byte(i % n)
	}
	return out
}

func newTestMonitor(t *testing.T, sender ReportSender, opts ...ConfigOption) *Monitor {
	t.Helper()
	m, errs := New(fakeSuite(), sender, opts...)
	assert.Empty(t, errs)
	return m
}

func TestMonitorRequiresSuite(t *testing.T) {
	_, errs := New(nil, nil, ID("hwrng-01"), AssertedEntropy("3.0"))
	assert.NotEmpty(t, errs)
}

func TestMonitorAssessesWindows(t *testing.T) {
	m := newTestMonitor(t, nil,
		ID("hwrng-01"),
		AssertedEntropy("3.0"),
		AssessmentWindow("2048"),
	)

	events, done := m.Bus().Subscribe()
	var assessments []entropic.Result
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for evt := range events {
			if evt.EventType == eventbus.TypeAssessment {
				assessments = append(assessments, *evt.Data.(*entropic.Result))
			}
		}
		close(done)
	}()

	// two full windows plus a partial one that is never assessed
	err := m.Run(context.Background(), bytes.NewReader(cycleData(8, 5000)))
	assert.NoError(t, err)
	wg.Wait()

	assert.Len(t, assessments, 2)
	for _, res := range assessments {
		assert.Equal(t, entropic.NonIID, res.TestType)
		assert.Greater(t, res.MinEntropy, 0.0)
	}
	assert.Equal(t, uint64(5000), m.BytesObserved())
	assert.Greater(t, m.MinEntropy(), 0.0)
	assert.Empty(t, m.Alarms())
}

func TestMonitorStuckSource(t *testing.T) {
	m := newTestMonitor(t, nil,
		ID("hwrng-01"),
		AssertedEntropy("8.0"),
		AssessmentWindow("100000"),
	)

	events, done := m.Bus().Subscribe()
	var alarms []Alarm
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for evt := range events {
			if evt.EventType == eventbus.TypeHealthAlarm {
				alarms = append(alarms, evt.Data.(Alarm))
			}
		}
		close(done)
	}()

	// a stuck source repeats one value; RCT cutoff for H=8 is 4
	err := m.Run(context.Background(), bytes.NewReader(bytes.Repeat([]byte{0x42}, 64)))
	assert.NoError(t, err)
	wg.Wait()

	assert.NotEmpty(t, alarms)
	assert.Equal(t, proto.RepetitionCount, alarms[0].Test)
	assert.Equal(t, 4, alarms[0].Cutoff)
	assert.NotEmpty(t, m.Alarms())
}

// channelSuite wraps the fake suite so tests can observe which measurement channels the
// assessment dispatched to
func channelSuite(mu *sync.Mutex, seen map[entropic.Channel]bool) *entropic.Suite {
	s := fakeSuite()
	wrap := func(f entropic.EstimatorFunc) entropic.EstimatorFunc {
		return func(symbols []uint8, alphSize int, ch entropic.Channel, verbose int) float64 {
			mu.Lock()
			seen[ch] = true
			mu.Unlock()
			return f(symbols, alphSize, ch, verbose)
		}
	}
	s.MostCommon = wrap(s.MostCommon)
	s.Collision = wrap(s.Collision)
	s.Markov = wrap(s.Markov)
	s.Compression = wrap(s.Compression)
	s.MultiMCW = wrap(s.MultiMCW)
	s.Lag = wrap(s.Lag)
	s.MultiMMC = wrap(s.MultiMMC)
	s.LZ78Y = wrap(s.LZ78Y)
	tuple := s.TupleLRS
	s.TupleLRS = func(symbols []uint8, alphSize int, ch entropic.Channel, verbose int) (float64, float64) {
		mu.Lock()
		seen[ch] = true
		mu.Unlock()
		return tuple(symbols, alphSize, ch, verbose)
	}
	return s
}

func TestMonitorConditionedMode(t *testing.T) {
	tt := []struct {
		name       string
		opts       []ConfigOption
		expLiteral bool
	}{
		{name: "raw source assesses the literal channel", opts: nil, expLiteral: true},
		{name: "conditioned output skips the literal channel", opts: []ConfigOption{Conditioned()}, expLiteral: false},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			var mu sync.Mutex
			seen := make(map[entropic.Channel]bool)
			opts := append([]ConfigOption{ID("hwrng-01"), AssertedEntropy("3.0"), AssessmentWindow("2048")}, tc.opts...)
			m, errs := New(channelSuite(&mu, seen), nil, opts...)
			assert.Empty(t, errs)

			err := m.Run(context.Background(), bytes.NewReader(cycleData(8, 2048)))
			assert.NoError(t, err)

			mu.Lock()
			defer mu.Unlock()
			assert.True(t, seen[entropic.Bitstring])
			assert.Equal(t, tc.expLiteral, seen[entropic.Literal])
		})
	}
}

func TestMonitorReports(t *testing.T) {
	sender := &mockSender{}
	sender.On("Create", mock.Anything, mock.Anything).Return()
	sender.On("Send").Return()

	m := newTestMonitor(t, sender,
		ID("hwrng-01"),
		AssertedEntropy("3.0"),
		AssessmentWindow("2048"),
	)

	err := m.Run(context.Background(), bytes.NewReader(cycleData(8, 2048)))
	assert.NoError(t, err)

	assert.True(t, sender.sawReason(proto.Start))
	assert.True(t, sender.sawReason(proto.Assessment))
	assert.True(t, sender.sawReason(proto.Shutdown))
	assert.False(t, sender.sawReason(proto.HealthAlarm))
}

func TestMonitorCancel(t *testing.T) {
	m := newTestMonitor(t, nil,
		ID("hwrng-01"),
		AssertedEntropy("3.0"),
	)

	// a reader that never returns EOF
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		errs <- m.Run(ctx, pr)
	}()

	go func() {
		for {
			if _, err := pw.Write(cycleData(8, 256)); err != nil {
				return
			}
		}
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errs:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop on context cancel")
	}
	assert.Greater(t, m.BytesObserved(), uint64(0))
}
