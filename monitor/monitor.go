package monitor

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	entropic "github.com/BTBurke/entropic"
	"github.com/BTBurke/entropic/pkg/eventbus"
	"github.com/BTBurke/entropic/pkg/health"
	"github.com/BTBurke/entropic/pkg/metric"
	"github.com/BTBurke/entropic/pkg/proto"
)

// estimateHistory is the number of assessment results retained for reporting
const estimateHistory = 100

// throughputWindow is the sample window for the source throughput gauge
const throughputWindow = time.Second

// Alarm records one health test failure
type Alarm struct {
	Test   proto.HealthTest
	Time   time.Time
	Count  int
	Cutoff int
}

// Monitor runs continuous health tests over every sample read from a noise source and assesses
// windows of samples for min-entropy.  Health alarms and assessment results are published on the
// event bus and reported to the collector.
type Monitor struct {
	Config Config

	mu            sync.Mutex
	bytesObserved uint64
	alarms        []Alarm
	messages      []string
	lastResult    *entropic.Result

	assessment   *entropic.Assessment
	rct          *health.RepetitionCount
	apt          *health.AdaptiveProportion
	estimates    *metric.Series
	throughput   *metric.ThroughputSeries
	stopSampling func()
	bus          *eventbus.EventBus
	sender       ReportSender
	cancelSend   chan bool
}

// New returns a monitor for a single noise source.  The assessment is built from the given
// estimator suite: a Conditioned config restricts it to the bitstring channel, otherwise the
// source is assessed as raw (initial entropy).  A nil sender disables reporting.
func New(suite *entropic.Suite, sender ReportSender, options ...ConfigOption) (*Monitor, []error) {
	config, errs := newConfig(options...)
	if len(errs) > 0 {
		return nil, errs
	}
	if suite == nil {
		return nil, []error{fmt.Errorf("monitor requires an estimator suite")}
	}
	var aopts []entropic.Option
	if config.Conditioned {
		aopts = append(aopts, entropic.ConditionedOutput())
	}
	assessment, err := entropic.New(suite, aopts...)
	if err != nil {
		return nil, []error{err}
	}

	md := map[string]string{"source": config.Source}
	rct, err := health.NewRepetitionCount(config.AssertedEntropy, metric.NewName("health", md))
	if err != nil {
		return nil, []error{err}
	}
	var aptOpts []health.APTOption
	if config.APTCutoff > 0 {
		aptOpts = append(aptOpts, health.WithCutoff(config.APTCutoff))
	}
	apt, err := health.NewAdaptiveProportion(config.AssertedEntropy, config.WordSize == 1, metric.NewName("health", md), aptOpts...)
	if err != nil {
		return nil, []error{err}
	}
	estimates, err := metric.NewSeries(estimateHistory, metric.WithName("min_entropy_gauge", md))
	if err != nil {
		return nil, []error{err}
	}
	throughput, stop, err := metric.NewThroughputSeries(estimateHistory, throughputWindow, metric.WithName("throughput_gauge", md))
	if err != nil {
		return nil, []error{err}
	}

	return &Monitor{
		Config:       config,
		assessment:   assessment,
		rct:          rct,
		apt:          apt,
		estimates:    estimates,
		throughput:   throughput,
		stopSampling: stop,
		bus:          eventbus.New(),
		sender:       sender,
		cancelSend:   make(chan bool),
	}, nil
}

// Bus returns the event bus so that callers can subscribe to monitor events
func (m *Monitor) Bus() *eventbus.EventBus {
	return m.bus
}

// BytesObserved returns the total number of samples read from the source
func (m *Monitor) BytesObserved() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bytesObserved
}

// Alarms returns a copy of all health alarms raised since the monitor started
func (m *Monitor) Alarms() []Alarm {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Alarm{}, m.alarms...)
}

// Throughput returns the average bytes per second read from the source over the retained sample
// history, or 0.0 before the first sample window closes
func (m *Monitor) Throughput() float64 {
	return m.throughput.Average()
}

// MinEntropy returns the smallest assessed min-entropy over the retained history, or the sentinel
// -1.0 before the first assessment completes
func (m *Monitor) MinEntropy() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.estimates.Count() == 0 {
		return -1.0
	}
	return m.estimates.Min()
}

// Run reads samples from r until the context is cancelled or the reader is exhausted.  Samples
// stream through both health tests and accumulate into windows for full assessment.  A shutdown
// report is sent before Run returns.
func (m *Monitor) Run(ctx context.Context, r io.Reader) error {
	m.sendReport(proto.Start)

	ticker := time.NewTicker(m.Config.ReportInterval)
	defer ticker.Stop()

	chunks := make(chan []byte, 1)
	readErr := make(chan error, 1)
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				select {
				case chunks <- chunk:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	window := make([]byte, 0, m.Config.AssessmentWindow)
	for {
		select {
		case <-ctx.Done():
			m.shutdown()
			return nil
		case err := <-readErr:
			m.shutdown()
			if err == io.EOF {
				return nil
			}
			return err
		case <-ticker.C:
			m.bus.Dispatch(eventbus.Event{EventType: eventbus.TypePeriodic, Data: m.Throughput()})
			m.sendReport(proto.Periodic)
		case chunk := <-chunks:
			m.throughput.Record(len(chunk))
			for _, b := range chunk {
				window = m.observe(b, window)
			}
		}
	}
}

// observe runs one sample through the health tests and returns the updated assessment window
func (m *Monitor) observe(b byte, window []byte) []byte {
	m.mu.Lock()
	m.bytesObserved++
	m.mu.Unlock()

	if err := m.rct.Record(b); err != nil {
		m.recordError(err)
	}
	if m.rct.HasAlarmed() {
		m.alarm(proto.RepetitionCount, m.rct.Cutoff())
		m.rct.Reset()
	}
	if err := m.apt.Record(b); err != nil {
		m.recordError(err)
	}
	if m.apt.HasAlarmed() {
		m.alarm(proto.AdaptiveProportion, m.apt.Cutoff())
		m.apt.Reset()
	}

	window = append(window, b)
	if len(window) >= m.Config.AssessmentWindow {
		m.assess(window)
		window = window[:0]
	}
	return window
}

// alarm records a health test failure, publishes it, and reports it immediately
func (m *Monitor) alarm(test proto.HealthTest, cutoff int) {
	a := Alarm{
		Test:   test,
		Time:   time.Now().UTC(),
		Count:  cutoff,
		Cutoff: cutoff,
	}
	m.mu.Lock()
	m.alarms = append(m.alarms, a)
	m.mu.Unlock()

	m.bus.Dispatch(eventbus.Event{EventType: eventbus.TypeHealthAlarm, Data: a})
	m.sendReport(proto.HealthAlarm)
}

// assess runs a full entropy assessment over one window of samples
func (m *Monitor) assess(window []byte) {
	var res *entropic.Result
	var err error
	switch m.Config.TestType {
	case entropic.IID:
		res, err = m.assessment.AssessIID(window, m.Config.WordSize)
	default:
		res, err = m.assessment.AssessNonIID(window, m.Config.WordSize)
	}
	if err != nil {
		m.recordError(err)
		return
	}

	m.mu.Lock()
	m.estimates.Record(res.MinEntropy)
	m.lastResult = res
	m.mu.Unlock()

	m.bus.Dispatch(eventbus.Event{EventType: eventbus.TypeAssessment, Data: res})
	m.sendReport(proto.Assessment)
}

// recordError keeps the error for the next report and publishes it on the error topic
func (m *Monitor) recordError(err error) {
	m.mu.Lock()
	m.messages = append(m.messages, err.Error())
	m.mu.Unlock()
	m.bus.Dispatch(eventbus.Event{EventType: eventbus.TypeError, Data: err}, eventbus.OnErrorTopic())
	ReportError(err)
}

func (m *Monitor) sendReport(reason proto.ReportReason) {
	if m.sender == nil {
		return
	}
	m.sender.Create(m, reason)
	result := make(chan error, 1)
	go m.sender.Send(result, m.cancelSend)
	go func() {
		if err := <-result; err != nil {
			m.mu.Lock()
			m.messages = append(m.messages, fmt.Sprintf("report send failed: %v", err))
			m.mu.Unlock()
		}
	}()
}

func (m *Monitor) shutdown() {
	m.stopSampling()
	m.sendReport(proto.Shutdown)

	busCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.bus.Shutdown(busCtx); err != nil {
		ReportError(err)
	}
	// abort any report sends still in backoff
	close(m.cancelSend)
}
