package monitor

import (
	"testing"
	"time"

	entropic "github.com/BTBurke/entropic"
	"github.com/BTBurke/entropic/pb"
	"github.com/BTBurke/entropic/pkg/proto"
	"github.com/stretchr/testify/assert"
)

func TestReportFromMonitorInitial(t *testing.T) {
	m := newTestMonitor(t, nil, ID("hwrng-01"), AssertedEntropy("3.0"))

	report := reportFromMonitor(m, proto.Start)
	assert.Equal(t, "hwrng-01", report.Id)
	assert.Equal(t, m.Config.Hostname, report.Hostname)
	assert.Equal(t, pb.ReportReason_START, report.Reason)
	assert.Equal(t, uint64(0), report.BytesObserved)
	// sentinel before the first assessment completes
	assert.Equal(t, -1.0, report.MinEntropy)
	assert.Empty(t, report.Alarms)
	assert.Empty(t, report.Messages)
	assert.Nil(t, report.Assessment)
	assert.InDelta(t, time.Now().Unix(), report.Time, 5)
}

func TestReportFromMonitorState(t *testing.T) {
	m := newTestMonitor(t, nil, ID("hwrng-01"), AssertedEntropy("3.0"))

	alarmTime := time.Now().UTC()
	m.mu.Lock()
	m.bytesObserved = 4096
	m.alarms = []Alarm{{Test: proto.RepetitionCount, Time: alarmTime, Count: 4, Cutoff: 4}}
	m.messages = []string{"read stalled"}
	m.lastResult = &entropic.Result{
		MinEntropy: 2.4,
		HOriginal:  2.85,
		HBitstring: 0.80,
		HAssessed:  2.4,
		WordSize:   3,
		TestType:   entropic.NonIID,
		Estimators: []entropic.EstimatorResult{
			{Name: "Most Common Value", EntropyEstimate: 2.85, Passed: true, IsEntropyValid: true},
			{Name: "Compression", EntropyEstimate: -1.0, Passed: false, IsEntropyValid: false},
		},
	}
	m.estimates.Record(2.7)
	m.estimates.Record(2.4)
	m.mu.Unlock()

	report := reportFromMonitor(m, proto.Assessment)
	assert.Equal(t, pb.ReportReason_ASSESSMENT, report.Reason)
	assert.Equal(t, uint64(4096), report.BytesObserved)
	assert.Equal(t, 2.4, report.MinEntropy)

	if assert.Len(t, report.Alarms, 1) {
		assert.Equal(t, "RepetitionCount", report.Alarms[0].Test)
		assert.Equal(t, alarmTime.Unix(), report.Alarms[0].Time)
		assert.Equal(t, uint32(4), report.Alarms[0].Count)
		assert.Equal(t, uint32(4), report.Alarms[0].Cutoff)
	}

	if assert.NotNil(t, report.Assessment) {
		assert.Equal(t, "Non-IID", report.Assessment.TestType)
		assert.Equal(t, 2.4, report.Assessment.MinEntropy)
		assert.Equal(t, 2.85, report.Assessment.HOriginal)
		assert.Equal(t, 0.80, report.Assessment.HBitstring)
		assert.Equal(t, uint32(3), report.Assessment.WordSize)
		if assert.Len(t, report.Assessment.Estimators, 2) {
			assert.Equal(t, "Most Common Value", report.Assessment.Estimators[0].Name)
			assert.True(t, report.Assessment.Estimators[0].EntropyValid)
			assert.False(t, report.Assessment.Estimators[1].EntropyValid)
		}
	}

	assert.Equal(t, []string{"read stalled"}, report.Messages)

	// messages are consumed by the report, alarms persist for the life of the monitor
	next := reportFromMonitor(m, proto.Periodic)
	assert.Empty(t, next.Messages)
	assert.Len(t, next.Alarms, 1)
}

func TestReportCreate(t *testing.T) {
	m := newTestMonitor(t, nil, ID("hwrng-01"), AssertedEntropy("3.0"), Host("collector.internal"), Port("7979"))

	r := &Report{}
	r.Create(m, proto.Start)
	assert.Equal(t, "collector.internal", r.Host)
	assert.Equal(t, "7979", r.Port)
	assert.Equal(t, pb.ReportReason_START, r.Proto.Reason)
	// TLS by default gives exactly one credential option
	assert.Len(t, r.Opts, 1)

	insec := newTestMonitor(t, nil, ID("hwrng-01"), AssertedEntropy("3.0"), NoTLS())
	r2 := &Report{}
	r2.Create(insec, proto.Start)
	assert.Len(t, r2.Opts, 1)
}
