package monitor

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	entropic "github.com/BTBurke/entropic"
	"github.com/BTBurke/entropic/pb"
	"github.com/BTBurke/entropic/pkg/proto"
	"github.com/cenkalti/backoff"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// ReportSender is an interface for sending source reports
type ReportSender interface {
	Create(m *Monitor, reason proto.ReportReason, opts ...grpc.DialOption)
	Send(result chan error, cancel chan bool)
}

// reportFromMonitor converts the current state of the monitor to a pb.SourceReport
func reportFromMonitor(m *Monitor, reason proto.ReportReason) pb.SourceReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	report := pb.SourceReport{
		Id:            m.Config.ID,
		Hostname:      m.Config.Hostname,
		Reason:        pb.ReportReason(reason),
		Time:          time.Now().Unix(),
		BytesObserved: m.bytesObserved,
		MinEntropy:    -1.0,
		Alarms:        marshalAlarms(m.alarms),
		Messages:      append([]string{}, m.messages...),
	}
	if m.estimates.Count() > 0 {
		report.MinEntropy = m.estimates.Min()
	}
	if m.lastResult != nil {
		report.Assessment = marshalResult(m.lastResult)
	}
	m.messages = nil
	return report
}

func marshalAlarms(alarms []Alarm) []*pb.HealthAlarm {
	out := make([]*pb.HealthAlarm, 0, len(alarms))
	for _, a := range alarms {
		out = append(out, &pb.HealthAlarm{
			Test:   a.Test.String(),
			Time:   a.Time.Unix(),
			Count:  uint32(a.Count),
			Cutoff: uint32(a.Cutoff),
		})
	}
	return out
}

func marshalResult(r *entropic.Result) *pb.ModeResult {
	out := &pb.ModeResult{
		TestType:   r.TestType.String(),
		MinEntropy: r.MinEntropy,
		HOriginal:  r.HOriginal,
		HBitstring: r.HBitstring,
		HAssessed:  r.HAssessed,
		WordSize:   uint32(r.WordSize),
	}
	for _, e := range r.Estimators {
		out.Estimators = append(out.Estimators, &pb.EstimatorResult{
			Name:            e.Name,
			EntropyEstimate: e.EntropyEstimate,
			Passed:          e.Passed,
			EntropyValid:    e.IsEntropyValid,
		})
	}
	return out
}

// Report is a wrapper for sending a source report via GRPC.  See pb.SourceReport for details.
type Report struct {
	Host  string
	Port  string
	Proto pb.SourceReport
	Opts  []grpc.DialOption
}

// Create prepares a new report based on the current state of the monitor
func (r *Report) Create(m *Monitor, reason proto.ReportReason, opts ...grpc.DialOption) {
	r.Host = m.Config.host
	r.Port = m.Config.port
	r.Proto = reportFromMonitor(m, reason)
	r.Opts = opts
	switch {
	case m.Config.useTLS:
		r.Opts = append(r.Opts, grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{})))
	default:
		r.Opts = append(r.Opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
}

// Send will transmit a report to the collector using a go routine.  Errors cause an exponential
// backoff until the call is successful or a cancel is received from the parent.
func (r *Report) Send(result chan error, cancel chan bool) {
	send := func() error {
		conn, err := grpc.Dial(net.JoinHostPort(r.Host, r.Port), r.Opts...)
		if err != nil {
			return err
		}
		defer conn.Close()

		client := pb.NewEntropyClient(conn)
		ack, err := client.Submit(context.Background(), &r.Proto)
		if err != nil {
			return err
		}
		if !ack.Success {
			return fmt.Errorf("send fail")
		}
		return nil
	}
	select {
	case result <- backoff.Retry(send, backoff.NewExponentialBackOff()):
	case <-cancel:
	}
}
