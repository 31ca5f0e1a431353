// Command entropicd monitors a noise source.  Every sample read from the source device passes
// through the SP 800-90B continuous health tests, windows of samples are assessed for min-entropy
// with the built-in estimator suite, and results are reported to a collector over GRPC.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	entropic "github.com/BTBurke/entropic"
	"github.com/BTBurke/entropic/monitor"
	"github.com/BTBurke/entropic/pkg/eventbus"
	"github.com/BTBurke/entropic/pkg/nist"
	"github.com/sirupsen/logrus"
)

func main() {
	opts, err := monitor.ParseCommandLine()
	if err != nil {
		fmt.Printf("Could not parse configuration: %s\n\nUse entropicd --help for options\n", err)
		os.Exit(1)
	}

	log := logrus.New()

	m, errs := monitor.New(nist.Suite(), &monitor.Report{}, opts...)
	if len(errs) > 0 {
		fmt.Println("Error in config:")
		for _, e := range errs {
			fmt.Println(e)
		}
		os.Exit(1)
	}

	source, err := os.Open(m.Config.Source)
	if err != nil {
		log.WithError(err).WithField("source", m.Config.Source).Fatal("could not open noise source")
	}
	defer source.Close()

	events, done := m.Bus().Subscribe()
	go logEvents(log, events, done)

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info("shutting down")
		cancel()
	}()

	log.WithFields(logrus.Fields{
		"id":               m.Config.ID,
		"source":           m.Config.Source,
		"asserted_entropy": m.Config.AssertedEntropy,
	}).Info("monitoring noise source")

	if err := m.Run(ctx, source); err != nil {
		log.WithError(err).Fatal("monitor stopped")
	}
}

// logEvents writes one structured line per monitor event
func logEvents(log *logrus.Logger, events chan eventbus.Event, done chan struct{}) {
	for evt := range events {
		switch evt.EventType {
		case eventbus.TypeHealthAlarm:
			a := evt.Data.(monitor.Alarm)
			log.WithFields(logrus.Fields{
				"test":   a.Test.String(),
				"cutoff": a.Cutoff,
			}).Warn("health test alarm")
		case eventbus.TypeAssessment:
			res := evt.Data.(*entropic.Result)
			log.WithFields(logrus.Fields{
				"test_type":   res.TestType.String(),
				"min_entropy": res.MinEntropy,
				"word_size":   res.WordSize,
			}).Info("assessment complete")
		case eventbus.TypePeriodic:
			log.WithField("bytes_per_sec", evt.Data.(float64)).Info("source throughput")
		case eventbus.TypeError:
			log.WithError(evt.Data.(error)).Error("monitor error")
		}
	}
	close(done)
}
