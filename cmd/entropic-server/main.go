// Command entropic-server runs the collector: a GRPC service that assesses submitted data for
// min-entropy and receives reports from noise source monitors.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/BTBurke/entropic/pkg/nist"
	"github.com/BTBurke/entropic/server"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := server.NewLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info("shutting down")
		cancel()
	}()

	svc := server.New(nist.Suite(), cfg, log)
	if err := svc.Run(ctx); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
