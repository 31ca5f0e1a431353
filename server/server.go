package server

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"time"

	entropic "github.com/BTBurke/entropic"
	"github.com/BTBurke/entropic/pb"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/status"
)

// Service implements the Entropy GRPC service
type Service struct {
	pb.UnimplementedEntropyServer

	suite *entropic.Suite
	cfg   *Config
	log   *logrus.Logger
}

// New returns a collector service that dispatches assessments to the given estimator suite
func New(suite *entropic.Suite, cfg *Config, log *logrus.Logger) *Service {
	return &Service{suite: suite, cfg: cfg, log: log}
}

// NewLogger returns a logrus logger configured from the collector config
func NewLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	if cfg.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// Assess runs the requested assessment pipelines over the submitted data and returns one mode
// result per requested pipeline
func (s *Service) Assess(ctx context.Context, req *pb.AssessRequest) (*pb.AssessResponse, error) {
	if len(req.GetData()) == 0 {
		return nil, status.Error(codes.InvalidArgument, "data is required")
	}
	if !req.GetIid() && !req.GetNonIid() {
		return nil, status.Error(codes.InvalidArgument, "at least one of iid or non_iid must be set")
	}

	opts := []entropic.Option{entropic.Verbose(int(req.GetVerbose()))}
	if req.GetConditioned() {
		opts = append(opts, entropic.ConditionedOutput())
	}
	a, err := entropic.New(s.suite, opts...)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	var modes []entropic.TestType
	if req.GetIid() {
		modes = append(modes, entropic.IID)
	}
	if req.GetNonIid() {
		modes = append(modes, entropic.NonIID)
	}

	resp := &pb.AssessResponse{
		MinEntropy:  math.Inf(1),
		SampleCount: uint64(len(req.GetData())),
	}
	for _, mode := range modes {
		label := modeLabel(mode)
		requestsTotal.WithLabelValues(label).Inc()
		dataSizeBytes.WithLabelValues(label).Observe(float64(len(req.GetData())))

		start := time.Now()
		var res *entropic.Result
		var aerr error
		switch mode {
		case entropic.IID:
			res, aerr = a.AssessIID(req.GetData(), int(req.GetWordSize()))
		default:
			res, aerr = a.AssessNonIID(req.GetData(), int(req.GetWordSize()))
		}
		durationSeconds.WithLabelValues(label).Observe(time.Since(start).Seconds())

		if aerr != nil {
			errorsTotal.WithLabelValues(label, errorType(aerr)).Inc()
			return nil, grpcError(aerr)
		}

		minEntropyValue.WithLabelValues(label).Observe(res.MinEntropy)
		resp.Results = append(resp.Results, resultToPB(res))
		resp.WordSize = uint32(res.WordSize)
		if res.MinEntropy < resp.MinEntropy {
			resp.MinEntropy = res.MinEntropy
		}
	}
	return resp, nil
}

// Submit receives a report from a noise source monitor, records it in the collector metrics, and
// acknowledges receipt
func (s *Service) Submit(ctx context.Context, rep *pb.SourceReport) (*pb.Ack, error) {
	if rep.GetId() == "" {
		return nil, status.Error(codes.InvalidArgument, "report id is required")
	}

	if rep.GetMinEntropy() >= 0 {
		sourceMinEntropy.WithLabelValues(rep.GetId(), rep.GetHostname()).Set(rep.GetMinEntropy())
	}
	for _, a := range rep.GetAlarms() {
		sourceAlarmsTotal.WithLabelValues(rep.GetId(), a.GetTest()).Inc()
	}

	s.log.WithFields(logrus.Fields{
		"request_id":     RequestID(ctx),
		"id":             rep.GetId(),
		"hostname":       rep.GetHostname(),
		"reason":         rep.GetReason().String(),
		"bytes_observed": rep.GetBytesObserved(),
		"min_entropy":    rep.GetMinEntropy(),
		"alarms":         len(rep.GetAlarms()),
	}).Info("source report received")
	for _, msg := range rep.GetMessages() {
		s.log.WithField("id", rep.GetId()).Warn(msg)
	}

	return &pb.Ack{Success: true}, nil
}

// Run serves the GRPC endpoint and the prometheus metrics endpoint until the context is cancelled
func (s *Service) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("could not listen on grpc port: %v", err)
	}

	serverOpts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(s.cfg.MaxRecvSize),
		grpc.ChainUnaryInterceptor(UnaryRequestID(), UnaryLogger(s.log)),
	}
	if s.cfg.TLSEnabled {
		creds, err := credentials.NewServerTLSFromFile(s.cfg.TLSCertFile, s.cfg.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("could not load tls credentials: %v", err)
		}
		serverOpts = append(serverOpts, grpc.Creds(creds))
	}

	srv := grpc.NewServer(serverOpts...)
	pb.RegisterEntropyServer(srv, s)

	var metricsSrv *http.Server
	if s.cfg.MetricsEnabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.MetricsPort),
			Handler: mux,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				s.log.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	go func() {
		<-ctx.Done()
		srv.GracefulStop()
		if metricsSrv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsSrv.Shutdown(shutdownCtx)
		}
	}()

	s.log.WithFields(logrus.Fields{
		"grpc_port":    s.cfg.GRPCPort,
		"metrics_port": s.cfg.MetricsPort,
		"tls":          s.cfg.TLSEnabled,
	}).Info("collector listening")
	return srv.Serve(lis)
}

func modeLabel(t entropic.TestType) string {
	if t == entropic.IID {
		return "iid"
	}
	return "non_iid"
}

// errorType classifies an assessment error for the error counter
func errorType(err error) string {
	switch {
	case errors.Is(err, entropic.ErrInvalidData), errors.Is(err, entropic.ErrWordSize):
		return "input"
	case errors.Is(err, entropic.ErrDegenerateAlphabet):
		return "degenerate"
	case errors.Is(err, entropic.ErrAllocation):
		return "allocation"
	case errors.Is(err, entropic.ErrEstimator):
		return "estimator"
	default:
		return "internal"
	}
}

// grpcError maps the assessment error taxonomy onto GRPC status codes, preserving the diagnostic
// text verbatim
func grpcError(err error) error {
	switch {
	case errors.Is(err, entropic.ErrInvalidData), errors.Is(err, entropic.ErrWordSize):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, entropic.ErrDegenerateAlphabet):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, entropic.ErrAllocation):
		return status.Error(codes.ResourceExhausted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func resultToPB(r *entropic.Result) *pb.ModeResult {
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
