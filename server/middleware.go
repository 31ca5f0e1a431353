package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// UnaryRequestID returns a GRPC unary interceptor that generates a UUID v4 request ID, stores it
// in the context, and sends it back to the client via the "x-request-id" response header
func UnaryRequestID() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		requestID := uuid.New().String()

		ctx = context.WithValue(ctx, requestIDKey, requestID)

		md := metadata.Pairs("x-request-id", requestID)
		_ = grpc.SetHeader(ctx, md) // best effort

		return handler(ctx, req)
	}
}

// RequestID extracts the request ID from the context.  It returns an empty string if no request ID
// has been set.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// UnaryLogger returns a GRPC unary interceptor that logs one structured line per request
func UnaryLogger(log *logrus.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := logrus.Fields{
			"method":     info.FullMethod,
			"request_id": RequestID(ctx),
			"duration":   time.Since(start).String(),
		}
		if err != nil {
			fields["code"] = status.Code(err).String()
			log.WithFields(fields).WithError(err).Error("request failed")
		} else {
			log.WithFields(fields).Info("request handled")
		}
		return resp, err
	}
}
