package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/storefront-server/internal/logger"
)

// Logging is a unary interceptor that logs gRPC calls.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method, duration and status code of each unary call.
// Health probes are logged at debug level.
func (l *Logging) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	code := status.Code(err)
	if err != nil {
		if _, ok := status.FromError(err); !ok {
			code = codes.Internal
		}
	}

	attrs := []any{
		"method", info.FullMethod,
		"duration_ms", time.Since(start).Milliseconds(),
		"status", code.String(),
	}

	switch {
	case err != nil:
		l.logger.Error("gRPC: request failed", append(attrs, "error", err.Error())...)
	case info.FullMethod == healthCheckMethod:
		l.logger.Debug("gRPC: request completed", attrs...)
	default:
		l.logger.Info("gRPC: request completed", attrs...)
	}

	return resp, err
}

const healthCheckMethod = "/grpc.health.v1.Health/Check"
