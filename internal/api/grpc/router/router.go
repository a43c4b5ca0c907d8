package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/dtroode/storefront-server/internal/api/grpc/middleware"
	"github.com/dtroode/storefront-server/internal/logger"
)

// Router builds the gRPC server exposing the standard health service.
type Router struct {
	health *health.Server
	logger *logger.Logger
}

// New creates new gRPC Router instance.
func New(health *health.Server, logger *logger.Logger) *Router {
	return &Router{health: health, logger: logger}
}

// Register creates the gRPC server with logging and panic recovery and
// registers the health service on it.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	recoverOpt := recovery.WithRecoveryHandlerContext(func(_ context.Context, p any) error {
		r.logger.Error("gRPC: recovered from panic",
			"panic", p)
		return status.Error(codes.Internal, "internal error")
	})

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoverOpt),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoverOpt),
		),
	)
	healthpb.RegisterHealthServer(s, r.health)

	return s
}
