package handler

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

const pingTimeout = 2 * time.Second

// StatusSetter is satisfied by *health.Server.
type StatusSetter interface {
	SetServingStatus(service string, status healthpb.HealthCheckResponse_ServingStatus)
}

// NewHealthServer returns a health server that reports NOT_SERVING until a
// HealthMonitor has seen the database.
func NewHealthServer() *health.Server {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return hs
}

// HealthMonitor keeps the gRPC health status in line with database reachability.
type HealthMonitor struct {
	pinger   model.Pinger
	status   StatusSetter
	interval time.Duration
	logger   *logger.Logger
}

// NewHealthMonitor creates a monitor that pings every interval.
func NewHealthMonitor(pinger model.Pinger, status StatusSetter, interval time.Duration, logger *logger.Logger) *HealthMonitor {
	return &HealthMonitor{
		pinger:   pinger,
		status:   status,
		interval: interval,
		logger:   logger,
	}
}

// Run checks once immediately and then on every tick until ctx is done,
// at which point the status goes to NOT_SERVING.
func (m *HealthMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	serving := m.check(ctx, false)
	for {
		select {
		case <-ctx.Done():
			m.status.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
			return
		case <-ticker.C:
			serving = m.check(ctx, serving)
		}
	}
}

func (m *HealthMonitor) check(ctx context.Context, wasServing bool) bool {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := m.pinger.Ping(pingCtx); err != nil {
		if wasServing {
			m.logger.Warn("Health: database unreachable",
				"error", err.Error())
		}
		m.status.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		return false
	}

	if !wasServing {
		m.logger.Info("Health: serving")
	}
	m.status.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return true
}
