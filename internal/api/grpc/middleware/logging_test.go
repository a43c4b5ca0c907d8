package middleware

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/storefront-server/internal/logger"
)

func TestLogging_HandleGRPC(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		handler  grpc.UnaryHandler
		wantCode codes.Code
		wantLog  string
	}{
		{
			name:   "success",
			method: "/svc/Method",
			handler: func(ctx context.Context, req any) (any, error) {
				return "ok", nil
			},
			wantCode: codes.OK,
			wantLog:  "gRPC: request completed",
		},
		{
			name:   "grpc error propagates",
			method: "/svc/Method",
			handler: func(ctx context.Context, req any) (any, error) {
				return nil, status.Error(codes.InvalidArgument, "bad input")
			},
			wantCode: codes.InvalidArgument,
			wantLog:  "gRPC: request failed",
		},
		{
			name:   "plain error is reported as internal",
			method: "/svc/Method",
			handler: func(ctx context.Context, req any) (any, error) {
				return nil, errors.New("boom")
			},
			wantCode: codes.Internal,
			wantLog:  "status=Internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			lg := NewLogging(logger.NewWithWriter(&buf, 0))

			info := &grpc.UnaryServerInfo{FullMethod: tt.method}
			resp, err := lg.HandleGRPC(context.Background(), struct{}{}, info, tt.handler)

			assert.Contains(t, buf.String(), tt.wantLog)
			if tt.wantCode == codes.OK {
				assert.NoError(t, err)
				assert.Equal(t, "ok", resp)
				return
			}
			assert.Error(t, err)
		})
	}
}

func TestLogging_HealthCheckIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogging(logger.NewWithWriter(&buf, 4))

	info := &grpc.UnaryServerInfo{FullMethod: healthCheckMethod}
	_, err := lg.HandleGRPC(context.Background(), struct{}{}, info, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})

	assert.NoError(t, err)
	assert.Empty(t, buf.String())
}
