package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/storefront-server/internal/model"
)

func TestObserveCredentialOperation(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		err     error
		outcome string
	}{
		{name: "success", op: "metrics_test_login", err: nil, outcome: OutcomeSuccess},
		{name: "classified", op: "metrics_test_login", err: fmt.Errorf("wrap: %w", model.ErrInvalidCredentials), outcome: "INVALID_CREDENTIALS"},
		{name: "unclassified", op: "metrics_test_login", err: errors.New("boom"), outcome: OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(credentialOperations.WithLabelValues(tt.op, tt.outcome))
			ObserveCredentialOperation(tt.op, tt.err)
			after := testutil.ToFloat64(credentialOperations.WithLabelValues(tt.op, tt.outcome))
			assert.Equal(t, before+1, after)
		})
	}
}
