// Package metrics exposes prometheus instrumentation for credential operations.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dtroode/storefront-server/internal/model"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var credentialOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "storefront",
	Name:      "credential_operations_total",
	Help:      "Total number of credential operations by outcome",
}, []string{"operation", "outcome"})

// ObserveCredentialOperation counts one completed operation. Classified
// failures are labelled with their error code.
func ObserveCredentialOperation(operation string, err error) {
	credentialOperations.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	var apiErr *model.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return OutcomeError
}
