package context

import (
	"context"

	"github.com/dtroode/storefront-server/internal/model"
)

type claimsKey struct{}

var _ model.ContextManager = (*Manager)(nil)

// Manager stores verified session claims in a request context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetClaimsToContext returns a copy of ctx carrying claims.
func (m *Manager) SetClaimsToContext(ctx context.Context, claims model.SessionClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaimsFromContext returns the claims stored by SetClaimsToContext.
func (m *Manager) GetClaimsFromContext(ctx context.Context) (model.SessionClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(model.SessionClaims)
	return claims, ok
}
