package model

import "context"

// ContextManager carries verified session claims through a request context.
type ContextManager interface {
	SetClaimsToContext(ctx context.Context, claims SessionClaims) context.Context
	GetClaimsFromContext(ctx context.Context) (SessionClaims, bool)
}
