package middleware

import (
	"net/http"
	"slices"

	"github.com/dtroode/storefront-server/internal/api/http/response"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// RequireRole lets a request through only when the authenticated session
// holds one of the given roles. It must run after Authenticate.
func RequireRole(contextManager model.ContextManager, logger *logger.Logger, roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := contextManager.GetClaimsFromContext(r.Context())
			if !ok {
				response.Error(w, logger, model.ErrUnauthenticated)
				return
			}
			if !slices.Contains(roles, claims.Role) {
				logger.Info("Authorize: role rejected",
					"user_id", claims.SubjectID,
					"role", claims.Role,
					"path", r.URL.Path)
				response.Error(w, logger, model.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
