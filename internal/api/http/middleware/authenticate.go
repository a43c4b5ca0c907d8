package middleware

import (
	"net/http"
	"strings"

	"github.com/dtroode/storefront-server/internal/api/http/response"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "token"

// Authenticate verifies the session token and injects its claims into the request context.
type Authenticate struct {
	signer         model.TokenSigner
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(signer model.TokenSigner, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{signer: signer, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid session token.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			response.Error(w, m.logger, model.ErrUnauthenticated)
			return
		}

		claims, err := m.signer.Verify(token)
		if err != nil {
			m.logger.Debug("Authenticate: token rejected",
				"path", r.URL.Path,
				"error", err.Error())
			response.Error(w, m.logger, err)
			return
		}

		ctx := m.contextManager.SetClaimsToContext(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional injects claims when a valid token is present and passes the
// request on either way.
func (m *Authenticate) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := tokenFromRequest(r); token != "" {
			if claims, err := m.signer.Verify(token); err == nil {
				r = r.WithContext(m.contextManager.SetClaimsToContext(r.Context(), claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// tokenFromRequest prefers the Authorization header over the cookie.
func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}
