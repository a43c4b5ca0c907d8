package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/storefront-server/internal/api/http/context"
	"github.com/dtroode/storefront-server/internal/mocks"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/testutil"
)

func claimsEcho(cm model.ContextManager, got *model.SessionClaims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := cm.GetClaimsFromContext(r.Context()); ok {
			*got = claims
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticate_Handle(t *testing.T) {
	claims := model.SessionClaims{SubjectID: uuid.New(), Role: model.RoleUser}

	tests := []struct {
		name       string
		prepare    func(r *http.Request)
		setup      func(signer *mocks.TokenSigner)
		wantStatus int
		wantClaims bool
	}{
		{
			name:       "missing token",
			prepare:    func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "bearer token",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer good")
			},
			setup: func(signer *mocks.TokenSigner) {
				signer.On("Verify", "good").Return(claims, nil)
			},
			wantStatus: http.StatusNoContent,
			wantClaims: true,
		},
		{
			name: "cookie token",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good"})
			},
			setup: func(signer *mocks.TokenSigner) {
				signer.On("Verify", "good").Return(claims, nil)
			},
			wantStatus: http.StatusNoContent,
			wantClaims: true,
		},
		{
			name: "header wins over cookie",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer good")
				r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale"})
			},
			setup: func(signer *mocks.TokenSigner) {
				signer.On("Verify", "good").Return(claims, nil)
			},
			wantStatus: http.StatusNoContent,
			wantClaims: true,
		},
		{
			name: "expired token",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer old")
			},
			setup: func(signer *mocks.TokenSigner) {
				signer.On("Verify", "old").Return(model.SessionClaims{}, model.ErrTokenExpired)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "non bearer scheme",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signer := mocks.NewTokenSigner(t)
			if tt.setup != nil {
				tt.setup(signer)
			}
			cm := httpcontext.NewManager()
			mw := NewAuthenticate(signer, cm, testutil.MakeNoopLogger())

			var got model.SessionClaims
			req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()

			mw.Handle(claimsEcho(cm, &got)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantClaims {
				assert.Equal(t, claims, got)
			}
		})
	}
}

func TestAuthenticate_ExpiredTokenCode(t *testing.T) {
	signer := mocks.NewTokenSigner(t)
	signer.On("Verify", "old").Return(model.SessionClaims{}, model.ErrTokenExpired)
	mw := NewAuthenticate(signer, httpcontext.NewManager(), testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer old")
	rec := httptest.NewRecorder()

	mw.Handle(http.NotFoundHandler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
}

func TestAuthenticate_Optional(t *testing.T) {
	claims := model.SessionClaims{SubjectID: uuid.New(), Role: model.RoleUser}
	signer := mocks.NewTokenSigner(t)
	signer.On("Verify", "good").Return(claims, nil)
	signer.On("Verify", "bad").Return(model.SessionClaims{}, model.ErrTokenInvalid)

	cm := httpcontext.NewManager()
	mw := NewAuthenticate(signer, cm, testutil.MakeNoopLogger())

	for token, want := range map[string]model.SessionClaims{"": {}, "good": claims, "bad": {}} {
		var got model.SessionClaims
		req := httptest.NewRequest(http.MethodGet, "/api/auth/logout", nil)
		if token != "" {
			req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		}
		rec := httptest.NewRecorder()

		mw.Optional(claimsEcho(cm, &got)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, want, got)
	}
}
