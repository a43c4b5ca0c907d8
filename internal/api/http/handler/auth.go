package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/api/http/middleware"
	"github.com/dtroode/storefront-server/internal/api/http/response"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// CookieSettings controls the session cookie written on successful authentication.
type CookieSettings struct {
	TTL    time.Duration
	Secure bool
}

// Auth serves the account and password recovery endpoints.
type Auth struct {
	credentials    model.CredentialService
	contextManager model.ContextManager
	cookie         CookieSettings
	logger         *logger.Logger
}

// NewAuth creates the auth handler.
func NewAuth(credentials model.CredentialService, contextManager model.ContextManager, cookie CookieSettings, logger *logger.Logger) *Auth {
	return &Auth{
		credentials:    credentials,
		contextManager: contextManager,
		cookie:         cookie,
		logger:         logger,
	}
}

type sessionResponse struct {
	Success bool       `json:"success"`
	Token   string     `json:"token"`
	User    model.User `json:"user"`
}

type userResponse struct {
	Success bool       `json:"success"`
	User    model.User `json:"user"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Auth) SignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	session, err := h.credentials.SignUp(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	h.writeSession(w, session)
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	session, err := h.credentials.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	h.writeSession(w, session)
}

func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	var claims *model.SessionClaims
	if c, ok := h.contextManager.GetClaimsFromContext(r.Context()); ok {
		claims = &c
	}

	if err := h.credentials.Logout(r.Context(), claims); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	response.JSON(w, http.StatusOK, messageResponse{Success: true, Message: "Logged out"})
}

func (h *Auth) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	// the token only ever travels by email
	if _, err := h.credentials.ForgotPassword(r.Context(), req.Email); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: fmt.Sprintf("Email sent to %s", req.Email),
	})
}

func (h *Auth) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	session, err := h.credentials.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.Password, req.ConfirmPassword)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	h.writeSession(w, session)
}

func (h *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, h.logger, model.ErrUnauthenticated)
		return
	}

	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	if err := h.credentials.ChangePassword(r.Context(), claims.SubjectID, req.OldPassword, req.NewPassword); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, messageResponse{Success: true, Message: "Password changed"})
}

func (h *Auth) Profile(w http.ResponseWriter, r *http.Request) {
	var claims *model.SessionClaims
	if c, ok := h.contextManager.GetClaimsFromContext(r.Context()); ok {
		claims = &c
	}

	user, err := h.credentials.GetProfile(r.Context(), claims)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, userResponse{Success: true, User: user})
}

func (h *Auth) ChangeRole(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, h.logger, model.ErrInvalidInput)
		return
	}

	var req struct {
		Role model.Role `json:"role"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	user, err := h.credentials.ChangeRole(r.Context(), userID, req.Role)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, userResponse{Success: true, User: user})
}

func (h *Auth) writeSession(w http.ResponseWriter, session model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookie.TTL),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	response.JSON(w, http.StatusOK, sessionResponse{Success: true, Token: session.Token, User: session.User})
}

const maxJSONBody = 1 << 20

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", model.ErrInvalidInput)
	}
	return nil
}
