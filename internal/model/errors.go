package model

import (
	"errors"
	"net/http"
)

// ErrNotFound is returned by stores when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Error is a classified failure that the request boundary can report to a client.
type Error struct {
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

var (
	ErrValidationFailed   = newError("VALIDATION_FAILED", http.StatusBadRequest, "please fill all fields")
	ErrInvalidInput       = newError("INVALID_INPUT", http.StatusBadRequest, "invalid input")
	ErrDuplicateEmail     = newError("DUPLICATE_EMAIL", http.StatusConflict, "user already exists")
	ErrInvalidCredentials = newError("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid credentials")
	ErrUserNotFound       = newError("USER_NOT_FOUND", http.StatusNotFound, "user not found")
	ErrResetTokenInvalid  = newError("RESET_TOKEN_INVALID", http.StatusBadRequest, "password reset token is invalid")
	ErrResetTokenExpired  = newError("RESET_TOKEN_EXPIRED", http.StatusBadRequest, "password reset token has expired")
	ErrPasswordMismatch   = newError("PASSWORD_MISMATCH", http.StatusBadRequest, "password and confirm password do not match")
	ErrDeliveryFailed     = newError("DELIVERY_FAILED", http.StatusBadGateway, "failed to deliver email")
	ErrTokenInvalid       = newError("TOKEN_INVALID", http.StatusUnauthorized, "session token is invalid")
	ErrTokenExpired       = newError("TOKEN_EXPIRED", http.StatusUnauthorized, "session token has expired")
	ErrUnauthenticated    = newError("UNAUTHENTICATED", http.StatusUnauthorized, "not authorized to access this route")
	ErrForbidden          = newError("FORBIDDEN", http.StatusForbidden, "insufficient role for this route")
	ErrMalformedHash      = newError("MALFORMED_HASH", http.StatusInternalServerError, "stored password hash is malformed")
	ErrResourceNotFound   = newError("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrDuplicateCoupon    = newError("DUPLICATE_COUPON", http.StatusConflict, "coupon code already exists")
)
