package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionClaims is the identity carried by a verified session token.
type SessionClaims struct {
	SubjectID uuid.UUID
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenSigner issues and verifies stateless session tokens.
type TokenSigner interface {
	Issue(subjectID uuid.UUID, role Role, ttl time.Duration) (string, error)
	Verify(token string) (SessionClaims, error)
}

// Session is the result of a successful authentication.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
