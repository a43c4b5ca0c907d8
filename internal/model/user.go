package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByResetHash(ctx context.Context, hash string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	// Update applies a partial update in a single statement.
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (User, error)
	// UpdateIfResetHash applies update only while the stored reset token hash
	// still equals hash. Returns ErrNotFound when no row matched.
	UpdateIfResetHash(ctx context.Context, id uuid.UUID, hash string, update UserUpdate) (User, error)
}

// Role tags a user with its authorization level.
type Role string

const (
	// RoleUser is the default role of every new account.
	RoleUser Role = "user"
	// RoleAdmin manages products, coupons and roles.
	RoleAdmin Role = "admin"
	// RoleModerator manages coupons.
	RoleModerator Role = "moderator"
)

// Valid reports whether r belongs to the closed set of roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// ResetToken is the server-side half of a pending password reset.
// Only the digest of the token is kept.
type ResetToken struct {
	Hash      string
	ExpiresAt time.Time
}

// User represents a stored user with authentication material.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"role"`
	Reset        *ResetToken `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Public returns a copy of the user without credential material.
func (u User) Public() User {
	u.PasswordHash = ""
	u.Reset = nil
	return u
}

// UserUpdate describes a partial user update. Nil fields are left untouched.
// ClearReset removes the pending reset token; it wins over SetReset.
type UserUpdate struct {
	Name         *string
	PasswordHash *string
	Role         *Role
	SetReset     *ResetToken
	ClearReset   bool
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.PasswordHash == nil && u.Role == nil && u.SetReset == nil && !u.ClearReset
}
