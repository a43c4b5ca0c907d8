package model

import (
	"context"

	"github.com/google/uuid"
)

// CredentialService runs the account and password recovery lifecycle.
type CredentialService interface {
	SignUp(ctx context.Context, name, email, password string) (Session, error)
	Login(ctx context.Context, email, password string) (Session, error)
	Logout(ctx context.Context, claims *SessionClaims) error
	// ForgotPassword returns the plaintext reset token that was mailed.
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password, confirmPassword string) (Session, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	GetProfile(ctx context.Context, claims *SessionClaims) (User, error)
	ChangeRole(ctx context.Context, userID uuid.UUID, role Role) (User, error)
}

// CouponService manages discount coupons.
type CouponService interface {
	Create(ctx context.Context, code string, discount int) (Coupon, error)
	Deactivate(ctx context.Context, id uuid.UUID) (Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]Coupon, error)
}

// ProductService manages catalog items.
type ProductService interface {
	Create(ctx context.Context, params CreateProductParams) (Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
