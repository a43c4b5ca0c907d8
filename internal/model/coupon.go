package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CouponStore defines persistence operations for coupons.
type CouponStore interface {
	Create(ctx context.Context, coupon Coupon) (Coupon, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]Coupon, error)
}

// Coupon is a percentage discount redeemable by code.
type Coupon struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Discount  int       `json:"discount"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
