package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// Coupon manages discount coupons.
type Coupon struct {
	store  model.CouponStore
	logger *logger.Logger
}

// NewCoupon creates a coupon service.
func NewCoupon(store model.CouponStore, logger *logger.Logger) *Coupon {
	return &Coupon{store: store, logger: logger}
}

// Create adds an active coupon. Codes are stored upper-cased.
func (s *Coupon) Create(ctx context.Context, code string, discount int) (model.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || discount == 0 {
		return model.Coupon{}, fmt.Errorf("%w: coupon code and discount are required", model.ErrValidationFailed)
	}
	if discount < 1 || discount > 100 {
		return model.Coupon{}, fmt.Errorf("%w: discount must be between 1 and 100", model.ErrInvalidInput)
	}

	now := time.Now()
	coupon, err := s.store.Create(ctx, model.Coupon{
		ID:        uuid.New(),
		Code:      code,
		Discount:  discount,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.Coupon{}, fmt.Errorf("failed to create coupon: %w", err)
	}

	s.logger.Info("Coupon service: coupon created",
		"coupon_id", coupon.ID,
		"code", coupon.Code)

	return coupon, nil
}

// Deactivate marks a coupon as no longer redeemable.
func (s *Coupon) Deactivate(ctx context.Context, id uuid.UUID) (model.Coupon, error) {
	coupon, err := s.store.SetActive(ctx, id, false)
	if errors.Is(err, model.ErrNotFound) {
		return model.Coupon{}, model.ErrResourceNotFound
	}
	if err != nil {
		return model.Coupon{}, fmt.Errorf("failed to deactivate coupon: %w", err)
	}

	s.logger.Info("Coupon service: coupon deactivated",
		"coupon_id", id)

	return coupon, nil
}

// Delete removes a coupon.
func (s *Coupon) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrResourceNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	s.logger.Info("Coupon service: coupon deleted",
		"coupon_id", id)

	return nil
}

// List returns every coupon.
func (s *Coupon) List(ctx context.Context) ([]model.Coupon, error) {
	coupons, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}
