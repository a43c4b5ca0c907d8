package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/storefront-server/internal/model"
)

// CouponStore is a mock of model.CouponStore.
type CouponStore struct {
	mock.Mock
}

var _ model.CouponStore = (*CouponStore)(nil)

// NewCouponStore creates a CouponStore mock that asserts its expectations on cleanup.
func NewCouponStore(t testingT) *CouponStore {
	m := &CouponStore{}
	register(&m.Mock, t)
	return m
}

func (m *CouponStore) Create(ctx context.Context, coupon model.Coupon) (model.Coupon, error) {
	ret := m.Called(ctx, coupon)
	if fn, ok := ret.Get(0).(func(context.Context, model.Coupon) model.Coupon); ok {
		return fn(ctx, coupon), ret.Error(1)
	}
	return ret.Get(0).(model.Coupon), ret.Error(1)
}

func (m *CouponStore) SetActive(ctx context.Context, id uuid.UUID, active bool) (model.Coupon, error) {
	ret := m.Called(ctx, id, active)
	return ret.Get(0).(model.Coupon), ret.Error(1)
}

func (m *CouponStore) Delete(ctx context.Context, id uuid.UUID) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}

func (m *CouponStore) List(ctx context.Context) ([]model.Coupon, error) {
	ret := m.Called(ctx)
	var coupons []model.Coupon
	if v := ret.Get(0); v != nil {
		coupons = v.([]model.Coupon)
	}
	return coupons, ret.Error(1)
}
