package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/storefront-server/internal/model"
)

// CredentialService is a mock of model.CredentialService.
type CredentialService struct {
	mock.Mock
}

var _ model.CredentialService = (*CredentialService)(nil)

// NewCredentialService creates a CredentialService mock that asserts its expectations on cleanup.
func NewCredentialService(t testingT) *CredentialService {
	m := &CredentialService{}
	register(&m.Mock, t)
	return m
}

func (m *CredentialService) SignUp(ctx context.Context, name, email, password string) (model.Session, error) {
	ret := m.Called(ctx, name, email, password)
	return ret.Get(0).(model.Session), ret.Error(1)
}

func (m *CredentialService) Login(ctx context.Context, email, password string) (model.Session, error) {
	ret := m.Called(ctx, email, password)
	return ret.Get(0).(model.Session), ret.Error(1)
}

func (m *CredentialService) Logout(ctx context.Context, claims *model.SessionClaims) error {
	ret := m.Called(ctx, claims)
	return ret.Error(0)
}

func (m *CredentialService) ForgotPassword(ctx context.Context, email string) (string, error) {
	ret := m.Called(ctx, email)
	return ret.String(0), ret.Error(1)
}

func (m *CredentialService) ResetPassword(ctx context.Context, token, password, confirmPassword string) (model.Session, error) {
	ret := m.Called(ctx, token, password, confirmPassword)
	return ret.Get(0).(model.Session), ret.Error(1)
}

func (m *CredentialService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	ret := m.Called(ctx, userID, oldPassword, newPassword)
	return ret.Error(0)
}

func (m *CredentialService) GetProfile(ctx context.Context, claims *model.SessionClaims) (model.User, error) {
	ret := m.Called(ctx, claims)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *CredentialService) ChangeRole(ctx context.Context, userID uuid.UUID, role model.Role) (model.User, error) {
	ret := m.Called(ctx, userID, role)
	return ret.Get(0).(model.User), ret.Error(1)
}

// CouponService is a mock of model.CouponService.
type CouponService struct {
	mock.Mock
}

var _ model.CouponService = (*CouponService)(nil)

// NewCouponService creates a CouponService mock that asserts its expectations on cleanup.
func NewCouponService(t testingT) *CouponService {
	m := &CouponService{}
	register(&m.Mock, t)
	return m
}

func (m *CouponService) Create(ctx context.Context, code string, discount int) (model.Coupon, error) {
	ret := m.Called(ctx, code, discount)
	return ret.Get(0).(model.Coupon), ret.Error(1)
}

func (m *CouponService) Deactivate(ctx context.Context, id uuid.UUID) (model.Coupon, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(model.Coupon), ret.Error(1)
}

func (m *CouponService) Delete(ctx context.Context, id uuid.UUID) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}

func (m *CouponService) List(ctx context.Context) ([]model.Coupon, error) {
	ret := m.Called(ctx)
	var coupons []model.Coupon
	if v := ret.Get(0); v != nil {
		coupons = v.([]model.Coupon)
	}
	return coupons, ret.Error(1)
}

// ProductService is a mock of model.ProductService.
type ProductService struct {
	mock.Mock
}

var _ model.ProductService = (*ProductService)(nil)

// NewProductService creates a ProductService mock that asserts its expectations on cleanup.
func NewProductService(t testingT) *ProductService {
	m := &ProductService{}
	register(&m.Mock, t)
	return m
}

func (m *ProductService) Create(ctx context.Context, params model.CreateProductParams) (model.Product, error) {
	ret := m.Called(ctx, params)
	return ret.Get(0).(model.Product), ret.Error(1)
}

func (m *ProductService) GetByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(model.Product), ret.Error(1)
}

func (m *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}
