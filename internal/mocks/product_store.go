package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/storefront-server/internal/model"
)

// ProductStore is a mock of model.ProductStore.
type ProductStore struct {
	mock.Mock
}

var _ model.ProductStore = (*ProductStore)(nil)

// NewProductStore creates a ProductStore mock that asserts its expectations on cleanup.
func NewProductStore(t testingT) *ProductStore {
	m := &ProductStore{}
	register(&m.Mock, t)
	return m
}

func (m *ProductStore) Create(ctx context.Context, product model.Product) (model.Product, error) {
	ret := m.Called(ctx, product)
	if fn, ok := ret.Get(0).(func(context.Context, model.Product) model.Product); ok {
		return fn(ctx, product), ret.Error(1)
	}
	return ret.Get(0).(model.Product), ret.Error(1)
}

func (m *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(model.Product), ret.Error(1)
}

func (m *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}
