package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/storefront-server/internal/model"
)

// Storage is a mock of model.Storage.
type Storage struct {
	mock.Mock
}

var _ model.Storage = (*Storage)(nil)

// NewStorage creates a Storage mock that asserts its expectations on cleanup.
func NewStorage(t testingT) *Storage {
	m := &Storage{}
	register(&m.Mock, t)
	return m
}

func (m *Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	ret := m.Called(ctx, key, reader, size, contentType)
	return ret.String(0), ret.Error(1)
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	ret := m.Called(ctx, key)
	return ret.Error(0)
}
