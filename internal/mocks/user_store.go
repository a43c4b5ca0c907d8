package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/storefront-server/internal/model"
)

// UserStore is a mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

var _ model.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore mock that asserts its expectations on cleanup.
func NewUserStore(t testingT) *UserStore {
	m := &UserStore{}
	register(&m.Mock, t)
	return m
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	ret := m.Called(ctx, email)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *UserStore) GetByResetHash(ctx context.Context, hash string) (model.User, error) {
	ret := m.Called(ctx, hash)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	ret := m.Called(ctx, user)
	if fn, ok := ret.Get(0).(func(context.Context, model.User) model.User); ok {
		return fn(ctx, user), ret.Error(1)
	}
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *UserStore) Update(ctx context.Context, id uuid.UUID, update model.UserUpdate) (model.User, error) {
	ret := m.Called(ctx, id, update)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *UserStore) UpdateIfResetHash(ctx context.Context, id uuid.UUID, hash string, update model.UserUpdate) (model.User, error) {
	ret := m.Called(ctx, id, hash, update)
	return ret.Get(0).(model.User), ret.Error(1)
}
