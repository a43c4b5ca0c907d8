package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/model"
)

// memoryUsers is an in-memory model.UserStore with the same conditional
// update semantics as the postgres store.
type memoryUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
}

var _ model.UserStore = (*memoryUsers)(nil)

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[uuid.UUID]model.User)}
}

func (s *memoryUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *memoryUsers) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return copyUser(u), nil
}

func (s *memoryUsers) GetByResetHash(_ context.Context, hash string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Reset != nil && u.Reset.Hash == hash {
			return copyUser(u), nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *memoryUsers) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return model.User{}, model.ErrDuplicateEmail
		}
	}
	s.users[user.ID] = copyUser(user)
	return copyUser(user), nil
}

func (s *memoryUsers) Update(_ context.Context, id uuid.UUID, update model.UserUpdate) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return s.apply(u, update), nil
}

func (s *memoryUsers) UpdateIfResetHash(_ context.Context, id uuid.UUID, hash string, update model.UserUpdate) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok || u.Reset == nil || u.Reset.Hash != hash {
		return model.User{}, model.ErrNotFound
	}
	return s.apply(u, update), nil
}

func (s *memoryUsers) apply(u model.User, update model.UserUpdate) model.User {
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	if update.SetReset != nil {
		reset := *update.SetReset
		u.Reset = &reset
	}
	if update.ClearReset {
		u.Reset = nil
	}
	s.users[u.ID] = u
	return copyUser(u)
}

func (s *memoryUsers) get(id uuid.UUID) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyUser(s.users[id])
}

func copyUser(u model.User) model.User {
	if u.Reset != nil {
		reset := *u.Reset
		u.Reset = &reset
	}
	return u
}

// recordingMailer keeps every message and fails while err is set.
type recordingMailer struct {
	mu       sync.Mutex
	err      error
	messages []model.Message
}

func (m *recordingMailer) Send(_ context.Context, message model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, message)
	return nil
}

func (m *recordingMailer) last() model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.messages) == 0 {
		return model.Message{}
	}
	return m.messages[len(m.messages)-1]
}
