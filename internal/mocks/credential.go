package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/storefront-server/internal/model"
)

// PasswordHasher is a mock of model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

var _ model.PasswordHasher = (*PasswordHasher)(nil)

// NewPasswordHasher creates a PasswordHasher mock that asserts its expectations on cleanup.
func NewPasswordHasher(t testingT) *PasswordHasher {
	m := &PasswordHasher{}
	register(&m.Mock, t)
	return m
}

func (m *PasswordHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	ret := m.Called(ctx, plaintext)
	return ret.String(0), ret.Error(1)
}

func (m *PasswordHasher) Verify(ctx context.Context, plaintext, hashed string) (bool, error) {
	ret := m.Called(ctx, plaintext, hashed)
	return ret.Bool(0), ret.Error(1)
}

// Mailer is a mock of model.Mailer.
type Mailer struct {
	mock.Mock
}

var _ model.Mailer = (*Mailer)(nil)

// NewMailer creates a Mailer mock that asserts its expectations on cleanup.
func NewMailer(t testingT) *Mailer {
	m := &Mailer{}
	register(&m.Mock, t)
	return m
}

func (m *Mailer) Send(ctx context.Context, message model.Message) error {
	ret := m.Called(ctx, message)
	return ret.Error(0)
}

// TokenSigner is a mock of model.TokenSigner.
type TokenSigner struct {
	mock.Mock
}

var _ model.TokenSigner = (*TokenSigner)(nil)

// NewTokenSigner creates a TokenSigner mock that asserts its expectations on cleanup.
func NewTokenSigner(t testingT) *TokenSigner {
	m := &TokenSigner{}
	register(&m.Mock, t)
	return m
}

func (m *TokenSigner) Issue(subjectID uuid.UUID, role model.Role, ttl time.Duration) (string, error) {
	ret := m.Called(subjectID, role, ttl)
	return ret.String(0), ret.Error(1)
}

func (m *TokenSigner) Verify(token string) (model.SessionClaims, error) {
	ret := m.Called(token)
	return ret.Get(0).(model.SessionClaims), ret.Error(1)
}
