package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// resetTokenBytes is the entropy of a reset token; hex encoding doubles its length.
const resetTokenBytes = 32

// ResetTokens issues and redeems single-use password reset tokens.
// Only a SHA-256 digest of each token is stored on the user.
type ResetTokens struct {
	store  model.UserStore
	window time.Duration
	now    func() time.Time
	logger *logger.Logger
}

// NewResetTokens creates a reset token manager whose tokens live for window.
func NewResetTokens(store model.UserStore, window time.Duration, logger *logger.Logger) *ResetTokens {
	return &ResetTokens{
		store:  store,
		window: window,
		now:    time.Now,
		logger: logger,
	}
}

// Issue generates a new reset token for user, replacing any outstanding one,
// and returns the plaintext for out-of-band delivery.
func (m *ResetTokens) Issue(ctx context.Context, user model.User) (string, error) {
	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	plaintext := hex.EncodeToString(raw)

	reset := model.ResetToken{
		Hash:      hashResetToken(plaintext),
		ExpiresAt: m.now().Add(m.window),
	}

	if _, err := m.store.Update(ctx, user.ID, model.UserUpdate{SetReset: &reset}); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	m.logger.Info("Reset tokens: token issued",
		"user_id", user.ID,
		"expires_at", reset.ExpiresAt)

	return plaintext, nil
}

// Rollback undoes Issue: the user's reset fields go back to the state held in
// previous, provided the token issued as plaintext is still the outstanding one.
func (m *ResetTokens) Rollback(ctx context.Context, previous model.User, plaintext string) error {
	update := model.UserUpdate{ClearReset: true}
	if previous.Reset != nil {
		restored := *previous.Reset
		update = model.UserUpdate{SetReset: &restored}
	}

	_, err := m.store.UpdateIfResetHash(ctx, previous.ID, hashResetToken(plaintext), update)
	if errors.Is(err, model.ErrNotFound) {
		// already replaced or redeemed; nothing of ours left to undo
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to roll back reset token: %w", err)
	}

	m.logger.Info("Reset tokens: token rolled back",
		"user_id", previous.ID)

	return nil
}

// Redeem consumes plaintext and applies update to its owner in the same
// conditional write that clears the reset fields. A second redemption of the
// same token fails with ErrResetTokenInvalid.
func (m *ResetTokens) Redeem(ctx context.Context, plaintext string, update model.UserUpdate) (model.User, error) {
	if plaintext == "" {
		return model.User{}, model.ErrResetTokenInvalid
	}
	hash := hashResetToken(plaintext)

	user, err := m.store.GetByResetHash(ctx, hash)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrResetTokenInvalid
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by reset hash: %w", err)
	}
	if user.Reset == nil {
		return model.User{}, model.ErrResetTokenInvalid
	}

	if !m.now().Before(user.Reset.ExpiresAt) {
		_, err := m.store.UpdateIfResetHash(ctx, user.ID, hash, model.UserUpdate{ClearReset: true})
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.User{}, fmt.Errorf("failed to clear expired reset token: %w", err)
		}

		m.logger.Info("Reset tokens: expired token cleared",
			"user_id", user.ID)

		return model.User{}, model.ErrResetTokenExpired
	}

	update.SetReset = nil
	update.ClearReset = true

	updated, err := m.store.UpdateIfResetHash(ctx, user.ID, hash, update)
	if errors.Is(err, model.ErrNotFound) {
		// a concurrent redemption won the race
		return model.User{}, model.ErrResetTokenInvalid
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to redeem reset token: %w", err)
	}

	m.logger.Info("Reset tokens: token redeemed",
		"user_id", user.ID)

	return updated, nil
}

func hashResetToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
