// Package hasher implements salted one-way password hashing.
package hasher

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"github.com/dtroode/storefront-server/internal/model"
)

const (
	// MinPasswordLength is the shortest accepted password, in characters.
	MinPasswordLength = 8
	// MaxPasswordLength is the bcrypt input limit, in bytes.
	MaxPasswordLength = 72
	// MinCost is the lowest work factor NewBcrypt accepts.
	MinCost = 10
)

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt hashes passwords with bcrypt. At most workers computations run at
// once so that hashing cannot starve request intake.
type Bcrypt struct {
	cost int
	sem  *semaphore.Weighted
}

// NewBcrypt creates a hasher with the given work factor and worker pool size.
func NewBcrypt(cost, workers int) (*Bcrypt, error) {
	if cost < MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, MinCost, bcrypt.MaxCost)
	}
	if workers < 1 {
		return nil, fmt.Errorf("hash workers must be positive, got %d", workers)
	}
	return &Bcrypt{cost: cost, sem: semaphore.NewWeighted(int64(workers))}, nil
}

// Hash produces a salted bcrypt hash of plaintext.
func (b *Bcrypt) Hash(ctx context.Context, plaintext string) (string, error) {
	if utf8.RuneCountInString(plaintext) < MinPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", model.ErrInvalidInput, MinPasswordLength)
	}
	if len(plaintext) > MaxPasswordLength {
		return "", fmt.Errorf("%w: password must be at most %d bytes", model.ErrInvalidInput, MaxPasswordLength)
	}

	if err := b.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("failed to acquire hash worker: %w", err)
	}
	defer b.sem.Release(1)

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hashed. A mismatch is (false, nil);
// a hash this package could not have produced fails with ErrMalformedHash.
func (b *Bcrypt) Verify(ctx context.Context, plaintext, hashed string) (bool, error) {
	if _, err := bcrypt.Cost([]byte(hashed)); err != nil {
		return false, fmt.Errorf("%w: %v", model.ErrMalformedHash, err)
	}
	if len(plaintext) > MaxPasswordLength {
		return false, nil
	}

	if err := b.sem.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("failed to acquire hash worker: %w", err)
	}
	defer b.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", model.ErrMalformedHash, err)
	}
}
