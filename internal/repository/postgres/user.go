package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/storefront-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, name, email, password_hash, role, reset_token_hash, reset_token_expiry, created_at, updated_at`

type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByResetHash(ctx context.Context, hash string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token_hash = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, hash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by reset hash: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role),
		user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrDuplicateEmail
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, update model.UserUpdate) (model.User, error) {
	set, args := userAssignments(update, id)
	query := `UPDATE users SET ` + set + ` WHERE id = $1 RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) UpdateIfResetHash(ctx context.Context, id uuid.UUID, hash string, update model.UserUpdate) (model.User, error) {
	set, args := userAssignments(update, id, hash)
	query := `UPDATE users SET ` + set + ` WHERE id = $1 AND reset_token_hash = $2 RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to update user by reset hash: %w", err)
	}

	return user, nil
}

// userAssignments renders the SET list of update. Placeholders continue after
// the leading args, which the caller's WHERE clause refers to.
func userAssignments(update model.UserUpdate, leading ...any) (string, []any) {
	args := append([]any{}, leading...)
	sets := make([]string, 0, 6)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.PasswordHash != nil {
		add("password_hash", *update.PasswordHash)
	}
	if update.Role != nil {
		add("role", string(*update.Role))
	}
	switch {
	case update.ClearReset:
		sets = append(sets, "reset_token_hash = NULL", "reset_token_expiry = NULL")
	case update.SetReset != nil:
		add("reset_token_hash", update.SetReset.Hash)
		add("reset_token_expiry", update.SetReset.ExpiresAt)
	}
	sets = append(sets, "updated_at = now()")

	return strings.Join(sets, ", "), args
}

func scanUser(row pgx.Row) (model.User, error) {
	var (
		user        model.User
		role        string
		resetHash   *string
		resetExpiry *time.Time
	)

	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &role,
		&resetHash, &resetExpiry, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return model.User{}, err
	}

	user.Role = model.Role(role)
	if resetHash != nil && resetExpiry != nil {
		user.Reset = &model.ResetToken{Hash: *resetHash, ExpiresAt: *resetExpiry}
	}

	return user, nil
}
