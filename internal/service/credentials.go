package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/metrics"
	"github.com/dtroode/storefront-server/internal/model"
)

const (
	resetEmailSubject = "Password reset email"
	rollbackTimeout   = 5 * time.Second

	// timingPassword is hashed once at construction and verified against on
	// unknown emails so that login takes the same time whether or not the
	// account exists.
	timingPassword = "storefront-login-timing"
)

// CredentialSettings holds the immutable parameters of the credential lifecycle.
type CredentialSettings struct {
	SessionTTL   time.Duration
	ResetURLBase string
}

// Credentials orchestrates signup, login and password recovery.
type Credentials struct {
	users    model.UserStore
	hasher   model.PasswordHasher
	signer   model.TokenSigner
	resets   *ResetTokens
	mailer   model.Mailer
	settings CredentialSettings
	now      func() time.Time
	logger   *logger.Logger

	timingHash string
}

// NewCredentials creates the credential service. It hashes the login timing
// password up front and fails if the hasher cannot.
func NewCredentials(
	users model.UserStore,
	hasher model.PasswordHasher,
	signer model.TokenSigner,
	resets *ResetTokens,
	mailer model.Mailer,
	settings CredentialSettings,
	logger *logger.Logger,
) (*Credentials, error) {
	timingHash, err := hasher.Hash(context.Background(), timingPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare login timing hash: %w", err)
	}

	return &Credentials{
		users:      users,
		hasher:     hasher,
		signer:     signer,
		resets:     resets,
		mailer:     mailer,
		settings:   settings,
		now:        time.Now,
		logger:     logger,
		timingHash: timingHash,
	}, nil
}

// SignUp creates a user with the default role and opens a session for it.
func (c *Credentials) SignUp(ctx context.Context, name, email, password string) (session model.Session, err error) {
	defer func() { metrics.ObserveCredentialOperation("signup", err) }()

	if name == "" || email == "" || password == "" {
		return model.Session{}, model.ErrValidationFailed
	}

	c.logger.Debug("Credential service: starting signup",
		"email", email)

	_, err = c.users.GetByEmail(ctx, email)
	if err == nil {
		c.logger.Info("Credential service: user already exists",
			"email", email)
		return model.Session{}, model.ErrDuplicateEmail
	}
	if !errors.Is(err, model.ErrNotFound) {
		c.logger.Error("Credential service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hashed, err := c.hasher.Hash(ctx, password)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := c.now()
	user, err := c.users.Create(ctx, model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		c.logger.Error("Credential service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := c.signer.Issue(user.ID, user.Role, c.settings.SessionTTL)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	c.logger.Info("Credential service: signup completed",
		"user_id", user.ID)

	return model.Session{Token: token, User: user.Public()}, nil
}

// Login authenticates email and password. Unknown emails and wrong passwords
// fail with the same ErrInvalidCredentials.
func (c *Credentials) Login(ctx context.Context, email, password string) (session model.Session, err error) {
	defer func() { metrics.ObserveCredentialOperation("login", err) }()

	if email == "" || password == "" {
		return model.Session{}, model.ErrValidationFailed
	}

	user, err := c.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		c.burnVerify(ctx, password)
		c.logger.Info("Credential service: login rejected",
			"email", email)
		return model.Session{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	ok, err := c.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		c.logger.Error("Credential service: failed to verify password",
			"user_id", user.ID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		c.logger.Info("Credential service: login rejected",
			"email", email)
		return model.Session{}, model.ErrInvalidCredentials
	}

	token, err := c.signer.Issue(user.ID, user.Role, c.settings.SessionTTL)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	c.logger.Info("Credential service: login completed",
		"user_id", user.ID)

	return model.Session{Token: token, User: user.Public()}, nil
}

// Logout only signals the boundary to discard the client-held token: session
// tokens are stateless and stay valid until they expire.
func (c *Credentials) Logout(_ context.Context, claims *model.SessionClaims) error {
	if claims != nil {
		c.logger.Info("Credential service: logout",
			"user_id", claims.SubjectID)
	}
	metrics.ObserveCredentialOperation("logout", nil)
	return nil
}

// ForgotPassword issues a reset token for email and mails it. When delivery
// fails the issued token is rolled back before ErrDeliveryFailed is returned.
func (c *Credentials) ForgotPassword(ctx context.Context, email string) (token string, err error) {
	defer func() { metrics.ObserveCredentialOperation("forgot_password", err) }()

	if email == "" {
		return "", model.ErrValidationFailed
	}

	user, err := c.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return "", model.ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	token, err = c.resets.Issue(ctx, user)
	if err != nil {
		return "", fmt.Errorf("failed to issue reset token: %w", err)
	}

	message := model.Message{
		To:      user.Email,
		Subject: resetEmailSubject,
		Body:    fmt.Sprintf("Your password reset url is\n\n%s%s\n\nIf you did not request a reset, ignore this email.\n", c.settings.ResetURLBase, token),
	}

	if sendErr := c.mailer.Send(ctx, message); sendErr != nil {
		c.logger.Error("Credential service: failed to deliver reset email",
			"user_id", user.ID,
			"error", sendErr.Error())

		rbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
		defer cancel()

		deliveryErr := fmt.Errorf("%w: %v", model.ErrDeliveryFailed, sendErr)
		if rbErr := c.resets.Rollback(rbCtx, user, token); rbErr != nil {
			c.logger.Error("Credential service: failed to roll back reset token",
				"user_id", user.ID,
				"error", rbErr.Error())
			return "", errors.Join(deliveryErr, rbErr)
		}
		return "", deliveryErr
	}

	c.logger.Info("Credential service: reset email sent",
		"user_id", user.ID)

	return token, nil
}

// ResetPassword redeems token, stores the new password and opens a session.
func (c *Credentials) ResetPassword(ctx context.Context, token, password, confirmPassword string) (session model.Session, err error) {
	defer func() { metrics.ObserveCredentialOperation("reset_password", err) }()

	if token == "" {
		return model.Session{}, model.ErrResetTokenInvalid
	}
	if password == "" || confirmPassword == "" {
		return model.Session{}, model.ErrValidationFailed
	}
	if password != confirmPassword {
		return model.Session{}, model.ErrPasswordMismatch
	}

	hashed, err := c.hasher.Hash(ctx, password)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := c.resets.Redeem(ctx, token, model.UserUpdate{PasswordHash: &hashed})
	if err != nil {
		return model.Session{}, err
	}

	issued, err := c.signer.Issue(user.ID, user.Role, c.settings.SessionTTL)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	c.logger.Info("Credential service: password reset completed",
		"user_id", user.ID)

	return model.Session{Token: issued, User: user.Public()}, nil
}

// ChangePassword replaces the password of userID after checking the old one.
func (c *Credentials) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) (err error) {
	defer func() { metrics.ObserveCredentialOperation("change_password", err) }()

	if oldPassword == "" || newPassword == "" {
		return model.ErrValidationFailed
	}

	user, err := c.users.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	ok, err := c.hasher.Verify(ctx, oldPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return model.ErrInvalidCredentials
	}

	hashed, err := c.hasher.Hash(ctx, newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := c.users.Update(ctx, userID, model.UserUpdate{PasswordHash: &hashed}); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrUserNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	c.logger.Info("Credential service: password changed",
		"user_id", userID)

	return nil
}

// GetProfile loads the user behind verified session claims.
func (c *Credentials) GetProfile(ctx context.Context, claims *model.SessionClaims) (model.User, error) {
	if claims == nil || claims.SubjectID == uuid.Nil {
		return model.User{}, model.ErrUnauthenticated
	}

	user, err := c.users.GetByID(ctx, claims.SubjectID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user.Public(), nil
}

// ChangeRole sets the role of userID. Deciding who may call it is up to the caller.
func (c *Credentials) ChangeRole(ctx context.Context, userID uuid.UUID, role model.Role) (model.User, error) {
	if !role.Valid() {
		return model.User{}, fmt.Errorf("%w: unknown role %q", model.ErrInvalidInput, role)
	}

	user, err := c.users.Update(ctx, userID, model.UserUpdate{Role: &role})
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update role: %w", err)
	}

	c.logger.Info("Credential service: role changed",
		"user_id", userID,
		"role", role)

	return user.Public(), nil
}

// burnVerify spends one password verification so that unknown emails are not
// distinguishable from wrong passwords by response time.
func (c *Credentials) burnVerify(ctx context.Context, password string) {
	_, _ = c.hasher.Verify(ctx, password, c.timingHash)
}
