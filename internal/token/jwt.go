package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/model"
)

const (
	issuer = "storefront"

	// expiryPrecision is the resolution of the exp claim. A token is expired
	// only once the clock has moved past the second it expires in.
	expiryPrecision = time.Second
)

// Claims represents JWT claims with subject role.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID  `json:"user_id"`
	Role   model.Role `json:"role"`
}

var _ model.TokenSigner = (*JWT)(nil)

// JWT implements TokenSigner backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	now       func() time.Time
}

// Option configures a JWT signer.
type Option func(*JWT)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

// NewJWT creates a new JWT signer with the provided secret key.
func NewJWT(secretKey string, opts ...Option) *JWT {
	j := &JWT{secretKey: []byte(secretKey), now: time.Now}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Issue creates a signed token for subjectID valid for ttl.
func (j *JWT) Issue(subjectID uuid.UUID, role model.Role, ttl time.Duration) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subjectID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: subjectID,
		Role:   role,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Verify validates the signature and expiry of tokenString and returns its claims.
func (j *JWT) Verify(tokenString string) (model.SessionClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithTimeFunc(j.now),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(expiryPrecision),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.SessionClaims{}, fmt.Errorf("%w: %v", model.ErrTokenExpired, err)
		}
		return model.SessionClaims{}, fmt.Errorf("%w: %v", model.ErrTokenInvalid, err)
	}
	if !token.Valid {
		return model.SessionClaims{}, fmt.Errorf("%w: token is not valid", model.ErrTokenInvalid)
	}
	if claims.UserID == uuid.Nil || claims.Subject != claims.UserID.String() {
		return model.SessionClaims{}, fmt.Errorf("%w: subject mismatch", model.ErrTokenInvalid)
	}
	if !claims.Role.Valid() {
		return model.SessionClaims{}, fmt.Errorf("%w: unknown role %q", model.ErrTokenInvalid, claims.Role)
	}

	return model.SessionClaims{
		SubjectID: claims.UserID,
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
