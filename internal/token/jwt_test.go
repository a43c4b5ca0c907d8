package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront-server/internal/model"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestJWT_Roundtrip(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	j := NewJWT("secret", WithClock(fixedClock(now)))
	u := uuid.New()

	tok, err := j.Issue(u, model.RoleModerator, time.Hour)
	require.NoError(t, err)

	claims, err := j.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, u, claims.SubjectID)
	assert.Equal(t, model.RoleModerator, claims.Role)
	assert.True(t, claims.IssuedAt.Equal(now))
	assert.True(t, claims.ExpiresAt.Equal(now.Add(time.Hour)))
}

func TestJWT_TokenIsURLSafe(t *testing.T) {
	j := NewJWT("secret")

	tok, err := j.Issue(uuid.New(), model.RoleUser, time.Minute)
	require.NoError(t, err)
	assert.False(t, strings.ContainsAny(tok, "+/= "))
	assert.Len(t, strings.Split(tok, "."), 3)
}

func TestJWT_Expired(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)
	issuer := NewJWT("secret", WithClock(fixedClock(issuedAt)))
	verifier := NewJWT("secret")

	tok, err := issuer.Issue(uuid.New(), model.RoleUser, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrTokenExpired)
	assert.NotErrorIs(t, err, model.ErrTokenInvalid)
}

func TestJWT_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	expiresAt := issuedAt.Add(time.Hour)

	tok, err := NewJWT("secret", WithClock(fixedClock(issuedAt))).Issue(uuid.New(), model.RoleUser, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name        string
		at          time.Time
		wantExpired bool
	}{
		{name: "just before expiry", at: expiresAt.Add(-time.Millisecond)},
		{name: "exactly at expiry", at: expiresAt},
		{name: "within the expiry second", at: expiresAt.Add(999 * time.Millisecond)},
		{name: "past the expiry second", at: expiresAt.Add(time.Second), wantExpired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJWT("secret", WithClock(fixedClock(tt.at))).Verify(tok)
			if tt.wantExpired {
				assert.ErrorIs(t, err, model.ErrTokenExpired)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	tok, err := NewJWT("secret").Issue(uuid.New(), model.RoleUser, time.Hour)
	require.NoError(t, err)

	_, err = NewJWT("other").Verify(tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrTokenInvalid)
}

func TestJWT_TamperedPayload(t *testing.T) {
	j := NewJWT("secret")
	tok, err := j.Issue(uuid.New(), model.RoleUser, time.Hour)
	require.NoError(t, err)

	adminTok, err := j.Issue(uuid.New(), model.RoleAdmin, time.Hour)
	require.NoError(t, err)

	// splice the admin payload onto the user signature
	parts := strings.Split(tok, ".")
	adminParts := strings.Split(adminTok, ".")
	forged := parts[0] + "." + adminParts[1] + "." + parts[2]

	_, err = j.Verify(forged)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrTokenInvalid)
}

func TestJWT_Garbage(t *testing.T) {
	for _, tok := range []string{"", "abc", "a.b.c"} {
		_, err := NewJWT("secret").Verify(tok)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	}
}

func TestJWT_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: uuid.New(),
		Role:   model.RoleAdmin,
	}
	claims.Subject = claims.UserID.String()

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewJWT("secret").Verify(none)
	assert.ErrorIs(t, err, model.ErrTokenInvalid)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = NewJWT("secret").Verify(hs512)
	assert.ErrorIs(t, err, model.ErrTokenInvalid)
}

func TestJWT_RejectsMissingExpiry(t *testing.T) {
	u := uuid.New()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer, Subject: u.String()},
		UserID:           u,
		Role:             model.RoleUser,
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret").Verify(tok)
	assert.ErrorIs(t, err, model.ErrTokenInvalid)
}

func TestJWT_RejectsUnknownRole(t *testing.T) {
	u := uuid.New()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   u.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: u,
		Role:   model.Role("root"),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret").Verify(tok)
	assert.ErrorIs(t, err, model.ErrTokenInvalid)
}
