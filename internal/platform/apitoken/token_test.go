package apitoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/d4rken/cwa-app-android/pkg/domain-errors"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestIssueAndValidate(t *testing.T) {
	now := time.Date(2022, 1, 15, 12, 0, 0, 0, time.UTC)
	svc, err := New(secret, WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	token, err := svc.Issue("debug-cli", time.Hour)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "debug-cli", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestValidate_Rejects(t *testing.T) {
	now := time.Date(2022, 1, 15, 12, 0, 0, 0, time.UTC)
	clock := now
	svc, err := New(secret, WithClock(func() time.Time { return clock }))
	require.NoError(t, err)
	other, err := New("fedcba9876543210fedcba9876543210", WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	valid, err := svc.Issue("cli", time.Minute)
	require.NoError(t, err)
	foreign, err := other.Issue("cli", time.Minute)
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    issuer,
		Audience:  jwt.ClaimStrings{audience},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Validate("not-a-token")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
	t.Run("foreign secret", func(t *testing.T) {
		_, err := svc.Validate(foreign)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
	t.Run("alg none", func(t *testing.T) {
		_, err := svc.Validate(unsigned)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
	t.Run("expired", func(t *testing.T) {
		clock = now.Add(2 * time.Minute)
		defer func() { clock = now }()
		_, err := svc.Validate(valid)
		require.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})
}

func TestNew_RejectsShortSecret(t *testing.T) {
	_, err := New("short")
	require.Error(t, err)
}
