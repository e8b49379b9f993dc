package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/auth"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, auth.VerifyPassword("s3cret", hash))
	assert.ErrorIs(t, auth.VerifyPassword("other", hash), auth.ErrMismatch)

	_, err = auth.HashPassword("")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens := auth.NewTokens("secret", "registry", 24*time.Hour, func() time.Time { return now })

	raw, err := tokens.Issue("admin")
	require.NoError(t, err)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username())
	assert.Equal(t, "registry", claims.Issuer)
	assert.True(t, now.Add(24*time.Hour).Equal(claims.ExpiresAt.Time))
	assert.NotEmpty(t, claims.ID)
}

func TestTokenExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := now
	tokens := auth.NewTokens("secret", "registry", time.Hour, func() time.Time { return clock })

	raw, err := tokens.Issue("admin")
	require.NoError(t, err)

	clock = now.Add(2 * time.Hour)
	_, err = tokens.Parse(raw)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestTokenRejectsForeignSignatures(t *testing.T) {
	ours := auth.NewTokens("secret", "registry", time.Hour, nil)
	theirs := auth.NewTokens("other-secret", "registry", time.Hour, nil)
	otherIssuer := auth.NewTokens("secret", "elsewhere", time.Hour, nil)

	raw, err := theirs.Issue("admin")
	require.NoError(t, err)
	_, err = ours.Parse(raw)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	raw, err = otherIssuer.Issue("admin")
	require.NoError(t, err)
	_, err = ours.Parse(raw)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = ours.Parse("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenRejectsNoneAlgorithm(t *testing.T) {
	tokens := auth.NewTokens("secret", "registry", time.Hour, nil)
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "admin",
		Issuer:    "registry",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokens.Parse(raw)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
