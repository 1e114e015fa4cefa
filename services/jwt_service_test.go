package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bricool-server/config"
	"bricool-server/models"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", ExpiryHours: 1}
}

func TestTokenPairRoundTrip(t *testing.T) {
	db := newTestDB(t)
	user := createCustomer(t, db)
	svc := NewJWTService(db, testJWTConfig())

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.EqualValues(t, 3600, pair.ExpiresIn)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.AuthID, claims.AuthID)
	assert.Equal(t, user.AuthID, claims.Subject)
}

func TestValidateAccessTokenRejectsTampering(t *testing.T) {
	db := newTestDB(t)
	user := createCustomer(t, db)
	svc := NewJWTService(db, testJWTConfig())

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	other := NewJWTService(db, config.JWTConfig{Secret: "other-secret", ExpiryHours: 1})
	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.Error(t, err)

	_, err = svc.ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}

func TestRefreshAccessToken(t *testing.T) {
	db := newTestDB(t)
	user := createCustomer(t, db)
	svc := NewJWTService(db, testJWTConfig())

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	refreshed, err := svc.RefreshAccessToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshToken, refreshed.RefreshToken)

	claims, err := svc.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	t.Run("revoked token is rejected", func(t *testing.T) {
		require.NoError(t, svc.RevokeRefreshToken(pair.RefreshToken))
		_, err := svc.RefreshAccessToken(pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		_, err := svc.RefreshAccessToken("deadbeef")
		assert.Error(t, err)
	})
}

func TestCleanupExpiredTokens(t *testing.T) {
	db := newTestDB(t)
	user := createCustomer(t, db)
	svc := NewJWTService(db, testJWTConfig())

	require.NoError(t, db.Create(&models.RefreshToken{
		UserID:    user.ID,
		Token:     "expired",
		ExpiresAt: time.Now().Add(-time.Hour),
	}).Error)
	require.NoError(t, db.Create(&models.RefreshToken{
		UserID:    user.ID,
		Token:     "revoked",
		IsRevoked: true,
	}).Error)
	require.NoError(t, db.Create(&models.RefreshToken{
		UserID: user.ID,
		Token:  "live",
	}).Error)

	require.NoError(t, svc.CleanupExpiredTokens())

	var tokens []models.RefreshToken
	require.NoError(t, db.Find(&tokens).Error)
	require.Len(t, tokens, 1)
	assert.Equal(t, "live", tokens[0].Token)
}
