package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"bricool-server/config"
	"bricool-server/models"
	"bricool-server/types"
)

// JWTService issues and validates token pairs. Access tokens are signed
// HS256 carrying the account's external auth id; refresh tokens are opaque
// random strings stored server-side.
type JWTService struct {
	db  *gorm.DB
	cfg config.JWTConfig
}

// NewJWTService creates a new JWT service
func NewJWTService(db *gorm.DB, cfg config.JWTConfig) *JWTService {
	return &JWTService{db: db, cfg: cfg}
}

// TokenPair represents a pair of access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// GenerateTokenPair issues a fresh access/refresh token pair for the user.
func (js *JWTService) GenerateTokenPair(user *models.User) (*TokenPair, error) {
	accessToken, expiresIn, err := js.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := js.generateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		TokenType:    "Bearer",
	}, nil
}

func (js *JWTService) generateAccessToken(user *models.User) (string, int64, error) {
	claims := &types.Claims{
		UserID: user.ID,
		AuthID: user.AuthID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(js.cfg.ExpiryHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "bricool-server",
			Subject:   user.AuthID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(js.cfg.Secret))
	if err != nil {
		return "", 0, err
	}

	return tokenString, int64(js.cfg.ExpiryHours * 3600), nil
}

func (js *JWTService) generateRefreshToken(userID uint) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	tokenString := hex.EncodeToString(tokenBytes)

	refreshToken := &models.RefreshToken{
		Token:     tokenString,
		UserID:    userID,
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	}
	if err := js.db.Create(refreshToken).Error; err != nil {
		return "", err
	}
	return tokenString, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (js *JWTService) ValidateAccessToken(tokenString string) (*types.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &types.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(js.cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*types.Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// RefreshAccessToken exchanges a valid refresh token for a new access token.
func (js *JWTService) RefreshAccessToken(refreshTokenString string) (*TokenPair, error) {
	var refreshToken models.RefreshToken
	if err := js.db.Where("token = ?", refreshTokenString).First(&refreshToken).Error; err != nil {
		return nil, errors.New("refresh token not found")
	}
	if !refreshToken.IsValid() {
		return nil, errors.New("refresh token is invalid or expired")
	}

	var user models.User
	if err := js.db.First(&user, refreshToken.UserID).Error; err != nil {
		return nil, errors.New("user for refresh token not found")
	}

	accessToken, expiresIn, err := js.generateAccessToken(&user)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		ExpiresIn:    expiresIn,
		TokenType:    "Bearer",
	}, nil
}

// RevokeRefreshToken revokes a refresh token
func (js *JWTService) RevokeRefreshToken(tokenString string) error {
	res := js.db.Model(&models.RefreshToken{}).
		Where("token = ?", tokenString).
		Update("is_revoked", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("refresh token not found")
	}
	return nil
}

// RevokeAllUserTokens revokes all refresh tokens for a user
func (js *JWTService) RevokeAllUserTokens(userID uint) error {
	return js.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		Update("is_revoked", true).Error
}

// CleanupExpiredTokens removes expired and revoked refresh tokens.
func (js *JWTService) CleanupExpiredTokens() error {
	return js.db.
		Where("expires_at < ? OR is_revoked = ?", time.Now(), true).
		Delete(&models.RefreshToken{}).Error
}
