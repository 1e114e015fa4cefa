package types

import "github.com/golang-jwt/jwt/v5"

// Claims represents the JWT claims. AuthID is the stable external identity
// reference the account row is resolved by on every authenticated request.
type Claims struct {
	UserID uint   `json:"user_id"`
	AuthID string `json:"auth_id"`
	jwt.RegisteredClaims
}
