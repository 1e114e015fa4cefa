package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bricool-server/models"
	"bricool-server/services"
)

const userContextKey = "user"

// Auth validates the bearer token and resolves the session to an account
// row by its external identity, auto-provisioning one on first login. The
// resolved user is stored in the gin context.
func Auth(jwtService *services.JWTService, identity *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authorization header required",
				"message": "Please provide a valid token",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"message": "Token is invalid or expired",
			})
			c.Abort()
			return
		}

		user, err := identity.ResolveByAuthID(claims.AuthID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "User not found",
				"message": "User associated with token could not be resolved",
			})
			c.Abort()
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "User inactive",
				"message": "User account is deactivated",
			})
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// extractToken reads the bearer token from the Authorization header, falling
// back to the token query parameter for websocket upgrades.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != authHeader {
			return token
		}
		return ""
	}
	return c.Query("token")
}

// CurrentUser returns the authenticated account set by Auth.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// RequireRole aborts with 403 unless the authenticated account has one of
// the given roles. Role checks live here and nowhere else.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Insufficient permissions",
			"message": "Your role does not allow this operation",
		})
		c.Abort()
	}
}
