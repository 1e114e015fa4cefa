package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bricool-server/middleware"
	"bricool-server/models"
	"bricool-server/services"
	"bricool-server/utils"
)

// SignUpRequest represents the registration request
type SignUpRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Phone    string          `json:"phone" binding:"required"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role"`
}

// SignInRequest represents the sign in request; the identifier is an email
// address or a phone number.
type SignInRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"`
	User         models.User `json:"user"`
}

// AuthHandler serves registration and session endpoints.
type AuthHandler struct {
	db       *gorm.DB
	jwt      *services.JWTService
	identity *services.IdentityService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, jwt *services.JWTService, identity *services.IdentityService) *AuthHandler {
	return &AuthHandler{db: db, jwt: jwt, identity: identity}
}

// RegisterAuthRoutes registers authentication routes
func (h *AuthHandler) RegisterAuthRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	group := router.Group("/auth")
	{
		group.POST("/signup", h.signUp)
		group.POST("/signin", h.signIn)
		group.POST("/refresh", h.refreshToken)
		group.POST("/logout", h.logout)
		group.GET("/me", auth, h.me)
	}
}

// signUp handles user registration. The role is fixed at creation; admin
// accounts are never self-registered.
func (h *AuthHandler) signUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleCustomer && role != models.RoleTechnician {
		c.JSON(http.StatusBadRequest, gin.H{"error": "نوع الحساب غير صالح"})
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        utils.NormalizePhone(req.Phone),
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		IsAvailable:  true,
		AuthID:       uuid.NewString(),
	}

	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "البريد الإلكتروني أو رقم الهاتف مستخدم بالفعل",
			})
			return
		}
		respondError(c, err)
		return
	}

	tokens, err := h.jwt.GenerateTokenPair(&user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Token:        tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		User:         user,
	})
}

// signIn handles login by email or phone number.
func (h *AuthHandler) signIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var user models.User
	var err error
	if utils.IsEmail(req.Identifier) {
		err = h.db.Where("email = ?", req.Identifier).First(&user).Error
	} else {
		err = h.db.Where("phone = ?", utils.NormalizePhone(req.Identifier)).First(&user).Error
	}
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "لم يتم العثور على مستخدم بهذه البيانات"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "كلمة المرور غير صحيحة"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "الحساب معطل"})
		return
	}

	tokens, err := h.jwt.GenerateTokenPair(&user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token:        tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		User:         user,
	})
}

// refreshToken exchanges a refresh token for a new access token.
func (h *AuthHandler) refreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	tokens, err := h.jwt.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// logout revokes the presented refresh token.
func (h *AuthHandler) logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if err := h.jwt.RevokeRefreshToken(req.RefreshToken); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// me returns the account resolved for the current session.
func (h *AuthHandler) me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": user})
}
