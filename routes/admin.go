package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bricool-server/middleware"
	"bricool-server/models"
	"bricool-server/services"
)

// AdminHandler serves the back-office endpoints.
type AdminHandler struct {
	admin  *services.AdminService
	orders *services.OrderService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin *services.AdminService, orders *services.OrderService) *AdminHandler {
	return &AdminHandler{admin: admin, orders: orders}
}

// RegisterAdminRoutes registers the admin routes behind the admin role guard.
func (h *AdminHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	group := router.Group("/admin")
	group.Use(middleware.RequireRole(models.RoleAdmin))
	{
		group.GET("/stats", h.stats)
		group.GET("/users", h.listUsers)
		group.PUT("/users/:id/active", h.setUserActive)
		group.DELETE("/users/:id", h.purgeUser)
		group.GET("/orders", h.listOrders)
	}
}

func (h *AdminHandler) stats(c *gin.Context) {
	stats, err := h.admin.Stats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	users, err := h.admin.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *AdminHandler) setUserActive(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "message": err.Error()})
		return
	}

	if err := h.admin.SetUserActive(userID, *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}

func (h *AdminHandler) purgeUser(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.admin.PurgeUser(userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User purged"})
}

func (h *AdminHandler) listOrders(c *gin.Context) {
	orders, err := h.orders.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
