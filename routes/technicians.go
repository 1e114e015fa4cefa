package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bricool-server/middleware"
	"bricool-server/models"
	"bricool-server/services"
)

// TechnicianHandler serves technician self-service endpoints.
type TechnicianHandler struct {
	identity *services.IdentityService
}

// NewTechnicianHandler creates a new technician handler
func NewTechnicianHandler(identity *services.IdentityService) *TechnicianHandler {
	return &TechnicianHandler{identity: identity}
}

// RegisterTechnicianRoutes registers technician routes; all require
// authentication.
func (h *TechnicianHandler) RegisterTechnicianRoutes(router *gin.RouterGroup) {
	router.POST("/technicians/status", middleware.RequireRole(models.RoleTechnician), h.setStatus)
}

// setStatus toggles the technician's presence flag. Presence is cosmetic;
// flipping it never locks the account out.
func (h *TechnicianHandler) setStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req struct {
		IsAvailable *bool `json:"is_available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "message": err.Error()})
		return
	}

	if err := h.identity.SetAvailability(user.ID, *req.IsAvailable); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_available": *req.IsAvailable})
}
