package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bricool-server/middleware"
	"bricool-server/models"
	"bricool-server/services"
)

// RatingHandler serves rating submission and technician rating lookups.
type RatingHandler struct {
	ratings *services.RatingService
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(ratings *services.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

// RegisterRatingRoutes registers rating routes; all require authentication.
func (h *RatingHandler) RegisterRatingRoutes(router *gin.RouterGroup) {
	router.POST("/orders/:id/rating", middleware.RequireRole(models.RoleCustomer), h.create)
	technicians := router.Group("/technicians")
	{
		technicians.GET("/:id/ratings", h.listByTechnician)
		technicians.GET("/:id/ratings/summary", h.summary)
	}
}

// create records the customer's rating and completes the order.
func (h *RatingHandler) create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input models.RatingCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "message": err.Error()})
		return
	}

	rating, err := h.ratings.Rate(user.ID, orderID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rating": rating})
}

// listByTechnician returns a technician's ratings.
func (h *RatingHandler) listByTechnician(c *gin.Context) {
	technicianID, ok := parseID(c, "id")
	if !ok {
		return
	}

	ratings, err := h.ratings.ListByTechnician(technicianID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": ratings})
}

// summary returns a technician's aggregate rating.
func (h *RatingHandler) summary(c *gin.Context) {
	technicianID, ok := parseID(c, "id")
	if !ok {
		return
	}

	summary, err := h.ratings.Summary(technicianID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
