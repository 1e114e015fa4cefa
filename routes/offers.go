package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bricool-server/middleware"
	"bricool-server/models"
	"bricool-server/services"
)

// OfferHandler serves offer submission, listing and acceptance.
type OfferHandler struct {
	offers     *services.OfferService
	acceptance *services.AcceptanceService
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(offers *services.OfferService, acceptance *services.AcceptanceService) *OfferHandler {
	return &OfferHandler{offers: offers, acceptance: acceptance}
}

// RegisterOfferRoutes registers offer routes; all require authentication.
func (h *OfferHandler) RegisterOfferRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders")
	{
		orders.GET("/:id/offers", h.listByOrder)
		orders.POST("/:id/offers", middleware.RequireRole(models.RoleTechnician), h.submit)
		orders.POST("/:id/offers/:offerId/accept", middleware.RequireRole(models.RoleCustomer), h.accept)
	}
	router.GET("/offers/mine", middleware.RequireRole(models.RoleTechnician), h.listMine)
}

// submit lets a technician bid on an order.
func (h *OfferHandler) submit(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input models.OfferCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "message": err.Error()})
		return
	}

	offer, err := h.offers.Submit(user, orderID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"offer": offer})
}

// listByOrder returns an order's offers with technician public fields.
func (h *OfferHandler) listByOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	offers, err := h.offers.ListByOrder(orderID, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// listMine returns the technician's own offers.
func (h *OfferHandler) listMine(c *gin.Context) {
	user := middleware.CurrentUser(c)

	offers, err := h.offers.ListByTechnician(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// accept lets the owning customer accept one offer, binding the technician
// and opening the conversation.
func (h *OfferHandler) accept(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}
	offerID, ok := parseID(c, "offerId")
	if !ok {
		return
	}

	conversation, err := h.acceptance.Accept(user.ID, orderID, offerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "تم قبول العرض",
		"conversation": conversation,
	})
}
