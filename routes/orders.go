package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bricool-server/middleware"
	"bricool-server/models"
	"bricool-server/services"
)

// OrderHandler serves order creation, listing and cancellation.
type OrderHandler struct {
	orders *services.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// RegisterOrderRoutes registers order routes; all require authentication.
func (h *OrderHandler) RegisterOrderRoutes(router *gin.RouterGroup) {
	group := router.Group("/orders")
	{
		group.POST("", middleware.RequireRole(models.RoleCustomer), h.create)
		group.GET("", h.listMine)
		group.GET("/open", middleware.RequireRole(models.RoleTechnician), h.listOpen)
		group.GET("/:id", h.get)
		group.POST("/:id/cancel", middleware.RequireRole(models.RoleCustomer), h.cancel)
	}
}

// create posts a new repair order for the authenticated customer.
func (h *OrderHandler) create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var input services.OrderCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "message": err.Error()})
		return
	}

	order, err := h.orders.Create(user.ID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// listMine returns the authenticated customer's orders.
func (h *OrderHandler) listMine(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orders, err := h.orders.ListByUser(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// listOpen returns orders still accepting offers, for technicians.
func (h *OrderHandler) listOpen(c *gin.Context) {
	orders, err := h.orders.ListOpen()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// get returns one order. Customers only see their own orders; technicians
// and admins see any.
func (h *OrderHandler) get(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.GetByID(orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if user.IsCustomer() && order.UserID != user.ID {
		respondError(c, services.ErrForbidden)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// cancel moves the order to cancelled if offers are still being collected.
func (h *OrderHandler) cancel(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.orders.Cancel(orderID, user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "تم إلغاء الطلب"})
}

// parseID reads an unsigned id path parameter, responding 400 on garbage.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
