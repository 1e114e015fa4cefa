package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bricool-server/middleware"
	"bricool-server/services"
)

// NotificationHandler serves the notification inbox.
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification routes; all require
// authentication.
func (h *NotificationHandler) RegisterNotificationRoutes(router *gin.RouterGroup) {
	group := router.Group("/notifications")
	{
		group.GET("", h.list)
		group.GET("/unread-count", h.unreadCount)
		group.POST("/:id/read", h.markRead)
		group.POST("/read-all", h.markAllRead)
	}
}

func (h *NotificationHandler) list(c *gin.Context) {
	user := middleware.CurrentUser(c)

	notifications, err := h.notifications.List(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *NotificationHandler) unreadCount(c *gin.Context) {
	user := middleware.CurrentUser(c)

	count, err := h.notifications.CountUnread(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *NotificationHandler) markRead(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(id, user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}

func (h *NotificationHandler) markAllRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.notifications.MarkAllRead(user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}
