package routes

import (
	"github.com/gin-gonic/gin"

	"bricool-server/middleware"
	ws "bricool-server/websocket"
)

// WSHandler upgrades authenticated clients to a realtime connection.
type WSHandler struct {
	hub *ws.Hub
}

// NewWSHandler creates a new websocket handler
func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// RegisterWSRoutes registers the websocket endpoint; authentication comes
// from the token query parameter since browsers cannot set headers on
// websocket upgrades.
func (h *WSHandler) RegisterWSRoutes(router *gin.RouterGroup) {
	router.GET("/ws", h.connect)
}

func (h *WSHandler) connect(c *gin.Context) {
	user := middleware.CurrentUser(c)
	ws.Serve(h.hub, c.Writer, c.Request, user.ID)
}
