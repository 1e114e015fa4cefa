package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bricool-server/middleware"
	"bricool-server/models"
	"bricool-server/services"
)

// ConversationHandler serves the messaging endpoints.
type ConversationHandler struct {
	conversations *services.ConversationService
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(conversations *services.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

// RegisterConversationRoutes registers messaging routes; all require
// authentication.
func (h *ConversationHandler) RegisterConversationRoutes(router *gin.RouterGroup) {
	group := router.Group("/conversations")
	{
		group.GET("", h.list)
		group.GET("/:id/messages", h.messages)
		group.POST("/:id/read", h.markRead)
	}
	router.POST("/messages", h.send)
}

// list returns the user's conversations with last messages.
func (h *ConversationHandler) list(c *gin.Context) {
	user := middleware.CurrentUser(c)

	conversations, err := h.conversations.ListByUser(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// messages returns one conversation's messages, oldest first.
func (h *ConversationHandler) messages(c *gin.Context) {
	user := middleware.CurrentUser(c)
	conversationID, ok := parseID(c, "id")
	if !ok {
		return
	}

	messages, err := h.conversations.Messages(conversationID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// send appends a message to a conversation, creating the pair's thread on
// first contact.
func (h *ConversationHandler) send(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "message": err.Error()})
		return
	}

	message, err := h.conversations.Send(user, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// markRead marks the peer's messages as read.
func (h *ConversationHandler) markRead(c *gin.Context) {
	user := middleware.CurrentUser(c)
	conversationID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.conversations.MarkRead(conversationID, user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}
