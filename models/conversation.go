package models

import (
	"time"
)

// Conversation pairs a customer and a technician for follow-up messaging.
// Acceptance creates it once per order. Order-bound threads are unique per
// (pair, order); peer-only threads carry a NULL order_id, which the default
// unique index treats as distinct, so a partial index enforces at most one
// such thread per pair. Both keep the lazy get-or-create on first message
// idempotent.
type Conversation struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_conv_pair;uniqueIndex:idx_conv_peer,where:order_id IS NULL"`
	User         User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TechnicianID uint      `json:"technician_id" gorm:"not null;uniqueIndex:idx_conv_pair;uniqueIndex:idx_conv_peer,where:order_id IS NULL"`
	Technician   User      `json:"technician,omitempty" gorm:"foreignKey:TechnicianID"`
	OrderID      *uint     `json:"order_id" gorm:"uniqueIndex:idx_conv_pair"`
	Order        *Order    `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt    time.Time `json:"created_at"`
}

// Message is a single message inside a conversation. Append-only; read is
// the only mutable field, flipped by the recipient.
type Message struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ConversationID uint      `json:"conversation_id" gorm:"not null;index"`
	SenderID       uint      `json:"sender_id" gorm:"not null"`
	Content        string    `json:"content" gorm:"type:text;not null"`
	ImageURL       *string   `json:"image_url" gorm:"size:500"`
	Read           bool      `json:"read" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
}

// SendMessageRequest represents the request structure for sending a message.
// Either ConversationID or PeerID must be set; PeerID lazily creates the
// conversation when the pair has none yet.
type SendMessageRequest struct {
	ConversationID uint    `json:"conversation_id"`
	PeerID         uint    `json:"peer_id"`
	Content        string  `json:"content" binding:"required"`
	ImageURL       *string `json:"image_url"`
}

func (Conversation) TableName() string {
	return "conversations"
}

func (Message) TableName() string {
	return "messages"
}

// HasParticipant reports whether the user is one of the two parties.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.UserID == userID || c.TechnicianID == userID
}

// PeerOf returns the other party of the conversation.
func (c *Conversation) PeerOf(userID uint) uint {
	if c.UserID == userID {
		return c.TechnicianID
	}
	return c.UserID
}
