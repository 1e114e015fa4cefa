package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"bricool-server/models"
)

// ConversationWithLastMessage is a conversation row decorated with the most
// recent message, the shape the inbox screens render.
type ConversationWithLastMessage struct {
	models.Conversation
	LastMessage *models.Message `json:"last_message,omitempty"`
}

// ConversationService handles messaging between the two parties of an
// accepted order. A conversation normally exists from acceptance, but the
// first message lazily creates one so degraded rows (acceptance without
// conversation) stay usable.
type ConversationService struct {
	db       *gorm.DB
	notifier *NotificationService
	push     Pusher
}

// NewConversationService creates a new conversation service. push may be nil.
func NewConversationService(db *gorm.DB, notifier *NotificationService, push Pusher) *ConversationService {
	return &ConversationService{db: db, notifier: notifier, push: push}
}

// ListByUser returns every conversation the user participates in, with the
// peer's public fields, the originating order and the last message.
func (s *ConversationService) ListByUser(userID uint) ([]ConversationWithLastMessage, error) {
	var conversations []models.Conversation
	err := s.db.
		Where("user_id = ? OR technician_id = ?", userID, userID).
		Preload("User").
		Preload("Technician").
		Preload("Order").
		Order("created_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}

	result := make([]ConversationWithLastMessage, 0, len(conversations))
	for _, conv := range conversations {
		item := ConversationWithLastMessage{Conversation: conv}
		var last models.Message
		err := s.db.Where("conversation_id = ?", conv.ID).
			Order("created_at DESC").
			First(&last).Error
		if err == nil {
			item.LastMessage = &last
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// Get loads a conversation the user participates in.
func (s *ConversationService) Get(conversationID, userID uint) (*models.Conversation, error) {
	var conv models.Conversation
	if err := s.db.Preload("User").Preload("Technician").First(&conv, conversationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, ErrForbidden
	}
	return &conv, nil
}

// Send appends a message. When the request names a peer instead of an
// existing conversation, the customer/technician pair's thread is looked up
// or created on the spot.
func (s *ConversationService) Send(sender *models.User, req models.SendMessageRequest) (*models.Message, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, NewFieldError("content", "نص الرسالة مطلوب")
	}

	var conv *models.Conversation
	var err error
	switch {
	case req.ConversationID != 0:
		conv, err = s.Get(req.ConversationID, sender.ID)
	case req.PeerID != 0:
		conv, err = s.getOrCreateWithPeer(sender, req.PeerID)
	default:
		return nil, NewFieldError("conversation_id", "المحادثة أو الطرف الآخر مطلوب")
	}
	if err != nil {
		return nil, err
	}

	message := models.Message{
		ConversationID: conv.ID,
		SenderID:       sender.ID,
		Content:        req.Content,
		ImageURL:       req.ImageURL,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}

	peerID := conv.PeerOf(sender.ID)
	if s.push != nil {
		s.push.SendToUser(peerID, "message", message)
	}
	s.notifier.Dispatch(peerID,
		"رسالة جديدة",
		"لديك رسالة جديدة من "+sender.Name,
		models.NotificationTypeMessage)

	return &message, nil
}

// Messages returns a conversation's messages in chronological order.
func (s *ConversationService) Messages(conversationID, userID uint) ([]models.Message, error) {
	if _, err := s.Get(conversationID, userID); err != nil {
		return nil, err
	}
	var messages []models.Message
	err := s.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// MarkRead marks the peer's messages in the conversation as read.
func (s *ConversationService) MarkRead(conversationID, userID uint) error {
	if _, err := s.Get(conversationID, userID); err != nil {
		return err
	}
	return s.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read = ?", conversationID, userID, false).
		Update("read", true).Error
}

// getOrCreateWithPeer finds the pair's order-independent thread or creates
// it. The sender's role fixes which side of the pair they are.
func (s *ConversationService) getOrCreateWithPeer(sender *models.User, peerID uint) (*models.Conversation, error) {
	var peer models.User
	if err := s.db.First(&peer, peerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	customerID, technicianID := sender.ID, peer.ID
	if sender.IsTechnician() {
		customerID, technicianID = peer.ID, sender.ID
	}

	var conv models.Conversation
	err := s.db.Where("user_id = ? AND technician_id = ?", customerID, technicianID).
		Order("created_at DESC").
		First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = models.Conversation{UserID: customerID, TechnicianID: technicianID}
	if err := s.db.Create(&conv).Error; err != nil {
		if isDuplicateKey(err) {
			if err := s.db.Where("user_id = ? AND technician_id = ? AND order_id IS NULL",
				customerID, technicianID).First(&conv).Error; err != nil {
				return nil, err
			}
			return &conv, nil
		}
		return nil, err
	}
	return &conv, nil
}
