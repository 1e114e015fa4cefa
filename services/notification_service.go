package services

import (
	"log"

	"gorm.io/gorm"

	"bricool-server/models"
)

// Pusher delivers a realtime event to a connected user. Implemented by the
// websocket hub; delivery is best-effort.
type Pusher interface {
	SendToUser(userID uint, event string, payload interface{})
}

// NotificationService records notifications and pushes them to connected
// clients. Every failure here is logged and swallowed: a missing
// notification must never fail the workflow operation that triggered it.
type NotificationService struct {
	db   *gorm.DB
	push Pusher
}

// NewNotificationService creates a new notification service. push may be nil.
func NewNotificationService(db *gorm.DB, push Pusher) *NotificationService {
	return &NotificationService{db: db, push: push}
}

// Dispatch creates a notification record for the target user and, when the
// user has a live websocket connection, pushes it immediately.
func (ns *NotificationService) Dispatch(userID uint, title, body string, ntype models.NotificationType) {
	notification := models.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
		Type:   ntype,
	}

	if err := ns.db.Create(&notification).Error; err != nil {
		log.Printf("⚠️ Failed to create notification for user %d: %v", userID, err)
		return
	}

	if ns.push != nil {
		ns.push.SendToUser(userID, "notification", notification)
	}
}

// List returns a user's notifications, newest first.
func (ns *NotificationService) List(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := ns.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkRead marks one notification read. Only the owner may do so.
func (ns *NotificationService) MarkRead(id, userID uint) error {
	res := ns.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead marks all of a user's notifications read.
func (ns *NotificationService) MarkAllRead(userID uint) error {
	return ns.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

// CountUnread returns how many unread notifications the user has.
func (ns *NotificationService) CountUnread(userID uint) (int64, error) {
	var count int64
	err := ns.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}
