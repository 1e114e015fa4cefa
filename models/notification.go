package models

import (
	"time"
)

// NotificationType classifies what a notification is about
type NotificationType string

const (
	NotificationTypeMessage NotificationType = "message"
	NotificationTypeOffer   NotificationType = "offer"
	NotificationTypeStatus  NotificationType = "status"
	NotificationTypeSystem  NotificationType = "system"
)

// Notification is a best-effort side-effect record; its absence or delay
// never blocks the workflow operation that produced it.
type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"user_id" gorm:"not null;index"`
	Title     string           `json:"title" gorm:"size:255;not null"`
	Body      string           `json:"body" gorm:"type:text;not null"`
	Type      NotificationType `json:"type" gorm:"type:varchar(20);not null;default:'system'"`
	Read      bool             `json:"read" gorm:"default:false"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
