package models

import (
	"time"
)

// Favorite marks a technician as bookmarked by a customer.
type Favorite struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_fav_pair"`
	TechnicianID uint      `json:"technician_id" gorm:"not null;uniqueIndex:idx_fav_pair"`
	Technician   User      `json:"technician,omitempty" gorm:"foreignKey:TechnicianID"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
