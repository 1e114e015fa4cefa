package models

import (
	"time"
)

// Rating is the customer's review of a completed order. The unique index on
// OrderID enforces at most one rating per order; ratings are append-only.
type Rating struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	OrderID      uint      `json:"order_id" gorm:"not null;uniqueIndex"`
	Order        Order     `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	UserID       uint      `json:"user_id" gorm:"not null"`
	User         User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TechnicianID uint      `json:"technician_id" gorm:"not null;index"`
	Technician   User      `json:"technician,omitempty" gorm:"foreignKey:TechnicianID"`
	Stars        int       `json:"stars" gorm:"type:int;not null;check:stars >= 1 AND stars <= 5"`
	Comment      *string   `json:"comment" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}

// RatingCreate represents the request structure for rating an order
type RatingCreate struct {
	Stars   int     `json:"stars" binding:"required,min=1,max=5"`
	Comment *string `json:"comment"`
}

// RatingSummary aggregates a technician's ratings.
type RatingSummary struct {
	TechnicianID uint    `json:"technician_id"`
	AverageStars float64 `json:"average_stars"`
	TotalRatings int64   `json:"total_ratings"`
}

func (Rating) TableName() string {
	return "ratings"
}
