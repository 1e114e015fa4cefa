package models

import (
	"time"
)

// Offer is a technician's priced proposal against an order. Multiple offers
// per order are allowed; none may be created once the order has left the
// pending/reviewing states.
type Offer struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	OrderID       uint      `json:"order_id" gorm:"not null;index"`
	Order         Order     `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	TechnicianID  uint      `json:"technician_id" gorm:"not null;index"`
	Technician    User      `json:"technician,omitempty" gorm:"foreignKey:TechnicianID"`
	Price         float64   `json:"price" gorm:"type:decimal(10,2);not null;check:price > 0"`
	EstimatedTime string    `json:"estimated_time" gorm:"size:100;not null"`
	Message       string    `json:"message" gorm:"type:text;not null"`
	CreatedAt     time.Time `json:"created_at"`
}

// OfferCreate represents the request structure for submitting an offer
type OfferCreate struct {
	Price         float64 `json:"price" binding:"required"`
	EstimatedTime string  `json:"estimated_time" binding:"required"`
	Message       string  `json:"message" binding:"required"`
}

func (Offer) TableName() string {
	return "offers"
}
