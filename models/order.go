package models

import (
	"time"
)

// OrderStatus represents the current status of a repair order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusReviewing OrderStatus = "reviewing"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderCategory is the closed set of repair categories a customer can pick
type OrderCategory string

const (
	CategoryPlumbing    OrderCategory = "plumbing"
	CategoryElectricity OrderCategory = "electricity"
	CategoryCarpentry   OrderCategory = "carpentry"
	CategoryPainting    OrderCategory = "painting"
	CategoryOther       OrderCategory = "other"
)

// Order represents a customer-submitted repair request. TechnicianID stays
// nil until the customer accepts an offer and is immutable afterwards.
type Order struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	Title        string        `json:"title" gorm:"type:varchar(200);not null"`
	Description  string        `json:"description" gorm:"type:text;not null"`
	Category     OrderCategory `json:"category" gorm:"type:varchar(20);not null;check:category IN ('plumbing','electricity','carpentry','painting','other')"`
	Location     string        `json:"location" gorm:"type:text;not null"`
	Status       OrderStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	UserID       uint          `json:"user_id" gorm:"not null;index"`
	User         User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TechnicianID *uint         `json:"technician_id"`
	Technician   *User         `json:"technician,omitempty" gorm:"foreignKey:TechnicianID"`
	Images       []OrderImage  `json:"images,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// OrderImage is one uploaded photo attached to an order.
type OrderImage struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	OrderID uint   `json:"order_id" gorm:"not null;index"`
	URL     string `json:"url" gorm:"size:500;not null"`
}

func (Order) TableName() string {
	return "orders"
}

func (OrderImage) TableName() string {
	return "order_images"
}

// IsValidCategory reports whether c is one of the known repair categories.
func IsValidCategory(c OrderCategory) bool {
	switch c {
	case CategoryPlumbing, CategoryElectricity, CategoryCarpentry, CategoryPainting, CategoryOther:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status allows no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// AcceptsOffers reports whether technicians may still submit offers.
func (s OrderStatus) AcceptsOffers() bool {
	return s == OrderStatusPending || s == OrderStatusReviewing
}

// CanTransitionTo reports whether the status graph permits moving from s to
// next. Cancellation is reachable from any non-terminal state; everything
// else only moves forward: pending -> reviewing -> accepted -> completed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if next == OrderStatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusReviewing
	case OrderStatusReviewing:
		return next == OrderStatusReviewing || next == OrderStatusAccepted
	case OrderStatusAccepted:
		return next == OrderStatusCompleted
	default:
		return false
	}
}
