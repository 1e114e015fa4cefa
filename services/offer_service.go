package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"bricool-server/models"
)

// OfferService handles technicians bidding on orders. Submitting an offer
// and moving the parent order to reviewing happen in a single transaction so
// no partially applied offer is ever observable.
type OfferService struct {
	db       *gorm.DB
	notifier *NotificationService
}

// NewOfferService creates a new offer service
func NewOfferService(db *gorm.DB, notifier *NotificationService) *OfferService {
	return &OfferService{db: db, notifier: notifier}
}

// Submit validates and persists a technician's offer on an order. The first
// offer transitions the order pending -> reviewing; later offers leave the
// status untouched. The conditional update keeps the order inside the
// offer-accepting states even when it changes concurrently.
func (s *OfferService) Submit(technician *models.User, orderID uint, input models.OfferCreate) (*models.Offer, error) {
	if !technician.IsTechnician() {
		return nil, ErrForbidden
	}
	if input.Price <= 0 {
		return nil, NewFieldError("price", "السعر مطلوب ويجب أن يكون أكبر من صفر")
	}
	if strings.TrimSpace(input.EstimatedTime) == "" {
		return nil, NewFieldError("estimated_time", "الوقت المقدر مطلوب")
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, NewFieldError("message", "الرسالة مطلوبة")
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.UserID == technician.ID {
		return nil, ErrForbidden
	}
	if !order.Status.AcceptsOffers() {
		return nil, ErrConflict
	}

	offer := models.Offer{
		OrderID:       order.ID,
		TechnicianID:  technician.ID,
		Price:         input.Price,
		EstimatedTime: input.EstimatedTime,
		Message:       input.Message,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&offer).Error; err != nil {
			return err
		}
		// Hold the order inside the offer-accepting states. Zero rows means
		// it was accepted or cancelled under our feet: roll the offer back.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status IN ?", order.ID,
				[]models.OrderStatus{models.OrderStatusPending, models.OrderStatusReviewing}).
			Update("status", models.OrderStatusReviewing)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(order.UserID,
		"عرض جديد",
		fmt.Sprintf("لديك عرض جديد على طلب: %s", order.Title),
		models.NotificationTypeOffer)

	return &offer, nil
}

// ListByOrder returns an order's offers joined with each technician's public
// fields. Visible to the order owner, admins and technicians who have bid
// on this order; other technicians see nothing of a competing bid sheet.
func (s *OfferService) ListByOrder(orderID uint, viewer *models.User) ([]models.Offer, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.UserID != viewer.ID && !viewer.IsAdmin() {
		var bids int64
		if err := s.db.Model(&models.Offer{}).
			Where("order_id = ? AND technician_id = ?", orderID, viewer.ID).
			Count(&bids).Error; err != nil {
			return nil, err
		}
		if bids == 0 {
			return nil, ErrForbidden
		}
	}

	var offers []models.Offer
	err := s.db.Where("order_id = ?", orderID).
		Preload("Technician").
		Order("created_at ASC").
		Find(&offers).Error
	return offers, err
}

// ListByTechnician returns the technician's own offers with parent orders.
func (s *OfferService) ListByTechnician(technicianID uint) ([]models.Offer, error) {
	var offers []models.Offer
	err := s.db.Where("technician_id = ?", technicianID).
		Preload("Order").
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}
