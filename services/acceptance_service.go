package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bricool-server/models"
)

// AcceptanceService coordinates the customer accepting one offer: the order
// moves reviewing -> accepted, the offer's technician is bound to it, and a
// conversation between the two parties is created, all in one transaction.
// The status change is a compare-and-swap so exactly one of any concurrent
// acceptance attempts wins; the losers get a state conflict.
type AcceptanceService struct {
	db       *gorm.DB
	notifier *NotificationService
}

// NewAcceptanceService creates a new acceptance service
func NewAcceptanceService(db *gorm.DB, notifier *NotificationService) *AcceptanceService {
	return &AcceptanceService{db: db, notifier: notifier}
}

// Accept lets the owning customer accept the given offer on their order.
func (s *AcceptanceService) Accept(customerID, orderID, offerID uint) (*models.Conversation, error) {
	var offer models.Offer
	if err := s.db.First(&offer, offerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if offer.OrderID != orderID {
		return nil, ErrNotFound
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.UserID != customerID {
		return nil, ErrForbidden
	}
	if offer.TechnicianID == customerID {
		return nil, ErrForbidden
	}

	conversation := models.Conversation{
		UserID:       order.UserID,
		TechnicianID: offer.TechnicianID,
		OrderID:      &order.ID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.OrderStatusReviewing).
			Updates(map[string]interface{}{
				"status":        models.OrderStatusAccepted,
				"technician_id": offer.TechnicianID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		if err := tx.Create(&conversation).Error; err != nil {
			if isDuplicateKey(err) {
				// The pair already talks about this order; reuse that thread.
				return tx.Where("user_id = ? AND technician_id = ? AND order_id = ?",
					conversation.UserID, conversation.TechnicianID, order.ID).
					First(&conversation).Error
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(offer.TechnicianID,
		"تم قبول عرضك",
		fmt.Sprintf("تم قبول عرضك للطلب: %s", order.Title),
		models.NotificationTypeOffer)

	return &conversation, nil
}
