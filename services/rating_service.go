package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bricool-server/models"
)

// RatingService records the customer's rating of a completed job. The rating
// insert and the order's accepted -> completed transition share a
// transaction; the unique index on order_id makes a second rating a
// conflict, never a silent overwrite.
type RatingService struct {
	db       *gorm.DB
	notifier *NotificationService
}

// NewRatingService creates a new rating service
func NewRatingService(db *gorm.DB, notifier *NotificationService) *RatingService {
	return &RatingService{db: db, notifier: notifier}
}

// Rate stores the customer's rating for their order and completes it.
func (s *RatingService) Rate(customerID, orderID uint, input models.RatingCreate) (*models.Rating, error) {
	if input.Stars < 1 || input.Stars > 5 {
		return nil, NewFieldError("stars", "التقييم يجب أن يكون بين 1 و 5")
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
	if order.TechnicianID == nil {
		return nil, ErrConflict
	}

	rating := models.Rating{
		OrderID:      order.ID,
		UserID:       customerID,
		TechnicianID: *order.TechnicianID,
		Stars:        input.Stars,
		Comment:      input.Comment,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rating).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrConflict
			}
			return err
		}
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.OrderStatusAccepted).
			Update("status", models.OrderStatusCompleted)
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

	s.notifier.Dispatch(*order.TechnicianID,
		"تقييم جديد",
		fmt.Sprintf("قام العميل بتقييم الطلب: %s", order.Title),
		models.NotificationTypeStatus)

	return &rating, nil
}

// ListByTechnician returns a technician's ratings, newest first.
func (s *RatingService) ListByTechnician(technicianID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := s.db.Where("technician_id = ?", technicianID).
		Preload("User").
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

// Summary aggregates a technician's average stars and rating count.
func (s *RatingService) Summary(technicianID uint) (*models.RatingSummary, error) {
	summary := models.RatingSummary{TechnicianID: technicianID}

	if err := s.db.Model(&models.Rating{}).
		Where("technician_id = ?", technicianID).
		Count(&summary.TotalRatings).Error; err != nil {
		return nil, err
	}
	if summary.TotalRatings > 0 {
		if err := s.db.Model(&models.Rating{}).
			Where("technician_id = ?", technicianID).
			Select("AVG(stars)").
			Scan(&summary.AverageStars).Error; err != nil {
			return nil, err
		}
	}
	return &summary, nil
}
