package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"bricool-server/models"
)

// OrderCreate is the input for posting a new repair order.
type OrderCreate struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Category    models.OrderCategory `json:"category"`
	Location    string               `json:"location"`
	Images      []string             `json:"images"`
}

// OrderService owns the order side of the workflow: creation, listing and
// cancellation. Status changes always go through conditional updates so the
// transition graph holds even under concurrent writers.
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates a new order service
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// Create validates the input and persists a new order in status pending,
// together with its image rows, in one transaction.
func (os *OrderService) Create(userID uint, input OrderCreate) (*models.Order, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, NewFieldError("title", "العنوان مطلوب")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, NewFieldError("description", "الوصف مطلوب")
	}
	if !models.IsValidCategory(input.Category) {
		return nil, NewFieldError("category", "التصنيف غير صالح")
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, NewFieldError("location", "الموقع مطلوب")
	}

	order := models.Order{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		Status:      models.OrderStatusPending,
		UserID:      userID,
	}
	for _, url := range input.Images {
		order.Images = append(order.Images, models.OrderImage{URL: url})
	}

	if err := os.db.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByID loads an order with its owner, technician and images.
func (os *OrderService) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := os.db.
		Preload("User").
		Preload("Technician").
		Preload("Images").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUser returns the customer's own orders, newest first.
func (os *OrderService) ListByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := os.db.Where("user_id = ?", userID).
		Preload("Images").
		Preload("Technician").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// ListOpen returns orders still accepting offers, for technicians to browse.
func (os *OrderService) ListOpen() ([]models.Order, error) {
	var orders []models.Order
	err := os.db.
		Where("status IN ?", []models.OrderStatus{models.OrderStatusPending, models.OrderStatusReviewing}).
		Preload("User").
		Preload("Images").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// ListAll returns every order with both parties, for the admin back-office.
func (os *OrderService) ListAll() ([]models.Order, error) {
	var orders []models.Order
	err := os.db.
		Preload("User").
		Preload("Technician").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// Cancel moves an order to cancelled. Only the owning customer may cancel,
// and only while no offer has been accepted (pending or reviewing). The
// conditional update reports a conflict when the order already moved on.
func (os *OrderService) Cancel(orderID, userID uint) error {
	order, err := os.GetByID(orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return ErrForbidden
	}

	res := os.db.Model(&models.Order{}).
		Where("id = ? AND status IN ?", orderID,
			[]models.OrderStatus{models.OrderStatusPending, models.OrderStatusReviewing}).
		Update("status", models.OrderStatusCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
