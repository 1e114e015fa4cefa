package services

import (
	"gorm.io/gorm"

	"bricool-server/models"
)

// AdminStats are the back-office dashboard counters.
type AdminStats struct {
	UsersCount           int64 `json:"users_count"`
	TechniciansCount     int64 `json:"technicians_count"`
	ActiveOrdersCount    int64 `json:"active_orders_count"`
	CompletedOrdersCount int64 `json:"completed_orders_count"`
}

// AdminService backs the admin back-office: stats, account listing, the
// activity toggle and the explicit administrative purge.
type AdminService struct {
	db *gorm.DB
}

// NewAdminService creates a new admin service
func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// Stats counts customers, technicians, active and completed orders.
func (s *AdminService) Stats() (*AdminStats, error) {
	var stats AdminStats

	if err := s.db.Model(&models.User{}).
		Where("role = ?", models.RoleCustomer).
		Count(&stats.UsersCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).
		Where("role = ?", models.RoleTechnician).
		Count(&stats.TechniciansCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Order{}).
		Where("status IN ?", []models.OrderStatus{
			models.OrderStatusPending, models.OrderStatusReviewing, models.OrderStatusAccepted,
		}).
		Count(&stats.ActiveOrdersCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusCompleted).
		Count(&stats.CompletedOrdersCount).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// ListUsers returns every account, newest first.
func (s *AdminService) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// SetUserActive flips any account's active flag.
func (s *AdminService) SetUserActive(userID uint, active bool) error {
	res := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PurgeUser deletes an account and its session tokens. Orders, offers and
// ratings keep their rows; they reference the account weakly by id.
func (s *AdminService) PurgeUser(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.User{}, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
