package services

import (
	"errors"

	"gorm.io/gorm"

	"bricool-server/models"
)

// FavoriteService lets customers bookmark technicians.
type FavoriteService struct {
	db *gorm.DB
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Toggle flips the bookmark and reports the resulting state.
func (s *FavoriteService) Toggle(userID, technicianID uint) (bool, error) {
	var technician models.User
	if err := s.db.Where("id = ? AND role = ?", technicianID, models.RoleTechnician).
		First(&technician).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	var favorite models.Favorite
	err := s.db.Where("user_id = ? AND technician_id = ?", userID, technicianID).
		First(&favorite).Error
	if err == nil {
		if err := s.db.Delete(&favorite).Error; err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	favorite = models.Favorite{UserID: userID, TechnicianID: technicianID}
	if err := s.db.Create(&favorite).Error; err != nil {
		if isDuplicateKey(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// Check reports whether the technician is bookmarked by the user.
func (s *FavoriteService) Check(userID, technicianID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Favorite{}).
		Where("user_id = ? AND technician_id = ?", userID, technicianID).
		Count(&count).Error
	return count > 0, err
}

// ListByUser returns the user's bookmarked technicians.
func (s *FavoriteService) ListByUser(userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := s.db.Where("user_id = ?", userID).
		Preload("Technician").
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}
