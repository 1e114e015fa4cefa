package services

import (
	"errors"

	"gorm.io/gorm"

	"bricool-server/models"
)

// IdentityService resolves an authenticated session to an account row by its
// stable external identity reference (auth_id). A valid session whose
// account row is missing gets one auto-provisioned with the default role —
// first-login flows depend on this. The unique index on auth_id plus the
// insert-then-reread keeps concurrent first logins from duplicating the row.
type IdentityService struct {
	db *gorm.DB
}

// NewIdentityService creates a new identity service
func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

// ResolveByAuthID maps the external identity to its account, provisioning a
// placeholder customer account when none exists yet.
func (s *IdentityService) ResolveByAuthID(authID string) (*models.User, error) {
	var user models.User
	err := s.db.Where("auth_id = ?", authID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		Name:        "مستخدم جديد",
		Email:       authID + "@placeholder.local",
		Phone:       authID,
		Role:        models.RoleCustomer,
		IsActive:    true,
		IsAvailable: true,
		AuthID:      authID,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			// Another tab provisioned it first.
			if err := s.db.Where("auth_id = ?", authID).First(&user).Error; err != nil {
				return nil, err
			}
			return &user, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID loads an account by primary key.
func (s *IdentityService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SetAvailability toggles a technician's self-set presence flag. It never
// touches IsActive, the administrative ban switch: a technician going
// offline keeps full use of their account.
func (s *IdentityService) SetAvailability(userID uint, available bool) error {
	res := s.db.Model(&models.User{}).
		Where("id = ? AND role = ?", userID, models.RoleTechnician).
		Update("is_available", available)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
