package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer   UserRole = "customer"
	RoleTechnician UserRole = "technician"
	RoleAdmin      UserRole = "admin"
)

// User is an account in the marketplace. The role is fixed at registration;
// customers post orders, technicians bid on them. IsActive is the
// administrative ban switch and gates authentication; IsAvailable is the
// technician's self-set presence flag and never blocks the account.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Phone        string    `json:"phone" gorm:"size:20;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Role         UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'customer';check:role IN ('customer','technician','admin')"`
	AvatarURL    *string   `json:"avatar_url" gorm:"size:500"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`
	AuthID       string    `json:"auth_id" gorm:"size:64;uniqueIndex;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// PublicUser is the subset of account fields safe to embed in joined
// responses (offers, conversations).
type PublicUser struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	return nil
}

// Public returns the user's public fields.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}

// IsValidRole checks if the user role is valid
func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleCustomer, RoleTechnician, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsTechnician checks if the user is a technician
func (u *User) IsTechnician() bool {
	return u.Role == RoleTechnician
}

// IsAdmin checks if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsCustomer checks if the user is a customer
func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}
