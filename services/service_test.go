package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bricool-server/database"
	"bricool-server/models"
)

var dbSeq int

// newTestDB opens a fresh in-memory database with the full schema. The
// named shared-cache DSN keeps every pooled connection on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbSeq++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

var userSeq int

func createUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	userSeq++
	user := models.User{
		Name:         fmt.Sprintf("User %d", userSeq),
		Email:        fmt.Sprintf("user%d@example.com", userSeq),
		Phone:        fmt.Sprintf("+21260000%04d", userSeq),
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
		IsAvailable:  true,
		AuthID:       fmt.Sprintf("auth-%d", userSeq),
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createCustomer(t *testing.T, db *gorm.DB) *models.User {
	return createUser(t, db, models.RoleCustomer)
}

func createTechnician(t *testing.T, db *gorm.DB) *models.User {
	return createUser(t, db, models.RoleTechnician)
}

func createTestOrder(t *testing.T, db *gorm.DB, customer *models.User) *models.Order {
	t.Helper()

	order, err := NewOrderService(db).Create(customer.ID, OrderCreate{
		Title:       "تسريب مياه",
		Description: "تسريب تحت حوض المطبخ",
		Category:    models.CategoryPlumbing,
		Location:    "الرباط",
	})
	require.NoError(t, err)
	return order
}

func orderStatus(t *testing.T, db *gorm.DB, orderID uint) models.OrderStatus {
	t.Helper()

	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	return order.Status
}
