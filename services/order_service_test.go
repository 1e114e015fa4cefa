package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bricool-server/models"
)

func TestOrderCreateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db)
	svc := NewOrderService(db)

	order, err := svc.Create(customer.ID, OrderCreate{
		Title:       "تسريب مياه",
		Description: "تسريب تحت حوض المطبخ",
		Category:    models.CategoryPlumbing,
		Location:    "الرباط",
		Images:      []string{"https://example.com/a.jpg", "https://example.com/b.jpg"},
	})
	require.NoError(t, err)

	got, err := svc.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "تسريب مياه", got.Title)
	assert.Equal(t, "تسريب تحت حوض المطبخ", got.Description)
	assert.Equal(t, models.CategoryPlumbing, got.Category)
	assert.Equal(t, "الرباط", got.Location)
	assert.Equal(t, models.OrderStatusPending, got.Status)
	assert.Equal(t, customer.ID, got.UserID)
	assert.Nil(t, got.TechnicianID)
	assert.Len(t, got.Images, 2)
}

func TestOrderCreateValidation(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db)
	svc := NewOrderService(db)

	tests := []struct {
		name  string
		input OrderCreate
		field string
	}{
		{"missing title", OrderCreate{Description: "d", Category: models.CategoryOther, Location: "l"}, "title"},
		{"missing description", OrderCreate{Title: "t", Category: models.CategoryOther, Location: "l"}, "description"},
		{"bad category", OrderCreate{Title: "t", Description: "d", Category: "gardening", Location: "l"}, "category"},
		{"missing location", OrderCreate{Title: "t", Description: "d", Category: models.CategoryOther}, "location"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(customer.ID, tt.input)
			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}

	// Nothing persisted on validation failure.
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOrderListOpen(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db)
	svc := NewOrderService(db)

	open := createTestOrder(t, db, customer)
	done := createTestOrder(t, db, customer)
	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", done.ID).
		Update("status", models.OrderStatusCompleted).Error)

	orders, err := svc.ListOpen()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, open.ID, orders[0].ID)
}

func TestOrderCancel(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db)
	other := createCustomer(t, db)
	svc := NewOrderService(db)

	t.Run("owner cancels pending order", func(t *testing.T) {
		order := createTestOrder(t, db, customer)
		require.NoError(t, svc.Cancel(order.ID, customer.ID))
		assert.Equal(t, models.OrderStatusCancelled, orderStatus(t, db, order.ID))
	})

	t.Run("non-owner is rejected before any write", func(t *testing.T) {
		order := createTestOrder(t, db, customer)
		err := svc.Cancel(order.ID, other.ID)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Equal(t, models.OrderStatusPending, orderStatus(t, db, order.ID))
	})

	t.Run("accepted order cannot be cancelled", func(t *testing.T) {
		order := createTestOrder(t, db, customer)
		require.NoError(t, db.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("status", models.OrderStatusAccepted).Error)

		err := svc.Cancel(order.ID, customer.ID)
		assert.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, models.OrderStatusAccepted, orderStatus(t, db, order.ID))
	})

	t.Run("unknown order", func(t *testing.T) {
		err := svc.Cancel(99999, customer.ID)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}
