package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"

	"bricool-server/models"
)

// acceptedOrder drives an order through offer submission and acceptance.
func acceptedOrder(t *testing.T, db *gorm.DB, customer, technician *models.User) *models.Order {
	t.Helper()

	order := createTestOrder(t, db, customer)
	offer := submitOffer(t, db, technician, order.ID)
	_, err := NewAcceptanceService(db, NewNotificationService(db, nil)).
		Accept(customer.ID, order.ID, offer.ID)
	require.NoError(t, err)

	require.NoError(t, db.First(order, order.ID).Error)
	return order
}

func TestRateCompletesOrder(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db)
	technician := createTechnician(t, db)
	order := acceptedOrder(t, db, customer, technician)
	svc := NewRatingService(db, NewNotificationService(db, nil))

	comment := "عمل ممتاز وسريع"
	rating, err := svc.Rate(customer.ID, order.ID, models.RatingCreate{Stars: 5, Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, technician.ID, rating.TechnicianID)
	assert.Equal(t, 5, rating.Stars)
	assert.Equal(t, models.OrderStatusCompleted, orderStatus(t, db, order.ID))
}

func TestRateRejectsSecondRating(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db)
	technician := createTechnician(t, db)
	order := acceptedOrder(t, db, customer, technician)
	svc := NewRatingService(db, NewNotificationService(db, nil))

	_, err := svc.Rate(customer.ID, order.ID, models.RatingCreate{Stars: 4})
	require.NoError(t, err)

	_, err = svc.Rate(customer.ID, order.ID, models.RatingCreate{Stars: 1})
	assert.ErrorIs(t, err, ErrConflict)

	var count int64
	require.NoError(t, db.Model(&models.Rating{}).Where("order_id = ?", order.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRateGuards(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db)
	stranger := createCustomer(t, db)
	technician := createTechnician(t, db)
	svc := NewRatingService(db, NewNotificationService(db, nil))

	t.Run("stars out of range", func(t *testing.T) {
		order := acceptedOrder(t, db, customer, technician)
		for _, stars := range []int{0, 6, -1} {
			_, err := svc.Rate(customer.ID, order.ID, models.RatingCreate{Stars: stars})
			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, "stars", fieldErr.Field)
		}
	})

	t.Run("only the owner may rate", func(t *testing.T) {
		order := acceptedOrder(t, db, customer, technician)
		_, err := svc.Rate(stranger.ID, order.ID, models.RatingCreate{Stars: 5})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("order without a technician", func(t *testing.T) {
		order := createTestOrder(t, db, customer)
		_, err := svc.Rate(customer.ID, order.ID, models.RatingCreate{Stars: 5})
		assert.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, models.OrderStatusPending, orderStatus(t, db, order.ID))
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := svc.Rate(customer.ID, 99999, models.RatingCreate{Stars: 5})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRatingSummary(t *testing.T) {
	db := newTestDB(t)
	technician := createTechnician(t, db)
	svc := NewRatingService(db, NewNotificationService(db, nil))

	t.Run("empty summary", func(t *testing.T) {
		summary, err := svc.Summary(technician.ID)
		require.NoError(t, err)
		assert.Zero(t, summary.TotalRatings)
		assert.Zero(t, summary.AverageStars)
	})

	for _, stars := range []int{5, 4, 3} {
		customer := createCustomer(t, db)
		order := acceptedOrder(t, db, customer, technician)
		_, err := svc.Rate(customer.ID, order.ID, models.RatingCreate{Stars: stars})
		require.NoError(t, err)
	}

	summary, err := svc.Summary(technician.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, summary.TotalRatings)
	assert.InDelta(t, 4.0, summary.AverageStars, 0.001)

	ratings, err := svc.ListByTechnician(technician.ID)
	require.NoError(t, err)
	assert.Len(t, ratings, 3)
}
