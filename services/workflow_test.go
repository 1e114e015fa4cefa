package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bricool-server/models"
)

// Drives an order through the whole marketplace lifecycle: posting, two
// competing offers, acceptance, messaging and the final rating.
func TestOrderLifecycle(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db)
	plumber := createTechnician(t, db)
	rival := createTechnician(t, db)

	notifier := NewNotificationService(db, nil)
	orders := NewOrderService(db)
	offers := NewOfferService(db, notifier)
	acceptance := NewAcceptanceService(db, notifier)
	conversations := NewConversationService(db, notifier, nil)
	ratings := NewRatingService(db, notifier)

	// The customer posts a plumbing job.
	order, err := orders.Create(customer.ID, OrderCreate{
		Title:       "تسريب مياه",
		Description: "تسريب تحت حوض المطبخ",
		Category:    models.CategoryPlumbing,
		Location:    "الرباط",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	open, err := orders.ListOpen()
	require.NoError(t, err)
	require.Len(t, open, 1)

	// Two technicians bid; the order enters reviewing.
	winning, err := offers.Submit(plumber, order.ID, models.OfferCreate{
		Price: 300, EstimatedTime: "ساعتان", Message: "يمكنني الحضور اليوم",
	})
	require.NoError(t, err)
	_, err = offers.Submit(rival, order.ID, models.OfferCreate{
		Price: 280, EstimatedTime: "ثلاث ساعات", Message: "متوفر غدا",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusReviewing, orderStatus(t, db, order.ID))

	// The customer accepts the first offer.
	conversation, err := acceptance.Accept(customer.ID, order.ID, winning.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAccepted, orderStatus(t, db, order.ID))

	// The order is no longer open to offers.
	_, err = offers.Submit(rival, order.ID, models.OfferCreate{
		Price: 250, EstimatedTime: "ساعة", Message: "سعر أفضل",
	})
	assert.ErrorIs(t, err, ErrConflict)

	open, err = orders.ListOpen()
	require.NoError(t, err)
	assert.Empty(t, open)

	// The pair exchanges messages on the acceptance-created thread.
	_, err = conversations.Send(customer, models.SendMessageRequest{
		ConversationID: conversation.ID,
		Content:        "متى يمكنك الحضور؟",
	})
	require.NoError(t, err)
	_, err = conversations.Send(plumber, models.SendMessageRequest{
		ConversationID: conversation.ID,
		Content:        "سأصل خلال ساعة",
	})
	require.NoError(t, err)

	messages, err := conversations.Messages(conversation.ID, customer.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "متى يمكنك الحضور؟", messages[0].Content)

	// Rating completes the order.
	_, err = ratings.Rate(customer.ID, order.ID, models.RatingCreate{Stars: 5})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, orderStatus(t, db, order.ID))

	// Completed orders cannot be cancelled.
	assert.ErrorIs(t, orders.Cancel(order.ID, customer.ID), ErrConflict)

	// Both sides accumulated notifications along the way.
	count, err := notifier.CountUnread(plumber.ID)
	require.NoError(t, err)
	assert.Positive(t, count)
	count, err = notifier.CountUnread(customer.ID)
	require.NoError(t, err)
	assert.Positive(t, count)

	summary, err := ratings.Summary(plumber.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary.TotalRatings)
	assert.InDelta(t, 5.0, summary.AverageStars, 0.001)
}
