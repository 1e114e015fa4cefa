package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bricool-server/models"
)

func TestResolveByAuthIDExisting(t *testing.T) {
	db := newTestDB(t)
	existing := createCustomer(t, db)
	svc := NewIdentityService(db)

	user, err := svc.ResolveByAuthID(existing.AuthID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, existing.Name, user.Name)
}

func TestResolveByAuthIDProvisionsOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db)

	user, err := svc.ResolveByAuthID("session-without-account")
	require.NoError(t, err)
	assert.Equal(t, "مستخدم جديد", user.Name)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.True(t, user.IsActive)

	// Resolving again returns the same row, not a duplicate.
	again, err := svc.ResolveByAuthID("session-without-account")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).
		Where("auth_id = ?", "session-without-account").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSetAvailabilityOnlyTechnicians(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db)
	technician := createTechnician(t, db)
	svc := NewIdentityService(db)

	require.NoError(t, svc.SetAvailability(technician.ID, false))
	updated, err := svc.GetByID(technician.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)
	assert.True(t, updated.IsActive, "going offline never bans the account")

	assert.ErrorIs(t, svc.SetAvailability(customer.ID, false), ErrNotFound)
	assert.ErrorIs(t, svc.SetAvailability(99999, true), ErrNotFound)
}
