package routes

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bricool-server/models"
)

func TestAvailabilityToggleKeepsAccountUsable(t *testing.T) {
	router, _ := newTestRouter(t)
	token, _ := signUp(t, router, "technician")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/technicians/status", token, gin.H{
		"is_available": false,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// The offline technician can still authenticate and work.
	me := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, me.Code, me.Body.String())
	user := decodeBody(t, me)["user"].(map[string]interface{})
	assert.Equal(t, false, user["is_available"])
	assert.Equal(t, true, user["is_active"])

	open := doJSON(t, router, http.MethodGet, "/api/v1/orders/open", token, nil)
	assert.Equal(t, http.StatusOK, open.Code)

	// And flip themselves back online.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/technicians/status", token, gin.H{
		"is_available": true,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAvailabilityToggleCustomerForbidden(t *testing.T) {
	router, _ := newTestRouter(t)
	token, _ := signUp(t, router, "customer")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/technicians/status", token, gin.H{
		"is_available": false,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeactivatedAccountIsLockedOut(t *testing.T) {
	router, db := newTestRouter(t)
	token, userID := signUp(t, router, "technician")

	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("is_active", false).Error)

	me := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, me.Code)
}
