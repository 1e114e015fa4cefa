package routes

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bricool-server/services"
)

// respondError maps a workflow error to an HTTP response. Validation and
// conflict bodies carry localized messages the clients show as-is.
func respondError(c *gin.Context, err error) {
	var fieldErr *services.FieldError
	switch {
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fieldErr.Message,
			"field": fieldErr.Field,
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "العنصر المطلوب غير موجود"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "لا تملك صلاحية تنفيذ هذه العملية"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "تغيرت حالة الطلب، يرجى تحديث الصفحة والمحاولة مرة أخرى"})
	default:
		log.Printf("❌ Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "حدث خطأ مؤقت، يرجى المحاولة مرة أخرى"})
	}
}
