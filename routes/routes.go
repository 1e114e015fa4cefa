package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bricool-server/config"
	"bricool-server/middleware"
	"bricool-server/services"
	ws "bricool-server/websocket"
)

// Register wires every handler under /api/v1. The database handle, the
// config and the hub are constructed by the entry point and injected here;
// no package keeps ambient state.
func Register(router *gin.Engine, db *gorm.DB, cfg *config.Config, hub *ws.Hub) {
	notifier := services.NewNotificationService(db, hub)
	identity := services.NewIdentityService(db)
	jwtService := services.NewJWTService(db, cfg.JWT)
	orders := services.NewOrderService(db)
	offers := services.NewOfferService(db, notifier)
	acceptance := services.NewAcceptanceService(db, notifier)
	ratings := services.NewRatingService(db, notifier)
	conversations := services.NewConversationService(db, notifier, hub)
	admin := services.NewAdminService(db)
	favorites := services.NewFavoriteService(db)

	auth := middleware.Auth(jwtService, identity)

	apiV1 := router.Group("/api/v1")

	NewAuthHandler(db, jwtService, identity).RegisterAuthRoutes(apiV1, auth)

	protected := apiV1.Group("")
	protected.Use(auth)
	{
		NewOrderHandler(orders).RegisterOrderRoutes(protected)
		NewOfferHandler(offers, acceptance).RegisterOfferRoutes(protected)
		NewRatingHandler(ratings).RegisterRatingRoutes(protected)
		NewConversationHandler(conversations).RegisterConversationRoutes(protected)
		NewNotificationHandler(notifier).RegisterNotificationRoutes(protected)
		NewFavoriteHandler(favorites).RegisterFavoriteRoutes(protected)
		NewTechnicianHandler(identity).RegisterTechnicianRoutes(protected)
		NewAdminHandler(admin, orders).RegisterAdminRoutes(protected)
		NewUploadHandler(cfg.Cloudinary).RegisterUploadRoutes(protected)
		NewWSHandler(hub).RegisterWSRoutes(protected)
	}
}
