package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bricool-server/middleware"
	"bricool-server/services"
)

// FavoriteHandler serves technician bookmarks.
type FavoriteHandler struct {
	favorites *services.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favorites *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// RegisterFavoriteRoutes registers favorite routes; all require
// authentication.
func (h *FavoriteHandler) RegisterFavoriteRoutes(router *gin.RouterGroup) {
	group := router.Group("/favorites")
	{
		group.GET("", h.list)
		group.GET("/:technicianId/check", h.check)
		group.POST("/:technicianId/toggle", h.toggle)
	}
}

func (h *FavoriteHandler) list(c *gin.Context) {
	user := middleware.CurrentUser(c)

	favorites, err := h.favorites.ListByUser(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (h *FavoriteHandler) check(c *gin.Context) {
	user := middleware.CurrentUser(c)
	technicianID, ok := parseID(c, "technicianId")
	if !ok {
		return
	}

	isFavorite, err := h.favorites.Check(user.ID, technicianID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_favorite": isFavorite})
}

func (h *FavoriteHandler) toggle(c *gin.Context) {
	user := middleware.CurrentUser(c)
	technicianID, ok := parseID(c, "technicianId")
	if !ok {
		return
	}

	isFavorite, err := h.favorites.Toggle(user.ID, technicianID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_favorite": isFavorite})
}
