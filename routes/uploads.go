package routes

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"bricool-server/config"
)

// UploadHandler pushes order and message photos to Cloudinary and hands the
// resulting URL back to the client.
type UploadHandler struct {
	cfg config.CloudinaryConfig
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(cfg config.CloudinaryConfig) *UploadHandler {
	return &UploadHandler{cfg: cfg}
}

// RegisterUploadRoutes registers the upload routes; all require
// authentication.
func (h *UploadHandler) RegisterUploadRoutes(router *gin.RouterGroup) {
	router.POST("/uploads/image", h.uploadImage)
}

// uploadImage accepts a multipart image and returns its hosted URL.
func (h *UploadHandler) uploadImage(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(16 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only jpg, png and webp images are supported"})
		return
	}
	if header.Size > 8<<20 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size too large. Maximum 8MB allowed"})
		return
	}

	url, err := h.uploadToCloudinary(c.Request.Context(), file, header.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *UploadHandler) uploadToCloudinary(ctx context.Context, file multipart.File, filename string) (string, error) {
	cld, err := cloudinary.NewFromURL(h.cfg.URL)
	if err != nil {
		return "", err
	}

	result, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   h.cfg.Folder,
		PublicID: fmt.Sprintf("%s_%d", strings.TrimSuffix(filename, filepath.Ext(filename)), time.Now().Unix()),
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}
