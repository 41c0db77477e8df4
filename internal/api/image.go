package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkfeed/backend/internal/service"
)

// 5 MB upload cap, matching the frontend's client-side limit.
const maxImageBytes = 5 << 20

type ImageHandler struct {
	imageService *service.ImageService
}

func NewImageHandler(imageService *service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// UploadImage accepts a multipart "image" field and stores it in S3,
// returning the public URL for use in recipe or profile payloads.
func (h *ImageHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	if header.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds 5MB limit"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	url, err := h.imageService.UploadImage(c.Request.Context(), data, contentType, "recipes")
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
