package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mahmoud-eltahawy/cryptos-site/internal/logger"
)

// 10 MB cap per image.
const maxImageSize = 10 << 20

// uploadImage receives a multipart image and stores it in the object
// store. The response carries the public URL, which the client then
// attaches to an estate via the estates API.
func (h *Handler) uploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if file.Size > maxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
		return
	}
	defer f.Close()

	contentType := file.Header.Get("Content-Type")

	url, err := h.images.UploadImage(c.Request.Context(), f, file.Size, contentType)
	if err != nil {
		logger.Error("image upload failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"image_url": url})
}
