package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/ondrasimku/signature-builder/internal/storage"
)

type ImageHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewImageHandler(storage storage.Storage, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{
		storage: storage,
		logger:  logger,
	}
}

// GetImage serves a stored artifact. Range and conditional requests are
// handled by http.ServeContent.
func (h *ImageHandler) GetImage(c *gin.Context) {
	name := c.Param("filename")

	file, info, err := h.storage.Open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "File not found"})
			return
		}
		h.logger.Error("Failed to open image", "name", name, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read file"})
		return
	}
	defer file.Close()

	contentType := info.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		mt, err := mimetype.DetectReader(file)
		if err == nil {
			contentType = mt.String()
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			h.logger.Error("Failed to rewind image", "name", name, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read file"})
			return
		}
	}

	c.Header("Content-Type", contentType)
	http.ServeContent(c.Writer, c.Request, info.Name, info.ModTime, file)
}
