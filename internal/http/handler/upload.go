package handler

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ondrasimku/signature-builder/internal/domain"
	"github.com/ondrasimku/signature-builder/internal/photo"
)

// PhotoField is the multipart field carrying the uploaded photo.
const PhotoField = "photo"

// multipartOverhead is the slack allowed on top of the file limit for
// multipart boundaries and part headers.
const multipartOverhead = 1 << 20

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type UploadHandler struct {
	service *photo.Service
	logger  *slog.Logger
}

func NewUploadHandler(service *photo.Service, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		logger:  logger,
	}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.service.MaxSize()+multipartOverhead)

	file, err := c.FormFile(PhotoField)
	if err != nil {
		if isBodyTooLarge(err) {
			h.logger.Warn("Request body too large", "error", err)
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: h.service.TooLargeMessage(),
			})
			return
		}
		h.logger.Warn("Failed to get file from form", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: photo.MessageNoFile,
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		h.writeError(c, &photo.Error{Kind: photo.KindProcessing, Message: photo.MessageProcessing, Err: err})
		return
	}
	defer src.Close()

	artifact, err := h.service.Create(c.Request.Context(), photo.Upload{
		Filename:    file.Filename,
		ContentType: mediaType(file.Header.Get("Content-Type")),
		Size:        file.Size,
		Body:        src,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logger.Info("Photo processed", "name", artifact.Name, "original", artifact.Original, "bytes", artifact.Bytes)
	c.JSON(http.StatusOK, domain.UploadResponse{
		URL:  artifact.URL,
		Size: artifact.Size,
	})
}

func (h *UploadHandler) writeError(c *gin.Context, err error) {
	var perr *photo.Error
	if !errors.As(err, &perr) {
		perr = &photo.Error{Kind: photo.KindProcessing, Message: photo.MessageProcessing, Err: err}
	}

	switch perr.Kind {
	case photo.KindValidation:
		h.logger.Warn("Upload rejected", "kind", perr.Kind.String(), "error", perr.Err)
		resp := ErrorResponse{Error: perr.Message}
		if perr.Message == photo.MessageInvalidType {
			resp.Details = "Allowed types: image/jpeg, image/png, image/gif, image/webp"
		}
		c.JSON(http.StatusBadRequest, resp)
	case photo.KindTooLarge:
		h.logger.Warn("Upload rejected", "kind", perr.Kind.String(), "error", perr.Err)
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: perr.Message})
	default:
		h.logger.Error("Upload processing error", "error", perr.Err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: photo.MessageProcessing})
	}
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "request body too large")
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}
