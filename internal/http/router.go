package http

import (
	"log/slog"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ondrasimku/signature-builder/internal/config"
	"github.com/ondrasimku/signature-builder/internal/http/handler"
	"github.com/ondrasimku/signature-builder/internal/photo"
	"github.com/ondrasimku/signature-builder/internal/storage"
)

func NewRouter(service *photo.Service, storage storage.Storage, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxFileSize
	router.Use(RequestID(), AccessLog(logger), gin.Recovery())

	if len(cfg.AllowedOrigins) > 0 {
		corsConfig := cors.Config{
			AllowOrigins:  cfg.AllowedOrigins,
			AllowMethods:  []string{"GET", "HEAD", "POST"},
			AllowHeaders:  []string{"Origin", "Content-Type", RequestIDHeader},
			ExposeHeaders: []string{"Content-Length", RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}
		if slices.Contains(cfg.AllowedOrigins, "*") {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowAllOrigins = true
		}
		router.Use(cors.New(corsConfig))
	}

	uploadHandler := handler.NewUploadHandler(service, logger)
	imageHandler := handler.NewImageHandler(storage, logger)

	router.GET("/", handler.Index)
	router.GET("/healthz", handler.Health)

	router.POST("/upload-photo", uploadHandler.Upload)

	router.GET("/images/:filename", imageHandler.GetImage)
	router.HEAD("/images/:filename", imageHandler.GetImage)

	return router
}
