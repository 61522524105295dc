package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/ondrasimku/signature-builder/internal/avatar"
	"github.com/ondrasimku/signature-builder/internal/config"
	httphandler "github.com/ondrasimku/signature-builder/internal/http"
	"github.com/ondrasimku/signature-builder/internal/log"
	"github.com/ondrasimku/signature-builder/internal/photo"
	"github.com/ondrasimku/signature-builder/internal/storage"
	"github.com/ondrasimku/signature-builder/internal/storage/local"
	"github.com/ondrasimku/signature-builder/internal/storage/memory"
	"github.com/ondrasimku/signature-builder/internal/storage/objectstore"
)

func main() {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewLogger(cfg.LogLevel)
	if log.ParseLevel(cfg.LogLevel) > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := newStorage(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}

	ringColor, err := avatar.ParseHexColor(cfg.Avatar.RingColor)
	if err != nil {
		logger.Error("Invalid ring color", "error", err)
		os.Exit(1)
	}

	opts := avatar.DefaultOptions()
	opts.Size = cfg.Avatar.Size
	opts.RingWidth = cfg.Avatar.RingWidth
	opts.RingColor = ringColor

	pipeline, err := avatar.New(opts)
	if err != nil {
		logger.Error("Failed to initialize image pipeline", "error", err)
		os.Exit(1)
	}

	service := photo.NewService(store, pipeline, cfg.MaxFileSize, logger)
	router := httphandler.NewRouter(service, store, cfg, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Signature Builder running", "addr", cfg.HTTPAddr, "storage", cfg.StorageDriver, "size", cfg.Avatar.Size)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exited")
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case "memory":
		return memory.NewMemoryStorage(cfg.PublicBaseURL), nil
	case "minio":
		s, err := objectstore.NewObjectStorage(ctx, objectstore.Config{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
		}, cfg.PublicBaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		s, err := local.NewLocalStorage(cfg.StorageDir, cfg.PublicBaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
