package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	HTTPAddr       string   `validate:"required"`
	LogLevel       string   `validate:"oneof=debug info warn error"`
	StorageDriver  string   `validate:"oneof=local memory minio"`
	StorageDir     string   `validate:"required_if=StorageDriver local"`
	PublicBaseURL  string   `validate:"omitempty,url"`
	MaxFileSize    int64    `validate:"gt=0"`
	AllowedOrigins []string `validate:"dive,http_url|eq=*"`
	Avatar         AvatarConfig
	Minio          MinioConfig
}

// AvatarConfig holds the fixed output geometry of processed photos.
type AvatarConfig struct {
	Size      int     `validate:"gte=16,lte=4096"`
	RingWidth float64 `validate:"gte=0"`
	RingColor string  `validate:"hexcolor"`
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

func Load() (*Config, error) {
	port := getEnv("PORT", "3000")
	if _, err := strconv.Atoi(port); err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	maxFileSize, err := strconv.ParseInt(getEnv("MAX_FILE_SIZE", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_FILE_SIZE: %w", err)
	}

	size, err := strconv.Atoi(getEnv("AVATAR_SIZE", "400"))
	if err != nil {
		return nil, fmt.Errorf("invalid AVATAR_SIZE: %w", err)
	}

	ringWidth, err := strconv.ParseFloat(getEnv("AVATAR_RING_WIDTH", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid AVATAR_RING_WIDTH: %w", err)
	}

	cfg := &Config{
		HTTPAddr:       ":" + port,
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
		StorageDir:     getEnv("STORAGE_DIR", "./images"),
		PublicBaseURL:  strings.TrimSuffix(getEnv("PUBLIC_BASE_URL", ""), "/"),
		MaxFileSize:    maxFileSize,
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		Avatar: AvatarConfig{
			Size:      size,
			RingWidth: ringWidth,
			RingColor: getEnv("AVATAR_RING_COLOR", "#39afd7"),
		},
		Minio: MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Avatar.RingWidth*2 > float64(c.Avatar.Size) {
		return fmt.Errorf("invalid config: AVATAR_RING_WIDTH %.1f does not fit AVATAR_SIZE %d", c.Avatar.RingWidth, c.Avatar.Size)
	}

	if c.StorageDriver == "minio" {
		m := c.Minio
		if m.Endpoint == "" || m.AccessKey == "" || m.SecretKey == "" || m.Bucket == "" {
			return fmt.Errorf("invalid config: minio configuration incomplete")
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
