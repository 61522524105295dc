package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "STORAGE_DRIVER", "STORAGE_DIR", "PUBLIC_BASE_URL", "MAX_FILE_SIZE", "CORS_ALLOWED_ORIGINS", "AVATAR_SIZE", "AVATAR_RING_WIDTH", "AVATAR_RING_COLOR"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":3000" {
		t.Errorf("HTTPAddr = %q, want :3000", cfg.HTTPAddr)
	}
	if cfg.StorageDriver != "local" || cfg.StorageDir != "./images" {
		t.Errorf("storage = %s %s", cfg.StorageDriver, cfg.StorageDir)
	}
	if cfg.MaxFileSize != 10*1024*1024 {
		t.Errorf("MaxFileSize = %d", cfg.MaxFileSize)
	}
	if cfg.Avatar.Size != 400 || cfg.Avatar.RingWidth != 8 || cfg.Avatar.RingColor != "#39afd7" {
		t.Errorf("Avatar = %+v", cfg.Avatar)
	}
	if cfg.PublicBaseURL != "" || len(cfg.AllowedOrigins) != 0 {
		t.Errorf("PublicBaseURL = %q, AllowedOrigins = %v", cfg.PublicBaseURL, cfg.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("PUBLIC_BASE_URL", "https://sig.example.com/")
	t.Setenv("MAX_FILE_SIZE", "2048")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")
	t.Setenv("AVATAR_SIZE", "256")
	t.Setenv("AVATAR_RING_WIDTH", "4.5")
	t.Setenv("AVATAR_RING_COLOR", "#ff0000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":8081" || cfg.LogLevel != "debug" || cfg.StorageDriver != "memory" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.PublicBaseURL != "https://sig.example.com" {
		t.Errorf("PublicBaseURL = %q", cfg.PublicBaseURL)
	}
	if cfg.MaxFileSize != 2048 {
		t.Errorf("MaxFileSize = %d", cfg.MaxFileSize)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.Avatar.Size != 256 || cfg.Avatar.RingWidth != 4.5 || cfg.Avatar.RingColor != "#ff0000" {
		t.Errorf("Avatar = %+v", cfg.Avatar)
	}
}

func TestLoadAllowAllOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "*")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"port", map[string]string{"PORT": "http"}, "PORT"},
		{"max size", map[string]string{"MAX_FILE_SIZE": "ten"}, "MAX_FILE_SIZE"},
		{"negative max size", map[string]string{"MAX_FILE_SIZE": "-1"}, "MaxFileSize"},
		{"driver", map[string]string{"STORAGE_DRIVER": "ftp"}, "StorageDriver"},
		{"color", map[string]string{"AVATAR_RING_COLOR": "blue"}, "RingColor"},
		{"ring too wide", map[string]string{"AVATAR_SIZE": "100", "AVATAR_RING_WIDTH": "60"}, "AVATAR_RING_WIDTH"},
		{"origin", map[string]string{"CORS_ALLOWED_ORIGINS": "not a url"}, "AllowedOrigins"},
		{"minio incomplete", map[string]string{"STORAGE_DRIVER": "minio", "MINIO_ENDPOINT": "minio:9000"}, "minio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
