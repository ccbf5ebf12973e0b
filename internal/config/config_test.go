package config_test

import (
	"testing"
	"time"

	"github.com/GravityPDF/gravity-pdf-images/internal/config"
)

func TestLoad_WithEnvVars(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("DATABASE_PATH", "./tmp/db.sqlite")
	t.Setenv("UPLOAD_DIR", "./tmp/uploads")
	t.Setenv("UPLOAD_URL", "https://example.com/wp-content/uploads")
	t.Setenv("IMAGE_CONSTRAINT", "640")
	t.Setenv("WORKER_POLL_INTERVAL", "500ms")
	t.Setenv("WATCH_UPLOADS", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := config.Load()
	if cfg.ServerAddr != ":9999" {
		t.Fatalf("expected SERVER_ADDR :9999, got %s", cfg.ServerAddr)
	}
	if cfg.DatabasePath != "./tmp/db.sqlite" {
		t.Fatalf("expected DATABASE_PATH ./tmp/db.sqlite, got %s", cfg.DatabasePath)
	}
	if cfg.UploadDir != "./tmp/uploads" {
		t.Fatalf("expected UPLOAD_DIR ./tmp/uploads, got %s", cfg.UploadDir)
	}
	if cfg.UploadURL != "https://example.com/wp-content/uploads" {
		t.Fatalf("unexpected UPLOAD_URL %s", cfg.UploadURL)
	}
	if cfg.ImageConstraint != 640 {
		t.Fatalf("expected IMAGE_CONSTRAINT 640, got %d", cfg.ImageConstraint)
	}
	if cfg.WorkerPollInterval != 500*time.Millisecond {
		t.Fatalf("expected 500ms poll interval, got %v", cfg.WorkerPollInterval)
	}
	if !cfg.WatchUploads {
		t.Fatalf("expected WATCH_UPLOADS true")
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected LOG_LEVEL debug, got %s", cfg.LogLevel)
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SERVER_ADDR", "DATABASE_PATH", "UPLOAD_DIR", "IMAGE_CONSTRAINT", "JANITOR_INTERVAL", "JOB_RETENTION", "WATCH_UPLOADS", "API_TOKEN", "RATE_LIMIT_PER_MINUTE"} {
		t.Setenv(k, "")
	}

	cfg := config.Load()
	if cfg.ServerAddr != ":8080" {
		t.Fatalf("expected default SERVER_ADDR, got %s", cfg.ServerAddr)
	}
	if cfg.ImageConstraint != 1000 {
		t.Fatalf("expected default constraint 1000, got %d", cfg.ImageConstraint)
	}
	if cfg.JanitorInterval != 6*time.Hour {
		t.Fatalf("expected 6h janitor interval, got %v", cfg.JanitorInterval)
	}
	if cfg.JobRetention != 168*time.Hour {
		t.Fatalf("expected 168h retention, got %v", cfg.JobRetention)
	}
	if cfg.WatchUploads {
		t.Fatalf("expected uploads watcher disabled by default")
	}
	if cfg.APIToken != "" {
		t.Fatalf("expected API token to be unset by default")
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Fatalf("expected 120 requests per minute, got %d", cfg.RateLimitPerMinute)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("IMAGE_CONSTRAINT", "-5")
	t.Setenv("WORKER_POLL_INTERVAL", "soon")
	t.Setenv("WATCH_UPLOADS", "maybe")

	cfg := config.Load()
	if cfg.ImageConstraint != 1000 {
		t.Fatalf("expected fallback constraint, got %d", cfg.ImageConstraint)
	}
	if cfg.WorkerPollInterval != 2*time.Second {
		t.Fatalf("expected fallback poll interval, got %v", cfg.WorkerPollInterval)
	}
	if cfg.WatchUploads {
		t.Fatalf("expected fallback false for invalid bool")
	}
}
