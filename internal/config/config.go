package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerAddr         string
	DatabasePath       string
	UploadDir          string
	UploadURL          string
	ImageConstraint    int
	SettingsFile       string
	PlaceholderURL     string
	WorkerPollInterval time.Duration
	JanitorInterval    time.Duration
	JobRetention       time.Duration
	WatchUploads       bool
	LogLevel           string
	LogFormat          string
	APIToken           string
	TrustedProxies     string
	RateLimitPerMinute int
}

func Load() *Config {
	return &Config{
		ServerAddr:         getEnv("SERVER_ADDR", ":8080"),
		DatabasePath:       getEnv("DATABASE_PATH", "./data/pdfimages.db"),
		UploadDir:          getEnv("UPLOAD_DIR", "./data/uploads"),
		UploadURL:          getEnv("UPLOAD_URL", "http://localhost:8080/uploads"),
		ImageConstraint:    getEnvInt("IMAGE_CONSTRAINT", 1000),
		SettingsFile:       getEnv("SETTINGS_FILE", ""),
		PlaceholderURL:     getEnv("PLACEHOLDER_URL", "/assets/images/placeholder.png"),
		WorkerPollInterval: getEnvDuration("WORKER_POLL_INTERVAL", 2*time.Second),
		JanitorInterval:    getEnvDuration("JANITOR_INTERVAL", 6*time.Hour),
		JobRetention:       getEnvDuration("JOB_RETENTION", 7*24*time.Hour),
		WatchUploads:       getEnvBool("WATCH_UPLOADS", false),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		APIToken:           getEnv("API_TOKEN", ""),
		TrustedProxies:     getEnv("TRUSTED_PROXY_CIDRS", ""),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}
