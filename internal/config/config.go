package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Gemini generation
	GeminiAPIKey    string
	GeminiModel     string
	GenerateTimeout time.Duration

	// Upload limits
	MaxUploadBytes int64

	// OCR
	OCRLanguage string

	// Session state
	SessionTTL      time.Duration
	CleanupInterval time.Duration

	// Highlight sizing uses the fixed word-count table instead of
	// text-length bands when true.
	LegacyHighlightCount bool
}

func Load() Config {
	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     envOr("GEMINI_MODEL", "gemini-2.5-flash"),
		GenerateTimeout: envDuration("GENERATE_TIMEOUT", 120*time.Second),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		OCRLanguage: envOr("OCR_LANGUAGE", "eng"),

		SessionTTL:      envDuration("SESSION_TTL", 24*time.Hour),
		CleanupInterval: envDuration("CLEANUP_INTERVAL", 10*time.Minute),

		LegacyHighlightCount: envBool("LEGACY_HIGHLIGHT_COUNT", false),
	}

	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 120 * time.Second
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 10 * time.Minute
	}

	return cfg
}

func (c Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
