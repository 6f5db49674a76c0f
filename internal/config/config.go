package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultJWTTTL          = "24h"
	defaultStatusTTL       = "24h"
	defaultSweepBatchSize  = "500"
	defaultFeedRefresh     = "30s"
	defaultListenAddr      = ":8080"
	defaultMediaAPIBaseURL = "https://api.media.example.com/v1"
)

// Config holds everything the binaries read from the environment.
// cmd mains call godotenv.Load() before Load so a local .env works.
type Config struct {
	ListenAddr  string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	// Media CDN admin credentials, used only for delete calls.
	MediaCloudName  string
	MediaAPIKey     string
	MediaAPISecret  string
	MediaAPIBaseURL string

	StatusTTL           time.Duration
	SweepBatchSize      int
	FeedRefreshInterval time.Duration

	// User ID of the built-in helper bot; 0 disables bot replies.
	BotUserID int64
}

func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	cfg.JWTSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)

	cfg.MediaCloudName = strings.TrimSpace(os.Getenv("MEDIA_CLOUD_NAME"))
	cfg.MediaAPIKey = strings.TrimSpace(os.Getenv("MEDIA_API_KEY"))
	cfg.MediaAPISecret = strings.TrimSpace(os.Getenv("MEDIA_API_SECRET"))
	cfg.MediaAPIBaseURL = getEnv("MEDIA_API_BASE_URL", defaultMediaAPIBaseURL)

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.StatusTTL, err = parseDurationEnv("STATUS_TTL", defaultStatusTTL); err != nil {
		return nil, err
	}
	if cfg.FeedRefreshInterval, err = parseDurationEnv("FEED_REFRESH_INTERVAL", defaultFeedRefresh); err != nil {
		return nil, err
	}

	batch := getEnv("SWEEP_BATCH_SIZE", defaultSweepBatchSize)
	cfg.SweepBatchSize, err = strconv.Atoi(batch)
	if err != nil || cfg.SweepBatchSize <= 0 {
		return nil, fmt.Errorf("SWEEP_BATCH_SIZE must be a positive integer, got %q", batch)
	}

	if raw := strings.TrimSpace(os.Getenv("BOT_USER_ID")); raw != "" {
		cfg.BotUserID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("BOT_USER_ID must be an integer, got %q", raw)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}
