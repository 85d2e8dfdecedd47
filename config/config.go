package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the process needs from its environment. It is
// loaded once in main and passed down explicitly; nothing else in the
// codebase reads environment variables.
type Config struct {
	ServerPort string

	SupabaseURL string
	SupabaseKey string

	// StorageBucket is the media-host bucket design previews and user
	// images are uploaded into.
	StorageBucket string

	JWTSecret string

	SMTP SMTPConfig
}

// SMTPConfig carries the mail transport credentials. The transport is
// optional: an empty Host disables outgoing mail entirely.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

// Load reads .env (if present) and the process environment and returns a
// validated Config. Required values have no fallback: the service refuses
// to start half-configured.
func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments where the
	// variables come from the platform.
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "5001"),
		SupabaseURL:   os.Getenv("SUPABASE_URL"),
		SupabaseKey:   os.Getenv("SUPABASE_SERVICE_KEY"),
		StorageBucket: getEnv("STORAGE_BUCKET", "design-assets"),
		JWTSecret:     os.Getenv("JWT_ACCESS_SECRET_KEY"),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
	}

	if port := os.Getenv("SMTP_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", port, err)
		}
		cfg.SMTP.Port = p
	}

	if cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.SupabaseKey == "" {
		return nil, fmt.Errorf("SUPABASE_SERVICE_KEY is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
