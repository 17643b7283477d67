package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults chosen to match what the browser game client expects when
// nothing is configured: the API listens on 3001 and sessions last a day.
const (
	defaultPort       = "3001"
	defaultIssuer     = "fishing-backend"
	defaultTTLMinutes = "1440"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	CORSOrigins []string
}

// Load reads configuration from the environment. DATABASE_URL and
// JWT_SECRET have no sane defaults and are required.
func Load() (Config, error) {
	cfg := Config{
		Port:        envOr("PORT", defaultPort),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:   envOr("JWT_ISSUER", defaultIssuer),
		CORSOrigins: parseCSV(envOr("CORS_ALLOWED_ORIGINS", "*")),
		JWTTTL:      ttlFromEnv(),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func ttlFromEnv() time.Duration {
	minutes, err := strconv.Atoi(envOr("JWT_TTL_MINUTES", defaultTTLMinutes))
	if err != nil || minutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(minutes) * time.Minute
}

func envOr(key, def string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return def
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
