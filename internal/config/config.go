// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"paperbook/pkg/db"
)

// OddsAPIConfig holds the odds feed client configuration. An empty Key
// switches the client to its synthetic fallback events.
type OddsAPIConfig struct {
	Key      string
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort  string
	DB          db.Config
	RedisAddr   string
	OddsAPI     OddsAPIConfig
	EnforceBets bool // enforce per-user bet limits at placement
}

// LoadConfig loads configuration from environment variables, reading a
// local .env file first when present.
func LoadConfig() (*AppConfig, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	serverPort := getEnv("SERVER_PORT", "8080")

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("ODDS_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ODDS_CACHE_TTL: %w", err)
	}
	apiTimeout, err := time.ParseDuration(getEnv("ODDS_API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ODDS_API_TIMEOUT: %w", err)
	}

	enforceBets, err := strconv.ParseBool(getEnv("BET_LIMITS_ENFORCED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid BET_LIMITS_ENFORCED: %w", err)
	}

	return &AppConfig{
		ServerPort: serverPort,
		DB: db.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "paperbook"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr: getEnv("REDIS_ADDR", ""),
		OddsAPI: OddsAPIConfig{
			Key:      os.Getenv("ODDS_API_KEY"),
			BaseURL:  getEnv("ODDS_API_BASE_URL", ""),
			Timeout:  apiTimeout,
			CacheTTL: cacheTTL,
		},
		EnforceBets: enforceBets,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
