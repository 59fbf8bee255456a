package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Auth
	JWTSecret    string
	JWTExpiresIn time.Duration

	// Server
	Port               string
	CORSOrigins        []string
	Env                string
	RateLimitPerMinute int

	// Goal value bounds: value must be > GoalMinValue and <= GoalMaxValue
	GoalMinValue decimal.Decimal
	GoalMaxValue decimal.Decimal
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	expiresIn, err := time.ParseDuration(getEnv("JWT_EXPIRES_IN", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}

	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
	}

	minValue, err := decimal.NewFromString(getEnv("GOAL_MIN_VALUE", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid GOAL_MIN_VALUE: %w", err)
	}

	maxValue, err := decimal.NewFromString(getEnv("GOAL_MAX_VALUE", "99999999999999"))
	if err != nil {
		return nil, fmt.Errorf("invalid GOAL_MAX_VALUE: %w", err)
	}

	cfg := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTExpiresIn:       expiresIn,
		Port:               getEnv("PORT", "5000"),
		CORSOrigins:        strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:                getEnv("ENV", "development"),
		RateLimitPerMinute: rateLimit,
		GoalMinValue:       minValue,
		GoalMaxValue:       maxValue,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if !c.GoalMaxValue.GreaterThan(c.GoalMinValue) {
		return fmt.Errorf("GOAL_MAX_VALUE must be greater than GOAL_MIN_VALUE")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
