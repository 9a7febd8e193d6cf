package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"lotto/database"
	"lotto/domain/entities"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// StartingBalance is credited to newly created accounts
	StartingBalance entities.Amount

	// DrawSchedule is the cron spec for executing due draws
	DrawSchedule string

	// Environment is "development", "production" or "test"
	Environment string
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL from base URL and name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DatabaseName:    os.Getenv("DATABASE_NAME"),
		StartingBalance: entities.NewAmountFromCents(0),
		DrawSchedule:    getEnvWithDefault("DRAW_SCHEDULE", "* * * * *"),
		Environment:     os.Getenv("ENVIRONMENT"),
	}

	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		parsed, err := entities.ParseAmount(balance)
		if err != nil {
			return nil, fmt.Errorf("invalid STARTING_BALANCE: %w", err)
		}
		config.StartingBalance = parsed
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:     "test",
		StartingBalance: entities.NewAmountFromCents(0),
		DrawSchedule:    "* * * * *",
	}
}
