package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"rollf/database"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	BotName      string

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Timezone all calendar arithmetic happens in
	Timezone string
	Location *time.Location

	// Daily roll window configuration (hours in the configured timezone)
	RollOpenHour   int           // bot may roll from this hour
	RollCutoffHour int           // no bot roll at or past this hour
	RollMaxDelay   time.Duration // random delay span after the window opens

	// Environment
	Environment string // "development" or "production"
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

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
				instance.DiscordToken = "test-token"
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	// A local .env is optional; real deployments pass env vars directly
	_ = godotenv.Load()

	config := &Config{
		// Discord
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		BotName:      getEnvWithDefault("BOT_NAME", "RollF"),

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// Timezone
		Timezone: getEnvWithDefault("TIMEZONE", "Europe/Stockholm"),

		// Daily roll window defaults: open 06:00, cutoff 10:00, delay < 4h
		RollOpenHour:   6,
		RollCutoffHour: 10,
		RollMaxDelay:   4 * time.Hour,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override window defaults if environment variables are set
	if hour := os.Getenv("ROLL_OPEN_HOUR"); hour != "" {
		if parsed, err := strconv.Atoi(hour); err == nil && parsed >= 0 && parsed < 24 {
			config.RollOpenHour = parsed
		}
	}
	if hour := os.Getenv("ROLL_CUTOFF_HOUR"); hour != "" {
		if parsed, err := strconv.Atoi(hour); err == nil && parsed >= 0 && parsed < 24 {
			config.RollCutoffHour = parsed
		}
	}

	loc, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", config.Timezone, err)
	}
	config.Location = loc

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.RollOpenHour >= config.RollCutoffHour {
			return nil, fmt.Errorf("ROLL_OPEN_HOUR (%d) must be before ROLL_CUTOFF_HOUR (%d)",
				config.RollOpenHour, config.RollCutoffHour)
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
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:    "test",
		BotName:        "RollF",
		Timezone:       "UTC",
		Location:       time.UTC,
		RollOpenHour:   6,
		RollCutoffHour: 10,
		RollMaxDelay:   4 * time.Hour,
	}
}
