package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Fixed configuration: the base resource and table identifiers, the active
// window, and the loser consolation fraction are build-time constants, not
// environment knobs.
const (
	BaseID = "appX9qJmw0d4EkTNr"

	TablePlayers        = "Players"
	TableSinglesMatches = "Singles Matches"
	TableTeams          = "Teams"
	TableDoublesMatches = "Doubles Matches"
	TableMatchTypes     = "Match Types"

	WindowMonths  = 6
	LoserFraction = 0.10
)

// Tables lists the five fetched tables in their canonical order.
var Tables = []string{
	TablePlayers,
	TableSinglesMatches,
	TableTeams,
	TableDoublesMatches,
	TableMatchTypes,
}

// Config holds all application configuration
type Config struct {
	// Tabular data service
	AirtableAPIKey  string        `envconfig:"AIRTABLE_API_KEY" required:"true"`
	AirtableBaseURL string        `envconfig:"AIRTABLE_BASE_URL" default:"https://api.airtable.com/v0"`
	AirtableTimeout time.Duration `envconfig:"AIRTABLE_TIMEOUT" default:"30s"`

	// Output
	OutputPath string `envconfig:"OUTPUT_PATH" default:"data/standings.json"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Scheduler (resident mode; the default deployment is a one-shot run
	// triggered by external CI)
	EnableScheduler bool   `envconfig:"ENABLE_SCHEDULER" default:"false"`
	RefreshCron     string `envconfig:"REFRESH_CRON" default:"0 6 * * *"`

	// Monitoring
	MetricsPort int `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if in development mode
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.AirtableAPIKey == "" {
		return fmt.Errorf("AIRTABLE_API_KEY is required")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("OUTPUT_PATH must not be empty")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// MustLoad loads configuration or panics on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
