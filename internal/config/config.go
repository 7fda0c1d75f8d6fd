// Package config loads run settings from the environment and an optional .env file.
package config

import (
	"os"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

type Config struct {
	App        AppConfig
	MarketData MarketDataConfig
	News       NewsConfig
	Sheets     SheetsConfig
}

type AppConfig struct {
	Symbols      []string `envconfig:"SYMBOLS" default:"RELIANCE.NS,HDFCBANK.NS,INFY.NS" validate:"min=1,dive,required"`
	ResultsPath  string   `envconfig:"RESULTS_PATH" default:"results"`
	RSIThreshold float64  `envconfig:"RSI_THRESHOLD" default:"30" validate:"gt=0,lte=100"`
	LogLevel     string   `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFile      string   `envconfig:"LOG_FILE" default:"logs/research.log"`
}

type MarketDataConfig struct {
	// AlphaVantageKey may be empty; the provider then fails and the next one is tried.
	AlphaVantageKey string `envconfig:"ALPHA_VANTAGE_KEY"`
	PolygonAPIKey   string `envconfig:"POLYGON_API_KEY"`
	// Providers are tried in order for every symbol.
	Providers    []string      `envconfig:"PROVIDERS" default:"alphavantage,yahoo" validate:"min=1,dive,oneof=alphavantage yahoo polygon cache"`
	FetchDelay   time.Duration `envconfig:"FETCH_DELAY" default:"12s" validate:"gte=0"`
	LookbackDays int           `envconfig:"LOOKBACK_DAYS" default:"200" validate:"gt=0"`
	// DataPath is the parquet archive directory. Empty disables archiving.
	DataPath string `envconfig:"DATA_PATH"`
}

type NewsConfig struct {
	// APIKey empty means every symbol scores a neutral 0.
	APIKey   string        `envconfig:"NEWS_API_KEY"`
	Lookback time.Duration `envconfig:"NEWS_LOOKBACK" default:"168h" validate:"gt=0"`
	PageSize int           `envconfig:"NEWS_PAGE_SIZE" default:"10" validate:"min=1,max=100"`
}

type SheetsConfig struct {
	Enabled         bool   `envconfig:"SHEETS_ENABLED" default:"false"`
	CredentialsFile string `envconfig:"GOOGLE_CREDENTIALS_FILE" default:"credentials.json" validate:"required_if=Enabled true"`
	SpreadsheetID   string `envconfig:"SPREADSHEET_ID" validate:"required_if=Enabled true"`
}

// Load reads the given .env files (default ".env"; missing files are ignored),
// fills Config from the environment and validates it.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}

		if err := godotenv.Load(file); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read %s", file)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to process env config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field constraints and that every enabled provider has what it needs.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	if slices.Contains(c.MarketData.Providers, "polygon") && c.MarketData.PolygonAPIKey == "" {
		return errors.New(errors.ErrCodeMissingParameter, "POLYGON_API_KEY is required when the polygon provider is enabled")
	}

	if slices.Contains(c.MarketData.Providers, "cache") && c.MarketData.DataPath == "" {
		return errors.New(errors.ErrCodeMissingParameter, "DATA_PATH is required when the cache provider is enabled")
	}

	return nil
}
