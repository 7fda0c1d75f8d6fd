package marketdata

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/rxtech-lab/argo-research/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-research/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	// Providers are tried in order until one returns a valid series.
	Providers       []provider.ProviderType `validate:"required,min=1,dive,oneof=alphavantage yahoo polygon cache"`
	AlphaVantageKey string
	PolygonAPIKey   string
	LookbackDays    int `validate:"min=0"`
	// DataPath is the archive directory. Empty disables archiving.
	DataPath string
}

// FetchResult is a validated series together with where it came from.
type FetchResult struct {
	Series   []types.MarketData
	Provider provider.ProviderType
	// ArchivePath is empty when archiving is disabled or failed.
	ArchivePath string
}

// Client fetches daily series through a provider chain and archives them as parquet.
type Client struct {
	chain    *provider.Chain
	dataPath string
	logger   *logger.Logger
	now      func() time.Time
}

// NewClient creates a new market data client with the given configuration.
func NewClient(config ClientConfig, log *logger.Logger) (*Client, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	providers := make([]provider.Provider, 0, len(config.Providers))

	for _, providerType := range config.Providers {
		opts := provider.Options{
			LookbackDays: config.LookbackDays,
			DataPath:     config.DataPath,
			Logger:       log,
		}

		switch providerType {
		case provider.ProviderAlphaVantage:
			opts.APIKey = config.AlphaVantageKey
		case provider.ProviderPolygon:
			opts.APIKey = config.PolygonAPIKey
		}

		p, err := provider.NewMarketDataProvider(providerType, opts)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidProvider, err, "failed to create %s provider", providerType)
		}

		providers = append(providers, p)
	}

	return NewClientWithProviders(config.DataPath, log, providers...)
}

// NewClientWithProviders creates a client over an explicit provider list.
func NewClientWithProviders(dataPath string, log *logger.Logger, providers ...provider.Provider) (*Client, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	chain, err := provider.NewChain(log, providers...)
	if err != nil {
		return nil, err
	}

	return &Client{
		chain:    chain,
		dataPath: dataPath,
		logger:   log,
		now:      time.Now,
	}, nil
}

// Providers returns the client's providers in priority order.
func (c *Client) Providers() []provider.Provider {
	return c.chain.Providers()
}

// Fetch returns the first valid series for symbol and archives it when a data path is set.
// An archive failure is logged and does not fail the fetch.
func (c *Client) Fetch(ctx context.Context, symbol string) (*FetchResult, error) {
	series, source, err := c.chain.FetchWithSource(ctx, symbol)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Fetched market data",
		zap.String("symbol", symbol),
		zap.String("provider", string(source)),
		zap.Int("bars", len(series)))

	result := &FetchResult{
		Series:   series,
		Provider: source,
	}

	// re-archiving a cached series would only copy the file
	if c.dataPath == "" || source == provider.ProviderCache {
		return result, nil
	}

	path, err := c.Archive(symbol, series)
	if err != nil {
		c.logger.Warn("Failed to archive market data", zap.String("symbol", symbol), zap.Error(err))

		return result, nil
	}

	result.ArchivePath = path

	return result, nil
}

// Archive writes series to DataPath/SYMBOL_YYYY-MM-DD.parquet, creating the directory if needed.
func (c *Client) Archive(symbol string, series []types.MarketData) (string, error) {
	if c.dataPath == "" {
		return "", errors.New(errors.ErrCodeMissingParameter, "data path is not configured")
	}

	if err := os.MkdirAll(c.dataPath, 0755); err != nil {
		return "", errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to create data path %s", c.dataPath)
	}

	outputPath := filepath.Join(c.dataPath, provider.ArchiveFileName(symbol, c.now()))

	return writer.WriteSeries(writer.NewDuckDBWriter(outputPath, c.logger), series)
}
