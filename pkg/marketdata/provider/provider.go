package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderAlphaVantage ProviderType = "alphavantage"
	ProviderYahoo        ProviderType = "yahoo"
	ProviderPolygon      ProviderType = "polygon"
	ProviderCache        ProviderType = "cache"
	ProviderChain        ProviderType = "chain"
)

// Provider fetches the daily price history of one symbol.
type Provider interface {
	// Name returns the provider type.
	Name() ProviderType
	// Fetch returns daily bars for symbol. The context can be used to cancel the request.
	// example:
	// Fetch(ctx, "INFY.NS")
	Fetch(ctx context.Context, symbol string) ([]types.MarketData, error)
}

// Options carries the settings a provider may need.
type Options struct {
	// APIKey authenticates against the upstream API.
	APIKey string
	// LookbackDays bounds the history requested from windowed APIs.
	LookbackDays int
	// DataPath is the archive directory read by the cache provider.
	DataPath string
	// BaseURL overrides the upstream endpoint.
	BaseURL string
	Logger  *logger.Logger
}

// NewMarketDataProvider creates a new market data provider based on the provider type.
func NewMarketDataProvider(providerType ProviderType, opts Options) (Provider, error) {
	if opts.Logger == nil {
		opts.Logger = logger.NewNopLogger()
	}

	switch providerType {
	case ProviderAlphaVantage:
		return NewAlphaVantageClient(opts.APIKey, opts.BaseURL, opts.Logger), nil
	case ProviderYahoo:
		return NewYahooClient(opts.LookbackDays, opts.BaseURL, opts.Logger), nil
	case ProviderPolygon:
		return NewPolygonClient(opts.APIKey, opts.LookbackDays)
	case ProviderCache:
		return NewCacheClient(opts.DataPath, opts.Logger)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}

// ArchiveFileName names the parquet snapshot of symbol taken on asOf.
func ArchiveFileName(symbol string, asOf time.Time) string {
	return fmt.Sprintf("%s_%s.parquet", symbol, asOf.Format("2006-01-02"))
}

// startOfDay truncates t to midnight UTC of its calendar date.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
