package marketdata

import (
	"sort"

	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/rxtech-lab/argo-research/pkg/marketdata/provider"
)

// ProviderInfo contains metadata about a market data provider.
type ProviderInfo struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Description  string `json:"description"`
	RequiresAuth bool   `json:"requiresAuth"`
	// EnvKey is the environment variable holding the provider's credential, if any.
	EnvKey string `json:"envKey,omitempty"`
}

// providerRegistry holds metadata about all supported providers.
var providerRegistry = map[provider.ProviderType]ProviderInfo{
	provider.ProviderAlphaVantage: {
		Name:         string(provider.ProviderAlphaVantage),
		DisplayName:  "Alpha Vantage",
		Description:  "Full daily OHLCV history; NSE symbols are requested through their BSE listing",
		RequiresAuth: true,
		EnvKey:       "ALPHA_VANTAGE_KEY",
	},
	provider.ProviderYahoo: {
		Name:         string(provider.ProviderYahoo),
		DisplayName:  "Yahoo Finance",
		Description:  "Daily bars from the public chart API over a configurable lookback window",
		RequiresAuth: false,
	},
	provider.ProviderPolygon: {
		Name:         string(provider.ProviderPolygon),
		DisplayName:  "Polygon.io",
		Description:  "US stock market data provider with historical daily aggregates",
		RequiresAuth: true,
		EnvKey:       "POLYGON_API_KEY",
	},
	provider.ProviderCache: {
		Name:         string(provider.ProviderCache),
		DisplayName:  "Local archive",
		Description:  "Most recent parquet snapshot written by an earlier run",
		RequiresAuth: false,
	},
}

// GetSupportedProviders returns all supported provider names in sorted order.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	sort.Strings(providers)

	return providers
}

// GetProviderInfo returns metadata for a specific provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[provider.ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider: %s", providerName)
	}

	return info, nil
}
