package provider

import (
	"context"

	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
)

// Chain tries providers in order and returns the first usable series.
type Chain struct {
	providers []Provider
	logger    *logger.Logger
}

// NewChain creates a chain over providers, in priority order.
func NewChain(log *logger.Logger, providers ...Provider) (*Chain, error) {
	if len(providers) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidProvider, "at least one provider is required")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Chain{
		providers: providers,
		logger:    log,
	}, nil
}

// Name returns the provider type.
func (c *Chain) Name() ProviderType {
	return ProviderChain
}

// Providers returns the chain's members in priority order.
func (c *Chain) Providers() []Provider {
	return c.providers
}

// Fetch implements Provider.
func (c *Chain) Fetch(ctx context.Context, symbol string) ([]types.MarketData, error) {
	series, _, err := c.FetchWithSource(ctx, symbol)

	return series, err
}

// FetchWithSource returns the first sorted, valid series and the provider that served it.
// A provider error or an invalid series moves on to the next provider.
func (c *Chain) FetchWithSource(ctx context.Context, symbol string) ([]types.MarketData, ProviderType, error) {
	var errs []error

	for i, p := range c.providers {
		series, err := p.Fetch(ctx, symbol)
		if err == nil {
			series = types.NormalizeSeries(series)
			err = types.ValidateSeries(series)
		}

		if err == nil {
			return series, p.Name(), nil
		}

		errs = append(errs, err)
		c.logger.Error("Provider failed",
			zap.String("symbol", symbol),
			zap.String("provider", string(p.Name())),
			zap.Error(err))

		if ctx.Err() != nil {
			break
		}

		if i+1 < len(c.providers) {
			c.logger.Warn("Falling back to next provider",
				zap.String("symbol", symbol),
				zap.String("provider", string(c.providers[i+1].Name())))
		}
	}

	return nil, "", errors.Wrapf(errors.ErrCodeAllProvidersFailed, errors.Join(errs...), "Failed to fetch data for %s from all sources", symbol)
}
