package provider

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// PolygonAggsIterator is the subset of the polygon aggregate iterator the client consumes.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient abstracts the polygon REST client for testing.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
}

type polygonRESTClient struct {
	client *polygon.Client
}

func (p *polygonRESTClient) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return p.client.ListAggs(ctx, params, options...)
}

// PolygonClient fetches daily aggregates over the lookback window.
type PolygonClient struct {
	apiClient    PolygonAPIClient
	lookbackDays int
	now          func() time.Time
}

// NewPolygonClient creates a client backed by the polygon REST API.
func NewPolygonClient(apiKey string, lookbackDays int) (Provider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "apiKey is required")
	}

	return NewPolygonClientWithAPI(&polygonRESTClient{client: polygon.New(apiKey)}, lookbackDays), nil
}

// NewPolygonClientWithAPI creates a client over an existing API implementation.
func NewPolygonClientWithAPI(api PolygonAPIClient, lookbackDays int) *PolygonClient {
	if lookbackDays <= 0 {
		lookbackDays = defaultLookbackDays
	}

	return &PolygonClient{
		apiClient:    api,
		lookbackDays: lookbackDays,
		now:          time.Now,
	}
}

// Name returns the provider type.
func (c *PolygonClient) Name() ProviderType {
	return ProviderPolygon
}

// Fetch returns one bar per day in the lookback window.
func (c *PolygonClient) Fetch(ctx context.Context, symbol string) ([]types.MarketData, error) {
	end := c.now()
	start := end.AddDate(0, 0, -c.lookbackDays)

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithLimit(50000)

	iter := c.apiClient.ListAggs(ctx, params)

	var series []types.MarketData

	for iter.Next() {
		agg := iter.Item()
		series = append(series, types.MarketData{
			Symbol: symbol,
			Time:   startOfDay(time.Time(agg.Timestamp).UTC()),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}

	if iter.Err() != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, iter.Err(), "error iterating polygon aggregates for %s", symbol)
	}

	if len(series) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "No data for %s", symbol)
	}

	return types.NormalizeSeries(series), nil
}
