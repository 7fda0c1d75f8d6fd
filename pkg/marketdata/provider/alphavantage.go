package provider

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
)

const defaultAlphaVantageURL = "https://www.alphavantage.co"

// AlphaVantageClient fetches TIME_SERIES_DAILY with the full output size.
type AlphaVantageClient struct {
	client *resty.Client
	apiKey string
	logger *logger.Logger
}

type alphaVantageResponse struct {
	TimeSeries   map[string]alphaVantageBar `json:"Time Series (Daily)"`
	Note         string                     `json:"Note"`
	Information  string                     `json:"Information"`
	ErrorMessage string                     `json:"Error Message"`
}

type alphaVantageBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// NewAlphaVantageClient creates a client. An empty baseURL uses the public endpoint.
func NewAlphaVantageClient(apiKey, baseURL string, log *logger.Logger) *AlphaVantageClient {
	if baseURL == "" {
		baseURL = defaultAlphaVantageURL
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &AlphaVantageClient{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(30 * time.Second),
		apiKey: apiKey,
		logger: log,
	}
}

// Name returns the provider type.
func (c *AlphaVantageClient) Name() ProviderType {
	return ProviderAlphaVantage
}

// AlphaVantageSymbol maps an NSE symbol to the BSE listing Alpha Vantage serves.
func AlphaVantageSymbol(symbol string) string {
	return strings.ReplaceAll(symbol, ".NS", ".BSE")
}

// Fetch returns the full daily history of symbol, oldest first.
func (c *AlphaVantageClient) Fetch(ctx context.Context, symbol string) ([]types.MarketData, error) {
	avSymbol := AlphaVantageSymbol(symbol)

	if c.apiKey == "" {
		return nil, errors.Newf(errors.ErrCodeMarketDataFetchFailed, "alpha vantage API key is not configured (%s)", avSymbol)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function":   "TIME_SERIES_DAILY",
			"symbol":     avSymbol,
			"apikey":     c.apiKey,
			"outputsize": "full",
		}).
		Get("/query")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "alpha vantage request failed for %s", avSymbol)
	}

	if resp.IsError() {
		return nil, errors.Newf(errors.ErrCodeMarketDataFetchFailed, "alpha vantage returned %s for %s", resp.Status(), avSymbol)
	}

	var payload alphaVantageResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "failed to decode alpha vantage response for %s", avSymbol)
	}

	if payload.TimeSeries == nil {
		reason := firstNonEmpty(payload.ErrorMessage, payload.Note, payload.Information, "missing Time Series (Daily)")

		return nil, errors.Newf(errors.ErrCodeMarketDataFetchFailed, "No data for %s: %s", avSymbol, reason)
	}

	series := make([]types.MarketData, 0, len(payload.TimeSeries))

	for date, bar := range payload.TimeSeries {
		data, err := bar.toMarketData(symbol, date)
		if err != nil {
			return nil, err
		}

		series = append(series, data)
	}

	series = types.NormalizeSeries(series)

	c.logger.Info("Fetched Alpha Vantage data",
		zap.String("symbol", symbol),
		zap.String("av_symbol", avSymbol),
		zap.Int("bars", len(series)))

	return series, nil
}

func (b alphaVantageBar) toMarketData(symbol, date string) (types.MarketData, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return types.MarketData{}, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid date %q", date)
	}

	values := make([]float64, 5)
	for i, raw := range []string{b.Open, b.High, b.Low, b.Close, b.Volume} {
		values[i], err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return types.MarketData{}, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid value %q on %s", raw, date)
		}
	}

	return types.MarketData{
		Symbol: symbol,
		Time:   day,
		Open:   values[0],
		High:   values[1],
		Low:    values[2],
		Close:  values[3],
		Volume: values[4],
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
