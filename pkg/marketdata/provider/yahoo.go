package provider

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultYahooURL     = "https://query1.finance.yahoo.com"
	defaultLookbackDays = 200
	yahooUserAgent      = "Mozilla/5.0 (compatible; argo-research)"
)

// YahooClient reads daily bars from the v8 chart API.
type YahooClient struct {
	client       *resty.Client
	lookbackDays int
	logger       *logger.Logger
	now          func() time.Time
}

type yahooChartResponse struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooChartResult struct {
	Meta struct {
		GMTOffset int64 `json:"gmtoffset"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// NewYahooClient creates a client requesting the last lookbackDays calendar days.
func NewYahooClient(lookbackDays int, baseURL string, log *logger.Logger) *YahooClient {
	if baseURL == "" {
		baseURL = defaultYahooURL
	}

	if lookbackDays <= 0 {
		lookbackDays = defaultLookbackDays
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &YahooClient{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30*time.Second).
			SetHeader("User-Agent", yahooUserAgent),
		lookbackDays: lookbackDays,
		logger:       log,
		now:          time.Now,
	}
}

// Name returns the provider type.
func (c *YahooClient) Name() ProviderType {
	return ProviderYahoo
}

// Fetch returns daily bars over the lookback window. Bars with missing quote values are skipped.
func (c *YahooClient) Fetch(ctx context.Context, symbol string) ([]types.MarketData, error) {
	end := c.now()
	start := end.AddDate(0, 0, -c.lookbackDays)

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"period1":  strconv.FormatInt(start.Unix(), 10),
			"period2":  strconv.FormatInt(end.Unix(), 10),
			"interval": "1d",
		}).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "yahoo request failed for %s", symbol)
	}

	var payload yahooChartResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "failed to decode yahoo response for %s (%s)", symbol, resp.Status())
	}

	if payload.Chart.Error != nil {
		return nil, errors.Newf(errors.ErrCodeMarketDataFetchFailed, "yahoo error for %s: %s %s", symbol, payload.Chart.Error.Code, payload.Chart.Error.Description)
	}

	if resp.IsError() {
		return nil, errors.Newf(errors.ErrCodeMarketDataFetchFailed, "yahoo returned %s for %s", resp.Status(), symbol)
	}

	var series []types.MarketData
	for _, result := range payload.Chart.Result {
		series = append(series, result.toMarketData(symbol)...)
	}

	if len(series) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "No data for %s", symbol)
	}

	series = types.NormalizeSeries(series)

	c.logger.Info("Fetched yahoo data", zap.String("symbol", symbol), zap.Int("bars", len(series)))

	return series, nil
}

func (r yahooChartResult) toMarketData(symbol string) []types.MarketData {
	if len(r.Indicators.Quote) == 0 {
		return nil
	}

	quote := r.Indicators.Quote[0]
	series := make([]types.MarketData, 0, len(r.Timestamp))

	for i, ts := range r.Timestamp {
		open, okOpen := at(quote.Open, i)
		high, okHigh := at(quote.High, i)
		low, okLow := at(quote.Low, i)
		closePrice, okClose := at(quote.Close, i)
		volume, okVolume := at(quote.Volume, i)

		if !okOpen || !okHigh || !okLow || !okClose || !okVolume {
			continue
		}

		// the exchange's local date of the session
		local := time.Unix(ts+r.Meta.GMTOffset, 0).UTC()

		series = append(series, types.MarketData{
			Symbol: symbol,
			Time:   startOfDay(local),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		})
	}

	return series
}

func at(values []*float64, i int) (float64, bool) {
	if i >= len(values) || values[i] == nil {
		return 0, false
	}

	return *values[i], true
}
