package sentiment

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultNewsAPIURL   = "https://newsapi.org"
	defaultNewsLookback = 7 * 24 * time.Hour
	defaultNewsPageSize = 10
)

// NewsConfig configures the NewsAPI client.
type NewsConfig struct {
	APIKey string
	// BaseURL overrides the public endpoint.
	BaseURL string
	// Lookback is how far back articles are searched.
	Lookback time.Duration
	PageSize int
}

// NewsSentiment averages the polarity of recent NewsAPI articles about a company.
type NewsSentiment struct {
	client *resty.Client
	config NewsConfig
	scorer Scorer
	logger *logger.Logger
	now    func() time.Time
}

type newsResponse struct {
	Status   string        `json:"status"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Articles []newsArticle `json:"articles"`
}

type newsArticle struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// NewNewsSentiment creates a source. A nil scorer uses VADER.
func NewNewsSentiment(config NewsConfig, scorer Scorer, log *logger.Logger) *NewsSentiment {
	if config.BaseURL == "" {
		config.BaseURL = defaultNewsAPIURL
	}

	if config.Lookback <= 0 {
		config.Lookback = defaultNewsLookback
	}

	if config.PageSize <= 0 {
		config.PageSize = defaultNewsPageSize
	}

	if scorer == nil {
		scorer = NewVaderScorer()
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &NewsSentiment{
		client: resty.New().
			SetBaseURL(config.BaseURL).
			SetTimeout(30*time.Second).
			SetHeader("X-Api-Key", config.APIKey),
		config: config,
		scorer: scorer,
		logger: log,
		now:    time.Now,
	}
}

// FetchSentiment implements Source. Any failure is logged and scored as 0.
func (n *NewsSentiment) FetchSentiment(ctx context.Context, symbol string) float64 {
	score, articles, err := n.Score(ctx, symbol)
	if err != nil {
		n.logger.Error("News API error", zap.String("symbol", symbol), zap.Error(err))

		return 0
	}

	n.logger.Info("Fetched sentiment",
		zap.String("symbol", symbol),
		zap.String("company", CompanyName(symbol)),
		zap.Float64("sentiment", score),
		zap.Int("articles", articles))

	return score
}

// Score returns the mean article polarity and the number of articles scored.
func (n *NewsSentiment) Score(ctx context.Context, symbol string) (float64, int, error) {
	if n.config.APIKey == "" {
		return 0, 0, errors.New(errors.ErrCodeSentimentFetchFailed, "news API key is not configured")
	}

	company := CompanyName(symbol)

	resp, err := n.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":        company + " stock",
			"from":     n.now().Add(-n.config.Lookback).Format("2006-01-02"),
			"language": "en",
			"sortBy":   "relevancy",
			"pageSize": strconv.Itoa(n.config.PageSize),
		}).
		Get("/v2/everything")
	if err != nil {
		return 0, 0, errors.Wrapf(errors.ErrCodeSentimentFetchFailed, err, "news request failed for %s", company)
	}

	var payload newsResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return 0, 0, errors.Wrapf(errors.ErrCodeSentimentFetchFailed, err, "failed to decode news response for %s (%s)", company, resp.Status())
	}

	if resp.IsError() || payload.Status == "error" {
		return 0, 0, errors.Newf(errors.ErrCodeSentimentFetchFailed, "news API returned %s: %s %s", resp.Status(), payload.Code, payload.Message)
	}

	if len(payload.Articles) == 0 {
		return 0, 0, nil
	}

	total := 0.0
	for _, article := range payload.Articles {
		total += n.scorer.Score(article.text())
	}

	return total / float64(len(payload.Articles)), len(payload.Articles), nil
}

func (a newsArticle) text() string {
	description := ""
	if a.Description != nil {
		description = *a.Description
	}

	return StripHTML(a.Title + " " + description)
}
