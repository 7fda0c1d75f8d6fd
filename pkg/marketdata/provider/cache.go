package provider

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
)

// CacheClient serves the most recent parquet archive of a symbol.
type CacheClient struct {
	dataPath string
	logger   *logger.Logger
	sq       squirrel.StatementBuilderType
}

// NewCacheClient creates a provider reading archives from dataPath.
func NewCacheClient(dataPath string, log *logger.Logger) (*CacheClient, error) {
	if dataPath == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "dataPath is required")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &CacheClient{
		dataPath: dataPath,
		logger:   log,
		sq:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Name returns the provider type.
func (c *CacheClient) Name() ProviderType {
	return ProviderCache
}

// LatestArchive returns the newest archive file of symbol.
func (c *CacheClient) LatestArchive(symbol string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(c.dataPath, symbol+"_*.parquet"))
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeDataNotFound, err, "invalid archive pattern for %s", symbol)
	}

	if len(matches) == 0 {
		return "", errors.Newf(errors.ErrCodeDataNotFound, "no archive for %s in %s", symbol, c.dataPath)
	}

	// file names end in YYYY-MM-DD so lexical order is chronological
	sort.Strings(matches)

	return matches[len(matches)-1], nil
}

// Fetch reads the latest archive of symbol.
func (c *CacheClient) Fetch(ctx context.Context, symbol string) ([]types.MarketData, error) {
	path, err := c.LatestArchive(symbol)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to open DuckDB connection", err)
	}
	defer db.Close()

	source := fmt.Sprintf("read_parquet('%s')", strings.ReplaceAll(path, "'", "''"))

	query, args, err := c.sq.
		Select("time", "symbol", "open", "high", "low", "close", "volume").
		From(source).
		Where(squirrel.Eq{"symbol": symbol}).
		OrderBy("time ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query archive %s", path)
	}
	defer rows.Close()

	var series []types.MarketData

	for rows.Next() {
		var (
			timestamp                      time.Time
			symbolResult                   string
			open, high, low, close, volume float64
		)

		if err := rows.Scan(&timestamp, &symbolResult, &open, &high, &low, &close, &volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan row", err)
		}

		series = append(series, types.MarketData{
			Symbol: symbolResult,
			Time:   timestamp.UTC(),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate rows", err)
	}

	if len(series) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "archive %s holds no rows for %s", path, symbol)
	}

	c.logger.Info("Loaded cached data", zap.String("symbol", symbol), zap.String("path", path), zap.Int("bars", len(series)))

	return series, nil
}
