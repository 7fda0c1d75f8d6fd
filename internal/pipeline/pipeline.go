package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-research/internal/backtest"
	"github.com/rxtech-lab/argo-research/internal/classifier"
	"github.com/rxtech-lab/argo-research/internal/indicator"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/report"
	"github.com/rxtech-lab/argo-research/internal/sentiment"
	"github.com/rxtech-lab/argo-research/internal/strategy"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/internal/version"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/rxtech-lab/argo-research/pkg/marketdata"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// PriceSource returns a validated daily series for a symbol.
type PriceSource interface {
	Fetch(ctx context.Context, symbol string) (*marketdata.FetchResult, error)
}

// Config holds the per-run settings.
type Config struct {
	Symbols []string `validate:"min=1,dive,required"`
	// Delay is the minimum spacing between two symbols' upstream calls.
	Delay        time.Duration `validate:"gte=0"`
	RSIThreshold float64       `validate:"gt=0,lte=100"`
	// ResultsPath receives the run report. Empty disables it.
	ResultsPath string
}

// Dependencies are the collaborators of a pipeline. Sink may be nil.
type Dependencies struct {
	Prices    PriceSource
	Sentiment sentiment.Source
	Sink      report.Sink
	Logger    *logger.Logger
	// Out receives the console progress lines. Defaults to stdout.
	Out io.Writer
}

// SymbolResult is everything computed for one symbol.
type SymbolResult struct {
	Symbol     string
	Series     []types.MarketData
	Sentiment  float64
	Signals    []types.SignalRow
	Backtest   types.BacktestResult
	Classifier *types.ClassifierResult
	// ClassifierErr is set when training failed; Classifier is then nil.
	ClassifierErr error
}

// Pipeline runs the research steps for each configured symbol in order.
type Pipeline struct {
	config    Config
	prices    PriceSource
	sentiment sentiment.Source
	sink      report.Sink
	engine    *indicator.Engine
	strategy  *strategy.Crossover
	limiter   *rate.Limiter
	out       io.Writer
	logger    *logger.Logger
	now       func() time.Time
}

// New validates config and builds a pipeline.
func New(config Config, deps Dependencies) (*Pipeline, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid pipeline configuration", err)
	}

	if deps.Prices == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "price source is required")
	}

	if deps.Sentiment == nil {
		deps.Sentiment = sentiment.Neutral{}
	}

	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}

	if deps.Out == nil {
		deps.Out = os.Stdout
	}

	engine, err := indicator.NewEngine(indicator.NewDefaultRegistry(), indicator.DefaultEngineConfig())
	if err != nil {
		return nil, err
	}

	crossover, err := strategy.NewCrossover(strategy.CrossoverConfig{RSIThreshold: config.RSIThreshold})
	if err != nil {
		return nil, err
	}

	limit := rate.Inf
	if config.Delay > 0 {
		limit = rate.Every(config.Delay)
	}

	return &Pipeline{
		config:    config,
		prices:    deps.Prices,
		sentiment: deps.Sentiment,
		sink:      deps.Sink,
		engine:    engine,
		strategy:  crossover,
		limiter:   rate.NewLimiter(limit, 1),
		out:       deps.Out,
		logger:    deps.Logger,
		now:       time.Now,
	}, nil
}

// ProcessSymbol computes indicators, signals, the backtest and the classifier for one series.
func (p *Pipeline) ProcessSymbol(symbol string, series []types.MarketData, score float64) SymbolResult {
	rows := p.engine.Compute(series)
	signals := p.strategy.Apply(rows)

	result := SymbolResult{
		Symbol:    symbol,
		Series:    series,
		Sentiment: score,
		Signals:   signals,
		Backtest:  backtest.Run(signals),
	}

	result.Classifier, result.ClassifierErr = classifier.Train(rows, score)

	return result
}

// Run processes every symbol, then writes the result tables to the sink.
// A symbol whose prices cannot be fetched or fail validation is skipped. Only context cancellation
// stops the run early; the partial report is returned with the context error.
func (p *Pipeline) Run(ctx context.Context) (*types.RunReport, error) {
	runReport := &types.RunReport{
		ID:        uuid.NewString(),
		Version:   version.GetVersion(),
		Timestamp: p.now().UTC(),
	}

	p.logger.Info("Starting research run",
		zap.String("run_id", runReport.ID),
		zap.Strings("symbols", p.config.Symbols))

	var (
		snapshots []report.SnapshotRow
		summaries []report.SummaryRow
		mlResults []report.MLResultRow
	)

	for _, symbol := range p.config.Symbols {
		if err := p.limiter.Wait(ctx); err != nil {
			return runReport, errors.Wrap(errors.ErrCodeUnknown, "run cancelled", err)
		}

		fetched, err := p.prices.Fetch(ctx, symbol)
		if err == nil && (fetched == nil || len(fetched.Series) == 0) {
			err = errors.Newf(errors.ErrCodeNoDataFound, "no bars returned for %s", symbol)
		}

		if err == nil {
			err = types.ValidateSeries(fetched.Series)
		}

		if err != nil {
			p.logger.Error("Skipping symbol", zap.String("symbol", symbol), zap.Error(err))
			runReport.Skipped = append(runReport.Skipped, symbol)

			if ctx.Err() != nil {
				return runReport, errors.Wrap(errors.ErrCodeUnknown, "run cancelled", ctx.Err())
			}

			continue
		}

		score := p.sentiment.FetchSentiment(ctx, symbol)
		result := p.ProcessSymbol(symbol, fetched.Series, score)

		p.logSignals(symbol, result.Signals)
		fmt.Fprintf(p.out, "%s: Return = %.2f%%, Win Ratio = %.2f%%\n",
			symbol, result.Backtest.TotalReturn*100, result.Backtest.WinRatio*100)

		classifierError := ""
		if result.ClassifierErr != nil {
			classifierError = result.ClassifierErr.Error()
			fmt.Fprintf(p.out, "ML Error for %s: %s\n", symbol, classifierError)
		}

		if row, ok := report.NewSnapshotRow(result.Series, score); ok {
			snapshots = append(snapshots, row)
		}

		summaries = append(summaries, report.NewSummaryRow(symbol, result.Backtest, score))
		mlResults = append(mlResults, report.NewMLResultRow(symbol, result.Classifier, classifierError))
		runReport.Symbols = append(runReport.Symbols, stats(result, fetched, classifierError))
	}

	p.writeSink(ctx, snapshots, summaries, mlResults)
	p.writeReport(runReport)

	return runReport, nil
}

func (p *Pipeline) logSignals(symbol string, rows []types.SignalRow) {
	for _, signal := range p.strategy.Signals(rows) {
		p.logger.Info("Buy signal",
			zap.String("symbol", symbol),
			zap.Time("time", signal.Time),
			zap.String("reason", signal.Reason))
	}
}

func (p *Pipeline) writeSink(ctx context.Context, snapshots []report.SnapshotRow, summaries []report.SummaryRow, mlResults []report.MLResultRow) {
	if p.sink == nil {
		return
	}

	if err := p.sink.WriteLatestSnapshot(ctx, snapshots); err != nil {
		p.logger.Error("Failed to write latest snapshot", zap.Error(err))
	}

	if err := p.sink.WriteSummary(ctx, summaries); err != nil {
		p.logger.Error("Failed to write summary", zap.Error(err))
	}

	if err := p.sink.WriteMLResults(ctx, mlResults); err != nil {
		p.logger.Error("Failed to write ML results", zap.Error(err))
	}
}

func (p *Pipeline) writeReport(runReport *types.RunReport) {
	if p.config.ResultsPath == "" {
		return
	}

	if err := os.MkdirAll(p.config.ResultsPath, 0755); err != nil {
		p.logger.Error("Failed to create results directory", zap.String("path", p.config.ResultsPath), zap.Error(err))

		return
	}

	path := filepath.Join(p.config.ResultsPath, fmt.Sprintf("run_%s.yaml", runReport.ID))
	if err := types.WriteRunReport(path, *runReport); err != nil {
		p.logger.Error("Failed to write run report", zap.String("path", path), zap.Error(err))

		return
	}

	p.logger.Info("Wrote run report", zap.String("path", path))
}

func stats(result SymbolResult, fetched *marketdata.FetchResult, classifierError string) types.SymbolStats {
	latest := result.Series[len(result.Series)-1]

	return types.SymbolStats{
		Symbol:          result.Symbol,
		Provider:        string(fetched.Provider),
		Bars:            len(result.Series),
		LatestDate:      latest.Date(),
		LatestClose:     latest.Close,
		Sentiment:       result.Sentiment,
		TotalReturn:     result.Backtest.TotalReturn,
		WinRatio:        result.Backtest.WinRatio,
		Signals:         result.Backtest.Signals,
		Classifier:      result.Classifier,
		ClassifierError: classifierError,
		ArchivePath:     fetched.ArchivePath,
	}
}
