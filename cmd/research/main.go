package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/argo-research/internal/config"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/pipeline"
	"github.com/rxtech-lab/argo-research/internal/report"
	"github.com/rxtech-lab/argo-research/internal/sentiment"
	"github.com/rxtech-lab/argo-research/internal/version"
	"github.com/rxtech-lab/argo-research/pkg/marketdata"
	"github.com/rxtech-lab/argo-research/pkg/marketdata/provider"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// researchAction loads the configuration, wires the collaborators and runs the pipeline once.
func researchAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("env"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog, err := logger.NewLoggerWithConfig(logger.Config{Level: cfg.App.LogLevel, File: cfg.App.LogFile})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	defer func() { _ = appLog.Sync() }()

	dryRun := cmd.Bool("dry-run")

	prices, err := marketdata.NewClient(clientConfig(cfg), appLog)
	if err != nil {
		return fmt.Errorf("failed to create market data client: %w", err)
	}

	sink, err := buildSink(ctx, cfg, dryRun, appLog)
	if err != nil {
		return err
	}

	resultsPath := cfg.App.ResultsPath
	if dryRun {
		resultsPath = ""
	}

	research, err := pipeline.New(pipeline.Config{
		Symbols:      cfg.App.Symbols,
		Delay:        cfg.MarketData.FetchDelay,
		RSIThreshold: cfg.App.RSIThreshold,
		ResultsPath:  resultsPath,
	}, pipeline.Dependencies{
		Prices: prices,
		Sentiment: sentiment.NewNewsSentiment(sentiment.NewsConfig{
			APIKey:   cfg.News.APIKey,
			Lookback: cfg.News.Lookback,
			PageSize: cfg.News.PageSize,
		}, nil, appLog),
		Sink:   sink,
		Logger: appLog,
		Out:    cmd.Root().Writer,
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	runReport, err := research.Run(ctx)
	if err != nil {
		return err
	}

	appLog.Info("Research run completed",
		zap.String("run_id", runReport.ID),
		zap.Int("processed", len(runReport.Symbols)),
		zap.Strings("skipped", runReport.Skipped))

	return nil
}

// applyFlags overrides configuration values with explicitly set flags.
func applyFlags(cmd *cli.Command, cfg *config.Config) {
	if cmd.IsSet("symbols") {
		cfg.App.Symbols = cmd.StringSlice("symbols")
	}

	if cmd.IsSet("delay") {
		cfg.MarketData.FetchDelay = cmd.Duration("delay")
	}

	if cmd.IsSet("results") {
		cfg.App.ResultsPath = cmd.String("results")
	}
}

func clientConfig(cfg *config.Config) marketdata.ClientConfig {
	providers := make([]provider.ProviderType, len(cfg.MarketData.Providers))
	for i, name := range cfg.MarketData.Providers {
		providers[i] = provider.ProviderType(name)
	}

	return marketdata.ClientConfig{
		Providers:       providers,
		AlphaVantageKey: cfg.MarketData.AlphaVantageKey,
		PolygonAPIKey:   cfg.MarketData.PolygonAPIKey,
		LookbackDays:    cfg.MarketData.LookbackDays,
		DataPath:        cfg.MarketData.DataPath,
	}
}

// buildSink returns nil on a dry run, otherwise the results directory plus Sheets when enabled.
func buildSink(ctx context.Context, cfg *config.Config, dryRun bool, log *logger.Logger) (report.Sink, error) {
	if dryRun {
		return nil, nil
	}

	var sinks []report.Sink

	if cfg.App.ResultsPath != "" {
		fileSink, err := report.NewFileSink(cfg.App.ResultsPath, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create results sink: %w", err)
		}

		log.Info("Writing results to files", zap.String("dir", fileSink.Dir()))
		sinks = append(sinks, fileSink)
	}

	if cfg.Sheets.Enabled {
		sheetsSink, err := report.NewSheetsSink(ctx, cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets sink: %w", err)
		}

		sinks = append(sinks, sheetsSink)
	}

	if len(sinks) == 0 {
		return nil, nil
	}

	sink := report.NewMultiSink(sinks...)
	log.Debug("Result sinks configured", zap.Int("count", sink.Len()))

	return sink, nil
}

// providersAction prints the supported price providers.
func providersAction(_ context.Context, cmd *cli.Command) error {
	for _, name := range marketdata.GetSupportedProviders() {
		info, err := marketdata.GetProviderInfo(name)
		if err != nil {
			return err
		}

		auth := "no key"
		if info.RequiresAuth {
			auth = info.EnvKey
		}

		fmt.Fprintf(cmd.Root().Writer, "%-13s %-15s %-18s %s\n", info.Name, info.DisplayName, auth, info.Description)
	}

	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "research",
		Usage:   "Run indicator, backtest and classifier research over the configured symbols",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "Path to a .env file; missing files are ignored",
				Value: ".env",
			},
			&cli.StringSliceFlag{
				Name:    "symbols",
				Aliases: []string{"s"},
				Usage:   "Symbols to research (overrides SYMBOLS)",
			},
			&cli.DurationFlag{
				Name:    "delay",
				Aliases: []string{"d"},
				Usage:   "Minimum delay between symbols (overrides FETCH_DELAY)",
			},
			&cli.StringFlag{
				Name:    "results",
				Aliases: []string{"r"},
				Usage:   "Directory for result tables and the run report (overrides RESULTS_PATH)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Compute and print results without writing to any sink",
			},
		},
		Action: researchAction,
		Commands: []*cli.Command{
			{
				Name:   "providers",
				Usage:  "List supported price providers",
				Action: providersAction,
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
