package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-research/internal/config"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/report"
	"github.com/rxtech-lab/argo-research/mocks"
	"github.com/rxtech-lab/argo-research/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-research/pkg/marketdata/writer"
	"github.com/stretchr/testify/suite"
	"github.com/urfave/cli/v3"
)

type ResearchCmdTestSuite struct {
	suite.Suite
	tempDir string
	out     *bytes.Buffer
}

func TestResearchCmdSuite(t *testing.T) {
	suite.Run(t, new(ResearchCmdTestSuite))
}

func (suite *ResearchCmdTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.out = &bytes.Buffer{}

	suite.T().Setenv("SYMBOLS", "INFY.NS")
	suite.T().Setenv("PROVIDERS", "cache")
	suite.T().Setenv("DATA_PATH", filepath.Join(suite.tempDir, "data"))
	suite.T().Setenv("RESULTS_PATH", filepath.Join(suite.tempDir, "results"))
	suite.T().Setenv("LOG_FILE", filepath.Join(suite.tempDir, "logs", "research.log"))
	suite.T().Setenv("LOG_LEVEL", "error")
	suite.T().Setenv("FETCH_DELAY", "0s")
	suite.T().Setenv("NEWS_API_KEY", "")
	suite.T().Setenv("SHEETS_ENABLED", "false")
}

func (suite *ResearchCmdTestSuite) run(args ...string) error {
	cmd := newCommand()
	cmd.Writer = suite.out

	base := []string{"research", "--env", filepath.Join(suite.tempDir, "missing.env")}

	return cmd.Run(context.Background(), append(base, args...))
}

func (suite *ResearchCmdTestSuite) archive(symbol string) {
	dataPath := filepath.Join(suite.tempDir, "data")
	suite.Require().NoError(os.MkdirAll(dataPath, 0755))

	path := filepath.Join(dataPath, provider.ArchiveFileName(symbol, time.Now()))
	_, err := writer.WriteSeries(writer.NewDuckDBWriter(path, nil), mocks.FromCloses(symbol, mocks.CrossoverCloses()))
	suite.Require().NoError(err)
}

func (suite *ResearchCmdTestSuite) TestRunFromArchive() {
	suite.archive("INFY.NS")

	suite.Require().NoError(suite.run())

	suite.Contains(suite.out.String(), "INFY.NS: Return = -3.70%, Win Ratio = 0.00%\n")

	results := filepath.Join(suite.tempDir, "results")
	suite.FileExists(filepath.Join(results, report.SnapshotFile))
	suite.FileExists(filepath.Join(results, report.SummaryFile))
	suite.FileExists(filepath.Join(results, report.MLResultsFile))

	reports, err := filepath.Glob(filepath.Join(results, "run_*.yaml"))
	suite.Require().NoError(err)
	suite.Len(reports, 1)
}

func (suite *ResearchCmdTestSuite) TestDryRunWritesNothing() {
	suite.archive("INFY.NS")

	suite.Require().NoError(suite.run("--dry-run"))

	suite.Contains(suite.out.String(), "INFY.NS: Return = ")
	suite.NoDirExists(filepath.Join(suite.tempDir, "results"))
}

func (suite *ResearchCmdTestSuite) TestFlagsOverrideEnvironment() {
	results := filepath.Join(suite.tempDir, "flag-results")

	suite.Require().NoError(suite.run("--symbols", "TCS.NS", "--delay", "1ms", "--results", results))

	// no archive for TCS.NS, so the symbol is skipped but the tables are still written
	suite.NotContains(suite.out.String(), "TCS.NS: Return")
	suite.FileExists(filepath.Join(results, report.SummaryFile))
}

func (suite *ResearchCmdTestSuite) TestInvalidConfiguration() {
	suite.T().Setenv("PROVIDERS", "bloomberg")

	suite.Error(suite.run())
}

func (suite *ResearchCmdTestSuite) TestApplyFlags() {
	cfg := &config.Config{}
	cfg.App.Symbols = []string{"RELIANCE.NS"}
	cfg.MarketData.FetchDelay = 12 * time.Second

	cmd := newCommand()
	cmd.Action = func(_ context.Context, cmd *cli.Command) error {
		applyFlags(cmd, cfg)

		return nil
	}

	suite.Require().NoError(cmd.Run(context.Background(), []string{"research", "--symbols", "INFY.NS", "--symbols", "TCS.NS", "--delay", "2s"}))

	suite.Equal([]string{"INFY.NS", "TCS.NS"}, cfg.App.Symbols)
	suite.Equal(2*time.Second, cfg.MarketData.FetchDelay)
	suite.Empty(cfg.App.ResultsPath)
}

func (suite *ResearchCmdTestSuite) TestBuildSink() {
	cfg := &config.Config{}
	cfg.App.ResultsPath = filepath.Join(suite.tempDir, "sink")

	sink, err := buildSink(context.Background(), cfg, true, logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.Nil(sink)

	sink, err = buildSink(context.Background(), cfg, false, logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.Require().IsType(&report.MultiSink{}, sink)
	suite.Equal(1, sink.(*report.MultiSink).Len())

	cfg.App.ResultsPath = ""
	sink, err = buildSink(context.Background(), cfg, false, logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.Nil(sink)

	cfg.Sheets.Enabled = true
	_, err = buildSink(context.Background(), cfg, false, logger.NewNopLogger())
	suite.Error(err)
}

func (suite *ResearchCmdTestSuite) TestProvidersCommand() {
	suite.Require().NoError(suite.run("providers"))

	output := suite.out.String()
	suite.Contains(output, "alphavantage")
	suite.Contains(output, "ALPHA_VANTAGE_KEY")
	suite.Contains(output, "yahoo")
	suite.Contains(output, "cache")
}
