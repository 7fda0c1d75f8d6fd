package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

// missingEnvFile keeps Load from picking up a .env in the package directory.
func (suite *ConfigTestSuite) missingEnvFile() string {
	return filepath.Join(suite.T().TempDir(), "absent.env")
}

func (suite *ConfigTestSuite) TestDefaults() {
	cfg, err := Load(suite.missingEnvFile())
	suite.Require().NoError(err)

	suite.Equal([]string{"RELIANCE.NS", "HDFCBANK.NS", "INFY.NS"}, cfg.App.Symbols)
	suite.Equal([]string{"alphavantage", "yahoo"}, cfg.MarketData.Providers)
	suite.Equal(12*time.Second, cfg.MarketData.FetchDelay)
	suite.Equal(200, cfg.MarketData.LookbackDays)
	suite.Equal(30.0, cfg.App.RSIThreshold)
	suite.Equal(7*24*time.Hour, cfg.News.Lookback)
	suite.Equal(10, cfg.News.PageSize)
	suite.False(cfg.Sheets.Enabled)
	suite.Equal("credentials.json", cfg.Sheets.CredentialsFile)
}

func (suite *ConfigTestSuite) TestEnvironmentOverrides() {
	suite.T().Setenv("SYMBOLS", "TCS.NS,WIPRO.NS")
	suite.T().Setenv("PROVIDERS", "yahoo")
	suite.T().Setenv("FETCH_DELAY", "0s")
	suite.T().Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(suite.missingEnvFile())
	suite.Require().NoError(err)

	suite.Equal([]string{"TCS.NS", "WIPRO.NS"}, cfg.App.Symbols)
	suite.Equal([]string{"yahoo"}, cfg.MarketData.Providers)
	suite.Equal(time.Duration(0), cfg.MarketData.FetchDelay)
	suite.Equal("debug", cfg.App.LogLevel)
}

func (suite *ConfigTestSuite) TestDotEnvFile() {
	path := filepath.Join(suite.T().TempDir(), ".env")
	suite.Require().NoError(os.WriteFile(path, []byte("NEWS_API_KEY=from-file\nLOOKBACK_DAYS=90\n"), 0600))

	// godotenv does not override variables already present
	suite.T().Setenv("LOOKBACK_DAYS", "120")
	suite.T().Setenv("NEWS_API_KEY", "")
	suite.Require().NoError(os.Unsetenv("NEWS_API_KEY"))

	cfg, err := Load(path)
	suite.Require().NoError(err)
	suite.Equal("from-file", cfg.News.APIKey)
	suite.Equal(120, cfg.MarketData.LookbackDays)
}

func (suite *ConfigTestSuite) TestSheetsRequireSpreadsheetID() {
	suite.T().Setenv("SHEETS_ENABLED", "true")

	_, err := Load(suite.missingEnvFile())
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))

	suite.T().Setenv("SPREADSHEET_ID", "1AbC")

	cfg, err := Load(suite.missingEnvFile())
	suite.Require().NoError(err)
	suite.Equal("1AbC", cfg.Sheets.SpreadsheetID)
}

func (suite *ConfigTestSuite) TestUnknownProvider() {
	suite.T().Setenv("PROVIDERS", "yahoo,bloomberg")

	_, err := Load(suite.missingEnvFile())
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestProviderCredentials() {
	suite.T().Setenv("PROVIDERS", "polygon")

	_, err := Load(suite.missingEnvFile())
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))

	suite.T().Setenv("POLYGON_API_KEY", "key")
	_, err = Load(suite.missingEnvFile())
	suite.NoError(err)

	suite.T().Setenv("PROVIDERS", "cache,yahoo")
	_, err = Load(suite.missingEnvFile())
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))
}

func (suite *ConfigTestSuite) TestInvalidValues() {
	suite.T().Setenv("LOOKBACK_DAYS", "0")

	_, err := Load(suite.missingEnvFile())
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))

	suite.T().Setenv("LOOKBACK_DAYS", "many")
	_, err = Load(suite.missingEnvFile())
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}
