package writer

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DuckDBWriterTestSuite struct {
	suite.Suite
	tempDir string
}

func TestDuckDBWriterSuite(t *testing.T) {
	suite.Run(t, new(DuckDBWriterTestSuite))
}

func (suite *DuckDBWriterTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

func bars(symbol string, closes ...float64) []types.MarketData {
	out := make([]types.MarketData, len(closes))
	for i, c := range closes {
		out[i] = types.MarketData{
			Symbol: symbol,
			Time:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:   c - 1,
			High:   c + 2,
			Low:    c - 2,
			Close:  c,
			Volume: 1000 * float64(i+1),
		}
	}

	return out
}

func (suite *DuckDBWriterTestSuite) TestNewDuckDBWriter() {
	outputPath := filepath.Join(suite.tempDir, "test.parquet")
	writer := NewDuckDBWriter(outputPath, nil)

	duckWriter, ok := writer.(*DuckDBWriter)
	suite.True(ok)
	suite.Equal(outputPath, duckWriter.GetOutputPath())
	suite.NotNil(duckWriter.logger)
	suite.Nil(duckWriter.db)
	suite.Nil(duckWriter.tx)
	suite.Nil(duckWriter.stmt)
}

func (suite *DuckDBWriterTestSuite) TestInitializeAndClose() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "init.parquet"), nil)
	suite.Require().NoError(writer.Initialize())

	duckWriter := writer.(*DuckDBWriter)
	suite.NotNil(duckWriter.db)
	suite.NotNil(duckWriter.tx)
	suite.NotNil(duckWriter.stmt)

	suite.NoError(writer.Close())
	suite.Nil(duckWriter.db)
	suite.Nil(duckWriter.tx)
}

func (suite *DuckDBWriterTestSuite) TestWriteWithoutInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "no_init.parquet"), nil)

	err := writer.Write(bars("INFY.NS", 100)[0])
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataWriteFailed))

	_, err = writer.Finalize()
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataWriteFailed))
}

func (suite *DuckDBWriterTestSuite) TestWriteSeriesRoundTrip() {
	outputPath := filepath.Join(suite.tempDir, "INFY.NS_2024-05-03.parquet")
	series := bars("INFY.NS", 100, 101.5, 99.25)

	path, err := WriteSeries(NewDuckDBWriter(outputPath, nil), series)
	suite.Require().NoError(err)
	suite.Equal(outputPath, path)

	db, err := sql.Open("duckdb", ":memory:")
	suite.Require().NoError(err)
	defer db.Close()

	rows, err := db.Query("SELECT symbol, time, close, volume FROM read_parquet('" + path + "') ORDER BY time")
	suite.Require().NoError(err)
	defer rows.Close()

	i := 0
	for rows.Next() {
		var (
			symbol        string
			ts            time.Time
			close, volume float64
		)

		suite.Require().NoError(rows.Scan(&symbol, &ts, &close, &volume))
		suite.Equal("INFY.NS", symbol)
		suite.True(series[i].Time.Equal(ts))
		suite.Equal(series[i].Close, close)
		suite.Equal(series[i].Volume, volume)
		i++
	}

	suite.NoError(rows.Err())
	suite.Equal(3, i)
}

func (suite *DuckDBWriterTestSuite) TestFinalizeToMissingDirectory() {
	outputPath := filepath.Join(suite.tempDir, "missing", "out.parquet")

	_, err := WriteSeries(NewDuckDBWriter(outputPath, nil), bars("TCS.NS", 10))
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataWriteFailed))
}
