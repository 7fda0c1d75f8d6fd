package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/mocks"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type EngineTestSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) TestSameLengthAndOrder() {
	series := mocks.GenerateDaily("RELIANCE.NS", 120)
	rows := Compute(series)

	suite.Len(rows, len(series))

	for i, row := range rows {
		suite.Equal(series[i], row.MarketData)
	}
}

func (suite *EngineTestSuite) TestUndefinedPrefixes() {
	rows := Compute(mocks.GenerateDaily("RELIANCE.NS", 60))

	for i, row := range rows {
		suite.Equal(i >= 14, row.RSI.IsSome(), "rsi row %d", i)
		suite.Equal(i >= 19, row.DMA20.IsSome(), "dma20 row %d", i)
		suite.Equal(i >= 49, row.DMA50.IsSome(), "dma50 row %d", i)
		suite.True(row.MACD.IsSome(), "macd row %d", i)
	}
}

func (suite *EngineTestSuite) TestCrossoverSeriesValues() {
	rows := Compute(mocks.FromCloses("INFY.NS", mocks.CrossoverCloses()))
	at := mocks.CrossoverRow

	suite.InDelta(13.333333333, rows[at].RSI.Unwrap(), 1e-6)
	suite.InDelta(163.0, rows[at-1].DMA20.Unwrap(), 1e-9)
	suite.InDelta(183.2, rows[at-1].DMA50.Unwrap(), 1e-9)
	suite.InDelta(164.75, rows[at].DMA20.Unwrap(), 1e-9)
	suite.InDelta(125.9, rows[at].DMA50.Unwrap(), 1e-9)
}

func (suite *EngineTestSuite) TestShortSeries() {
	rows := Compute(mocks.GenerateDaily("INFY.NS", 10))
	suite.Len(rows, 10)

	for _, row := range rows {
		suite.True(row.RSI.IsNone())
		suite.True(row.DMA20.IsNone())
		suite.True(row.DMA50.IsNone())
		suite.True(row.MACD.IsSome())
	}

	suite.Empty(Compute(nil))
}

func (suite *EngineTestSuite) TestCustomConfig() {
	cfg := DefaultEngineConfig()
	cfg.FastMAPeriod = 5
	cfg.SlowMAPeriod = 10

	engine, err := NewEngine(NewDefaultRegistry(), cfg)
	suite.Require().NoError(err)

	rows := engine.Compute(mocks.GenerateDaily("INFY.NS", 12))
	suite.True(rows[3].DMA20.IsNone())
	suite.True(rows[4].DMA20.IsSome())
	suite.True(rows[9].DMA50.IsSome())
}

func (suite *EngineTestSuite) TestInvalidConfig() {
	cfg := DefaultEngineConfig()
	cfg.MACDFast = 30

	_, err := NewEngine(NewDefaultRegistry(), cfg)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))

	registry := NewDefaultRegistry()
	suite.Require().NoError(registry.RemoveIndicator(types.IndicatorTypeMA))

	_, err = NewEngine(registry, DefaultEngineConfig())
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}
