package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type SignalTestSuite struct {
	suite.Suite
}

func TestSignalSuite(t *testing.T) {
	suite.Run(t, new(SignalTestSuite))
}

func (suite *SignalTestSuite) TestSignalTypeConstants() {
	suite.Equal(SignalType("buy_long"), SignalTypeBuyLong)
}

func (suite *SignalTestSuite) TestSignalStruct() {
	now := time.Now()
	signal := Signal{
		Time:     now,
		Type:     SignalTypeBuyLong,
		Name:     "rsi_dma_crossover",
		Reason:   "RSI oversold with DMA20 crossing above DMA50",
		RawValue: map[string]float64{"rsi": 28.5},
		Symbol:   "INFY.NS",
	}

	suite.Equal(now, signal.Time)
	suite.Equal(SignalTypeBuyLong, signal.Type)
	suite.Equal(28.5, signal.RawValue["rsi"])
}
