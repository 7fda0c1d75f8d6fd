package types

import "github.com/moznion/go-optional"

// IndicatorRow is a price bar extended with derived indicators.
// A None value means the indicator's lookback window is not yet full.
type IndicatorRow struct {
	MarketData

	RSI   optional.Option[float64]
	DMA20 optional.Option[float64]
	DMA50 optional.Option[float64]
	MACD  optional.Option[float64]
}

// SignalRow is an indicator row with the strategy's buy flag (0 or 1).
type SignalRow struct {
	IndicatorRow

	Signal int
}

// BacktestRow is a signal row annotated with the realised next-day outcome.
type BacktestRow struct {
	SignalRow

	// NextClose and ForwardReturn are None on the final row.
	NextClose     optional.Option[float64]
	ForwardReturn optional.Option[float64]
	// StrategyReturn is ForwardReturn * Signal, 0 when ForwardReturn is None.
	StrategyReturn float64
}

// BacktestResult aggregates a signal backtest.
type BacktestResult struct {
	TotalReturn float64
	// WinRatio is Wins / Signals, 0 when no signals fired.
	WinRatio float64
	Signals  int
	Wins     int
	Rows     []BacktestRow
}
