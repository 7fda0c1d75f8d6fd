package indicator

import (
	"github.com/rxtech-lab/argo-research/internal/types"
)

// EngineConfig holds the lookback of every column the engine derives.
type EngineConfig struct {
	RSIPeriod    int
	FastMAPeriod int
	SlowMAPeriod int
	MACDFast     int
	MACDSlow     int
}

// DefaultEngineConfig returns RSI(14), DMA20, DMA50 and MACD(12,26).
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		RSIPeriod:    14,
		FastMAPeriod: 20,
		SlowMAPeriod: 50,
		MACDFast:     12,
		MACDSlow:     26,
	}
}

// Engine derives the indicator columns of a price series.
type Engine struct {
	rsi    Indicator
	fastMA Indicator
	slowMA Indicator
	macd   Indicator
}

// NewEngine builds an engine from registry indicators configured by cfg.
func NewEngine(registry IndicatorRegistry, cfg EngineConfig) (*Engine, error) {
	rsi, err := registry.GetIndicator(types.IndicatorTypeRSI, cfg.RSIPeriod)
	if err != nil {
		return nil, err
	}

	fastMA, err := registry.GetIndicator(types.IndicatorTypeMA, cfg.FastMAPeriod)
	if err != nil {
		return nil, err
	}

	slowMA, err := registry.GetIndicator(types.IndicatorTypeMA, cfg.SlowMAPeriod)
	if err != nil {
		return nil, err
	}

	macd, err := registry.GetIndicator(types.IndicatorTypeMACD, cfg.MACDFast, cfg.MACDSlow)
	if err != nil {
		return nil, err
	}

	return &Engine{
		rsi:    rsi,
		fastMA: fastMA,
		slowMA: slowMA,
		macd:   macd,
	}, nil
}

// Compute returns one IndicatorRow per bar, same length and order as series.
func (e *Engine) Compute(series []types.MarketData) []types.IndicatorRow {
	closes := types.Closes(series)
	rsi := e.rsi.Calculate(closes)
	fast := e.fastMA.Calculate(closes)
	slow := e.slowMA.Calculate(closes)
	macd := e.macd.Calculate(closes)

	rows := make([]types.IndicatorRow, len(series))
	for i, bar := range series {
		rows[i] = types.IndicatorRow{
			MarketData: bar,
			RSI:        rsi[i],
			DMA20:      fast[i],
			DMA50:      slow[i],
			MACD:       macd[i],
		}
	}

	return rows
}

// Compute derives RSI(14), DMA20, DMA50 and MACD(12,26) for series.
func Compute(series []types.MarketData) []types.IndicatorRow {
	engine, err := NewEngine(NewDefaultRegistry(), DefaultEngineConfig())
	if err != nil {
		// the default configuration is always valid
		panic(err)
	}

	return engine.Compute(series)
}
