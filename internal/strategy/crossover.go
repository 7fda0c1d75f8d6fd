// Package strategy turns indicator rows into buy signals.
package strategy

import (
	"fmt"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// Name identifies the crossover rule in emitted signals.
const Name = "rsi_dma_crossover"

// CrossoverConfig holds the thresholds of the oversold crossover rule.
type CrossoverConfig struct {
	// RSIThreshold is the exclusive upper bound on RSI for a buy.
	RSIThreshold float64 `yaml:"rsi_threshold" validate:"gt=0,lte=100"`
}

// DefaultCrossoverConfig returns the 30 RSI threshold.
func DefaultCrossoverConfig() CrossoverConfig {
	return CrossoverConfig{
		RSIThreshold: 30,
	}
}

// Crossover fires when RSI is oversold on the same bar that DMA20 crosses above DMA50.
type Crossover struct {
	config CrossoverConfig
}

// NewCrossover creates a crossover rule.
func NewCrossover(config CrossoverConfig) (*Crossover, error) {
	if config.RSIThreshold <= 0 || config.RSIThreshold > 100 {
		return nil, errors.Newf(errors.ErrCodeInvalidThreshold, "rsi threshold must be in (0, 100], got %v", config.RSIThreshold)
	}

	return &Crossover{config: config}, nil
}

// Apply flags every row with 1 or 0. Row 0 is always 0 and any undefined operand yields 0.
func (c *Crossover) Apply(rows []types.IndicatorRow) []types.SignalRow {
	out := make([]types.SignalRow, len(rows))

	for i, row := range rows {
		out[i] = types.SignalRow{IndicatorRow: row}
		if i > 0 && c.fires(rows[i-1], row) {
			out[i].Signal = 1
		}
	}

	return out
}

func (c *Crossover) fires(prev, curr types.IndicatorRow) bool {
	rsi, ok := value(curr.RSI)
	if !ok || rsi >= c.config.RSIThreshold {
		return false
	}

	fast, okFast := value(curr.DMA20)
	slow, okSlow := value(curr.DMA50)
	prevFast, okPrevFast := value(prev.DMA20)
	prevSlow, okPrevSlow := value(prev.DMA50)

	if !okFast || !okSlow || !okPrevFast || !okPrevSlow {
		return false
	}

	return fast > slow && prevFast <= prevSlow
}

// Signals lists the bars of rows on which the rule fired.
func (c *Crossover) Signals(rows []types.SignalRow) []types.Signal {
	var signals []types.Signal

	for _, row := range rows {
		if row.Signal != 1 {
			continue
		}

		rsi := row.RSI.Unwrap()
		signals = append(signals, types.Signal{
			Time:   row.Time,
			Type:   types.SignalTypeBuyLong,
			Name:   Name,
			Reason: fmt.Sprintf("RSI oversold (value=%.2f) with DMA20 crossing above DMA50", rsi),
			RawValue: map[string]float64{
				"rsi":   rsi,
				"dma20": row.DMA20.Unwrap(),
				"dma50": row.DMA50.Unwrap(),
				"close": row.Close,
			},
			Symbol: row.Symbol,
		})
	}

	return signals
}

// Apply runs the default crossover rule over rows.
func Apply(rows []types.IndicatorRow) []types.SignalRow {
	return (&Crossover{config: DefaultCrossoverConfig()}).Apply(rows)
}

func value(v optional.Option[float64]) (float64, bool) {
	if v.IsNone() {
		return 0, false
	}

	return v.Unwrap(), true
}
