package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// MACD represents the Moving Average Convergence Divergence line: EMA(fast) - EMA(slow).
type MACD struct {
	fastPeriod int
	slowPeriod int
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return &MACD{
		fastPeriod: 12,
		slowPeriod: 26,
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator. Expected parameters: fastPeriod (int), slowPeriod (int).
func (m *MACD) Config(params ...any) error {
	if len(params) != 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 2 parameters: fastPeriod (int), slowPeriod (int)")
	}

	fastPeriod, err := parsePeriod(params, 0, "fastPeriod")
	if err != nil {
		return err
	}

	slowPeriod, err := parsePeriod(params, 1, "slowPeriod")
	if err != nil {
		return err
	}

	if fastPeriod >= slowPeriod {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "fastPeriod (%d) must be less than slowPeriod (%d)", fastPeriod, slowPeriod)
	}

	m.fastPeriod = fastPeriod
	m.slowPeriod = slowPeriod

	return nil
}

// Calculate computes the MACD line for every close.
func (m *MACD) Calculate(closes []float64) []optional.Option[float64] {
	fast := exponentialMovingAverage(closes, m.fastPeriod)
	slow := exponentialMovingAverage(closes, m.slowPeriod)
	out := make([]optional.Option[float64], len(closes))

	for i := range closes {
		out[i] = optional.Some(fast[i] - slow[i])
	}

	return out
}

// MACDValues computes the MACD line over closes.
func MACDValues(closes []float64, fastPeriod, slowPeriod int) []optional.Option[float64] {
	return (&MACD{fastPeriod: fastPeriod, slowPeriod: slowPeriod}).Calculate(closes)
}
