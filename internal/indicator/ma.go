package indicator

import (
	"github.com/markcheno/go-talib"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// MA represents a simple moving average of close prices.
type MA struct {
	period int
}

// NewMA creates a new MA indicator with default configuration.
func NewMA() Indicator {
	return &MA{
		period: 20,
	}
}

// Name returns the name of the indicator.
func (m *MA) Name() types.IndicatorType {
	return types.IndicatorTypeMA
}

// Config configures the MA indicator. Expected parameters: period (int).
func (m *MA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := parsePeriod(params, 0, "period")
	if err != nil {
		return err
	}

	m.period = period

	return nil
}

// Calculate computes the rolling mean. A series shorter than the period is undefined everywhere.
func (m *MA) Calculate(closes []float64) []optional.Option[float64] {
	out := make([]optional.Option[float64], len(closes))
	if len(closes) < m.period {
		return out
	}

	sma := talib.Sma(closes, m.period)
	for i := m.period - 1; i < len(closes); i++ {
		out[i] = optional.Some(sma[i])
	}

	return out
}

// SMAValues computes a simple moving average over closes with the given period.
func SMAValues(closes []float64, period int) []optional.Option[float64] {
	return (&MA{period: period}).Calculate(closes)
}
