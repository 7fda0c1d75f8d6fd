package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// RSI represents the Relative Strength Index indicator.
//
// Gains and losses are averaged with a simple rolling mean over period
// day-over-day differences, so the first defined value sits at index period.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSI) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := parsePeriod(params, 0, "period")
	if err != nil {
		return err
	}

	r.period = period

	return nil
}

// Calculate computes RSI for every close.
func (r *RSI) Calculate(closes []float64) []optional.Option[float64] {
	out := make([]optional.Option[float64], len(closes))
	if len(closes) < 2 {
		return out
	}

	gains, losses := gainsAndLosses(closes)
	avgGains := windowMean(gains, r.period)
	avgLosses := windowMean(losses, r.period)

	for j := range gains {
		if avgGains[j].IsNone() {
			continue
		}

		out[j+1] = relativeStrength(avgGains[j].Unwrap(), avgLosses[j].Unwrap())
	}

	return out
}

// gainsAndLosses splits day-over-day changes into non-negative gains and losses.
// Element j describes the move from closes[j] to closes[j+1].
func gainsAndLosses(closes []float64) ([]float64, []float64) {
	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)

	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i-1] = change
		} else if change < 0 {
			losses[i-1] = -change
		}
	}

	return gains, losses
}

// relativeStrength maps average gain/loss to RSI.
// A window with no losses saturates at 100; a window with no movement is undefined.
func relativeStrength(avgGain, avgLoss float64) optional.Option[float64] {
	if avgLoss == 0 {
		if avgGain == 0 {
			return optional.None[float64]()
		}

		return optional.Some(100.0)
	}

	rs := avgGain / avgLoss

	return optional.Some(100 - 100/(1+rs))
}

// RSIValues computes RSI over closes with the given period.
func RSIValues(closes []float64, period int) []optional.Option[float64] {
	return (&RSI{period: period}).Calculate(closes)
}
