package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// Indicator interface defines methods that any technical indicator must implement
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Calculate returns one value per close, None while the lookback window is not yet full
	Calculate(closes []float64) []optional.Option[float64]
	Config(params ...any) error
}

// parsePeriod reads a positive int period from params[index].
func parsePeriod(params []any, index int, name string) (int, error) {
	period, ok := params[index].(int)
	if !ok {
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected int", name)
	}

	if period <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, period)
	}

	return period, nil
}

// windowMean returns the mean of values[i-period+1..i] for every i with a full window.
// Each window is summed directly so an all-zero window averages to exactly zero.
func windowMean(values []float64, period int) []optional.Option[float64] {
	out := make([]optional.Option[float64], len(values))

	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		for _, v := range values[i-period+1 : i+1] {
			sum += v
		}

		out[i] = optional.Some(sum / float64(period))
	}

	return out
}
