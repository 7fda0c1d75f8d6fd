package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// EMA represents the Exponential Moving Average indicator.
// The average is seeded with the first close and updated with alpha = 2/(span+1).
type EMA struct {
	span int
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() Indicator {
	return &EMA{
		span: 20,
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config configures the EMA indicator. Expected parameters: span (int).
func (e *EMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: span (int)")
	}

	span, err := parsePeriod(params, 0, "span")
	if err != nil {
		return err
	}

	e.span = span

	return nil
}

// Calculate computes the EMA, defined on every row.
func (e *EMA) Calculate(closes []float64) []optional.Option[float64] {
	values := exponentialMovingAverage(closes, e.span)
	out := make([]optional.Option[float64], len(values))

	for i, v := range values {
		out[i] = optional.Some(v)
	}

	return out
}

func exponentialMovingAverage(closes []float64, span int) []float64 {
	out := make([]float64, len(closes))
	alpha := 2.0 / float64(span+1)

	for i, c := range closes {
		if i == 0 {
			out[i] = c

			continue
		}

		out[i] = alpha*c + (1-alpha)*out[i-1]
	}

	return out
}

// EMAValues computes an EMA over closes with the given span.
func EMAValues(closes []float64, span int) []optional.Option[float64] {
	return (&EMA{span: span}).Calculate(closes)
}
