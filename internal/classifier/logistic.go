package classifier

import (
	"math"

	"github.com/rxtech-lab/argo-research/pkg/errors"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// FitConfig controls the logistic regression fit.
type FitConfig struct {
	// C is the inverse L2 regularisation strength. The intercept is not penalised.
	C float64
	// MaxIterations bounds the L-BFGS major iterations.
	MaxIterations int
}

// DefaultFitConfig returns C = 1 with at most 1000 iterations.
func DefaultFitConfig() FitConfig {
	return FitConfig{
		C:             1.0,
		MaxIterations: 1000,
	}
}

// Model is a fitted logistic regression over standardised features.
type Model struct {
	Mean      []float64
	Scale     []float64
	Weights   []float64
	Intercept float64
}

// Fit trains a binary logistic regression with the default configuration.
func Fit(train FeatureTable) (*Model, error) {
	return FitWithConfig(train, DefaultFitConfig())
}

// FitWithConfig trains a binary logistic regression on train.
func FitWithConfig(train FeatureTable, config FitConfig) (*Model, error) {
	if len(train) == 0 {
		return nil, errors.New(errors.ErrCodeInsufficientData, "cannot fit on an empty training set")
	}

	if config.C <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "C must be positive, got %v", config.C)
	}

	positives := 0
	for _, row := range train {
		positives += row.Target
	}

	if positives == 0 || positives == len(train) {
		return nil, errors.Newf(errors.ErrCodeSingleClass, "training data contains a single class (%d of %d positive)", positives, len(train))
	}

	mean, scale := standardisation(train)
	x := make([][]float64, len(train))
	y := make([]float64, len(train))

	for i, row := range train {
		x[i] = standardise(row.Vector(), mean, scale)
		y[i] = float64(row.Target)
	}

	dim := len(FeatureNames)
	problem := lossProblem(x, y, 1/config.C)
	settings := &optimize.Settings{
		MajorIterations:   config.MaxIterations,
		GradientThreshold: 1e-6,
	}

	// a line-search stall still returns the best location found, which is kept
	result, err := optimize.Minimize(problem, make([]float64, dim+1), settings, &optimize.LBFGS{})
	if result == nil || !finite(result.X) {
		return nil, errors.Wrap(errors.ErrCodeClassifierFitFailed, "logistic regression did not produce a solution", err)
	}

	return &Model{
		Mean:      mean,
		Scale:     scale,
		Weights:   append([]float64(nil), result.X[:dim]...),
		Intercept: result.X[dim],
	}, nil
}

// Probability returns P(target = 1) for row.
func (m *Model) Probability(row FeatureRow) float64 {
	return sigmoid(m.decision(row))
}

// Predict returns 1 when the positive class is more likely than not.
func (m *Model) Predict(row FeatureRow) int {
	if m.Probability(row) > 0.5 {
		return 1
	}

	return 0
}

func (m *Model) decision(row FeatureRow) float64 {
	return dot(m.Weights, standardise(row.Vector(), m.Mean, m.Scale)) + m.Intercept
}

// standardisation returns per-column mean and scale. A constant column gets scale 1
// and its own value as mean so it standardises to exactly 0.
func standardisation(table FeatureTable) ([]float64, []float64) {
	dim := len(FeatureNames)
	mean := make([]float64, dim)
	scale := make([]float64, dim)
	column := make([]float64, len(table))

	vectors := make([][]float64, len(table))
	for i, row := range table {
		vectors[i] = row.Vector()
	}

	for j := 0; j < dim; j++ {
		constant := true
		for i, v := range vectors {
			column[i] = v[j]
			if column[i] != column[0] {
				constant = false
			}
		}

		if constant {
			mean[j], scale[j] = column[0], 1

			continue
		}

		m, std := stat.MeanStdDev(column, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}

		mean[j], scale[j] = m, std
	}

	return mean, scale
}

func standardise(v, mean, scale []float64) []float64 {
	out := make([]float64, len(v))
	for j := range v {
		out[j] = (v[j] - mean[j]) / scale[j]
	}

	return out
}

// lossProblem is the L2-penalised negative log-likelihood. The last parameter is the intercept.
func lossProblem(x [][]float64, y []float64, l2 float64) optimize.Problem {
	return optimize.Problem{
		Func: func(p []float64) float64 {
			dim := len(p) - 1
			loss := 0.0

			for i := range x {
				z := dot(p[:dim], x[i]) + p[dim]
				loss += log1pExp(z) - y[i]*z
			}

			for j := 0; j < dim; j++ {
				loss += 0.5 * l2 * p[j] * p[j]
			}

			return loss
		},
		Grad: func(grad, p []float64) {
			dim := len(p) - 1
			for j := range grad {
				grad[j] = 0
			}

			for i := range x {
				residual := sigmoid(dot(p[:dim], x[i])+p[dim]) - y[i]
				for j := 0; j < dim; j++ {
					grad[j] += residual * x[i][j]
				}

				grad[dim] += residual
			}

			for j := 0; j < dim; j++ {
				grad[j] += l2 * p[j]
			}
		},
	}
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}

	return sum
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}

	e := math.Exp(z)

	return e / (1 + e)
}

// log1pExp computes log(1 + e^z) without overflow.
func log1pExp(z float64) float64 {
	if z > 0 {
		return z + math.Log1p(math.Exp(-z))
	}

	return math.Log1p(math.Exp(z))
}

func finite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
