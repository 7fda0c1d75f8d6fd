package classifier

import (
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// TestFraction is the share of the most recent examples held out for evaluation.
const TestFraction = 0.2

// Train builds the feature table, splits it chronologically, fits and evaluates.
func Train(rows []types.IndicatorRow, sentiment float64) (*types.ClassifierResult, error) {
	table := BuildFeatureTable(rows, sentiment)
	if len(table) < 2 {
		symbol := ""
		if len(rows) > 0 {
			symbol = rows[0].Symbol
		}

		return nil, errors.Wrap(errors.ErrCodeInsufficientData, "not enough rows to train",
			errors.NewInsufficientDataErrorf(2, len(table), symbol, "need at least %d rows with defined features, got %d", 2, len(table)))
	}

	train, test := Split(table, TestFraction)

	model, err := Fit(train)
	if err != nil {
		return nil, err
	}

	accuracy, confusion := Evaluate(model, test)

	return &types.ClassifierResult{
		Accuracy:  accuracy,
		Confusion: confusion,
		TrainSize: len(train),
		TestSize:  len(test),
		Weights:   model.Weights,
		Intercept: model.Intercept,
	}, nil
}
