// Package classifier fits and evaluates a next-day-direction logistic model.
package classifier

import (
	"github.com/rxtech-lab/argo-research/internal/types"
)

// FeatureNames lists the model inputs in column order.
var FeatureNames = []string{"rsi", "macd", "volume", "sentiment"}

// FeatureRow is one training example.
type FeatureRow struct {
	RSI       float64
	MACD      float64
	Volume    float64
	Sentiment float64
	// Target is 1 when the next close is above this close, else 0.
	Target int
}

// Vector returns the features in FeatureNames order.
func (f FeatureRow) Vector() []float64 {
	return []float64{f.RSI, f.MACD, f.Volume, f.Sentiment}
}

// FeatureTable is a chronologically ordered set of examples.
type FeatureTable []FeatureRow

// BuildFeatureTable derives one example per row with defined RSI and MACD.
// The final bar has no next close and is kept with target 0.
func BuildFeatureTable(rows []types.IndicatorRow, sentiment float64) FeatureTable {
	table := make(FeatureTable, 0, len(rows))

	for i, row := range rows {
		if row.RSI.IsNone() || row.MACD.IsNone() {
			continue
		}

		target := 0
		if i+1 < len(rows) && rows[i+1].Close > row.Close {
			target = 1
		}

		table = append(table, FeatureRow{
			RSI:       row.RSI.Unwrap(),
			MACD:      row.MACD.Unwrap(),
			Volume:    row.Volume,
			Sentiment: sentiment,
			Target:    target,
		})
	}

	return table
}

// Split keeps order: the last ceil(n*testFraction) rows form the test set.
func Split(table FeatureTable, testFraction float64) (FeatureTable, FeatureTable) {
	testSize := ceilSize(len(table), testFraction)
	cut := len(table) - testSize

	return table[:cut], table[cut:]
}

func ceilSize(n int, fraction float64) int {
	size := int(float64(n) * fraction)
	if float64(size) < float64(n)*fraction {
		size++
	}

	if size > n {
		size = n
	}

	return size
}
