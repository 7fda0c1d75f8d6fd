package report

import (
	"math"

	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/shopspring/decimal"
)

var (
	SnapshotHeaders = []string{"Date", "Symbol", "Close", "Volume", "Sentiment"}
	SummaryHeaders  = []string{"Symbol", "Total Return (%)", "Win Ratio (%)", "Sentiment"}
	MLResultHeaders = []string{"Symbol", "Accuracy (%)", "TN", "FP", "FN", "TP"}
)

// SnapshotRow is the latest bar of a symbol with its sentiment.
type SnapshotRow struct {
	Date      string  `yaml:"date"`
	Symbol    string  `yaml:"symbol"`
	Close     float64 `yaml:"close"`
	Volume    float64 `yaml:"volume"`
	Sentiment float64 `yaml:"sentiment"`
}

// SummaryRow is the backtest outcome of a symbol in percent.
type SummaryRow struct {
	Symbol         string  `yaml:"symbol"`
	TotalReturnPct float64 `yaml:"total_return_pct"`
	WinRatioPct    float64 `yaml:"win_ratio_pct"`
	Sentiment      float64 `yaml:"sentiment"`
}

// MLResultRow is the classifier evaluation of a symbol.
// When Error is set the numeric cells are placeholders.
type MLResultRow struct {
	Symbol      string  `yaml:"symbol"`
	AccuracyPct float64 `yaml:"accuracy_pct"`
	TN          int     `yaml:"tn"`
	FP          int     `yaml:"fp"`
	FN          int     `yaml:"fn"`
	TP          int     `yaml:"tp"`
	Error       string  `yaml:"error,omitempty"`
}

// Round rounds v half away from zero to places decimals. Non-finite values are returned unchanged.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	f, _ := decimal.NewFromFloat(v).Round(places).Float64()

	return f
}

// NewSnapshotRow builds the snapshot of the last bar of series. ok is false for an empty series.
func NewSnapshotRow(series []types.MarketData, sentiment float64) (row SnapshotRow, ok bool) {
	if len(series) == 0 {
		return SnapshotRow{}, false
	}

	latest := series[len(series)-1]

	return SnapshotRow{
		Date:      latest.Date(),
		Symbol:    latest.Symbol,
		Close:     latest.Close,
		Volume:    latest.Volume,
		Sentiment: Round(sentiment, 3),
	}, true
}

// NewSummaryRow converts a backtest result into percentages rounded to 2 places.
func NewSummaryRow(symbol string, result types.BacktestResult, sentiment float64) SummaryRow {
	return SummaryRow{
		Symbol:         symbol,
		TotalReturnPct: Round(result.TotalReturn*100, 2),
		WinRatioPct:    Round(result.WinRatio*100, 2),
		Sentiment:      Round(sentiment, 3),
	}
}

// NewMLResultRow converts a classifier result. A nil result or non-empty errMsg yields a placeholder row.
func NewMLResultRow(symbol string, result *types.ClassifierResult, errMsg string) MLResultRow {
	if result == nil || errMsg != "" {
		if errMsg == "" {
			errMsg = "no classifier result"
		}

		return MLResultRow{Symbol: symbol, Error: errMsg}
	}

	return MLResultRow{
		Symbol:      symbol,
		AccuracyPct: Round(result.Accuracy*100, 2),
		TN:          result.Confusion[0][0],
		FP:          result.Confusion[0][1],
		FN:          result.Confusion[1][0],
		TP:          result.Confusion[1][1],
	}
}

// Cells returns the row as sheet cells in SnapshotHeaders order.
func (r SnapshotRow) Cells() []any {
	return []any{r.Date, r.Symbol, r.Close, r.Volume, r.Sentiment}
}

// Cells returns the row as sheet cells in SummaryHeaders order.
func (r SummaryRow) Cells() []any {
	return []any{r.Symbol, r.TotalReturnPct, r.WinRatioPct, r.Sentiment}
}

// Cells returns the row as sheet cells in MLResultHeaders order.
func (r MLResultRow) Cells() []any {
	if r.Error != "" {
		return []any{r.Symbol, "Error", "-", "-", "-", "-"}
	}

	return []any{r.Symbol, r.AccuracyPct, r.TN, r.FP, r.FN, r.TP}
}

type celler interface {
	Cells() []any
}

// table prefixes rows with a header line.
func table[T celler](headers []string, rows []T) [][]any {
	values := make([][]any, 0, len(rows)+1)

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}

	values = append(values, header)
	for _, row := range rows {
		values = append(values, row.Cells())
	}

	return values
}
