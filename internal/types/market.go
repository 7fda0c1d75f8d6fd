package types

import (
	"math"
	"sort"
	"time"

	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// MarketData is one daily OHLCV bar of a symbol.
type MarketData struct {
	Id     string    `csv:"id"`
	Symbol string    `csv:"symbol"`
	Time   time.Time `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}

// Date returns the bar's calendar date formatted as YYYY-MM-DD.
func (m MarketData) Date() string {
	return m.Time.Format("2006-01-02")
}

// ValidateSeries checks that the series is non-empty, strictly increasing by date and
// free of negative or non-finite prices and volumes.
func ValidateSeries(series []MarketData) error {
	if len(series) == 0 {
		return errors.New(errors.ErrCodeNoDataFound, "price series is empty")
	}

	for i, bar := range series {
		if !finite(bar.Open, bar.High, bar.Low, bar.Close, bar.Volume) {
			return errors.Newf(errors.ErrCodeInvalidSeries, "non-finite value in bar %d (%s)", i, bar.Date())
		}

		if bar.Open < 0 || bar.High < 0 || bar.Low < 0 || bar.Close < 0 || bar.Volume < 0 {
			return errors.Newf(errors.ErrCodeInvalidSeries, "negative value in bar %d (%s)", i, bar.Date())
		}

		if i > 0 && !bar.Time.After(series[i-1].Time) {
			return errors.Newf(errors.ErrCodeInvalidSeries, "dates not strictly increasing at bar %d (%s after %s)", i, bar.Date(), series[i-1].Date())
		}
	}

	return nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// NormalizeSeries returns a copy of the series sorted by date with duplicate dates removed.
// When two bars share a date the later one in the input wins.
func NormalizeSeries(series []MarketData) []MarketData {
	sorted := make([]MarketData, len(series))
	copy(sorted, series)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	out := make([]MarketData, 0, len(sorted))
	for _, bar := range sorted {
		if n := len(out); n > 0 && out[n-1].Time.Equal(bar.Time) {
			out[n-1] = bar

			continue
		}

		out = append(out, bar)
	}

	return out
}

// Closes extracts the close prices of the series in order.
func Closes(series []MarketData) []float64 {
	closes := make([]float64, len(series))
	for i, bar := range series {
		closes[i] = bar.Close
	}

	return closes
}
