// Package backtest evaluates a signal series against next-day closes.
package backtest

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-research/internal/types"
)

// Run buys at the close of every signal bar and exits at the next close.
//
// The forward return of the final bar is undefined and contributes nothing.
// WinRatio counts profitable signal bars over all signal bars, 0 when none fired.
func Run(rows []types.SignalRow) types.BacktestResult {
	result := types.BacktestResult{
		Rows: make([]types.BacktestRow, len(rows)),
	}

	for i, row := range rows {
		out := types.BacktestRow{SignalRow: row}

		if i+1 < len(rows) {
			next := rows[i+1].Close
			out.NextClose = optional.Some(next)

			if row.Close != 0 {
				out.ForwardReturn = optional.Some((next - row.Close) / row.Close)
			}
		}

		if out.ForwardReturn.IsSome() {
			out.StrategyReturn = out.ForwardReturn.Unwrap() * float64(row.Signal)
		}

		if row.Signal == 1 {
			result.Signals++
		}

		if out.StrategyReturn > 0 {
			result.Wins++
		}

		result.TotalReturn += out.StrategyReturn
		result.Rows[i] = out
	}

	if result.Signals > 0 {
		result.WinRatio = float64(result.Wins) / float64(result.Signals)
	}

	return result
}
