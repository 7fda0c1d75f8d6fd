package writer

import (
	"github.com/rxtech-lab/argo-research/internal/types"
)

// MarketDataWriter defines the interface for writing market data to a destination.
type MarketDataWriter interface {
	// Initialize sets up the writer, potentially creating tables or files.
	Initialize() error
	// Write persists a single market data point.
	Write(data types.MarketData) error
	// Finalize completes the writing process (e.g., commits transactions, exports files).
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}

// WriteSeries runs a full writer lifecycle over series and returns the finalized path.
func WriteSeries(w MarketDataWriter, series []types.MarketData) (outputPath string, err error) {
	if err = w.Initialize(); err != nil {
		return "", err
	}

	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for _, bar := range series {
		if err = w.Write(bar); err != nil {
			return "", err
		}
	}

	return w.Finalize()
}
