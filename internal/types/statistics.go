package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ClassifierResult holds the evaluation of the next-day-direction classifier.
type ClassifierResult struct {
	// Accuracy is the fraction of correct test predictions.
	Accuracy float64 `yaml:"accuracy"`
	// Confusion is indexed [actual][predicted].
	Confusion [2][2]int `yaml:"confusion"`
	TrainSize int       `yaml:"train_size"`
	TestSize  int       `yaml:"test_size"`
	// Weights are in feature order rsi, macd, volume, sentiment on standardised inputs.
	Weights   []float64 `yaml:"weights"`
	Intercept float64   `yaml:"intercept"`
}

// SymbolStats is the per-symbol part of a run report.
type SymbolStats struct {
	Symbol      string  `yaml:"symbol"`
	Provider    string  `yaml:"provider,omitempty"`
	Bars        int     `yaml:"bars"`
	LatestDate  string  `yaml:"latest_date"`
	LatestClose float64 `yaml:"latest_close"`
	Sentiment   float64 `yaml:"sentiment"`
	TotalReturn float64 `yaml:"total_return"`
	WinRatio    float64 `yaml:"win_ratio"`
	Signals     int     `yaml:"signals"`
	// Classifier is nil when training failed; ClassifierError then holds the reason.
	Classifier      *ClassifierResult `yaml:"classifier,omitempty"`
	ClassifierError string            `yaml:"classifier_error,omitempty"`
	// ArchivePath is the parquet snapshot of the fetched series, if archiving is enabled.
	ArchivePath string `yaml:"archive_path,omitempty"`
}

// RunReport summarises one pipeline run.
type RunReport struct {
	// ID is the unique identifier of this run.
	ID string `yaml:"id"`
	// Version is the build that produced the report.
	Version   string        `yaml:"version"`
	Timestamp time.Time     `yaml:"timestamp"`
	Symbols   []SymbolStats `yaml:"symbols"`
	// Skipped lists symbols for which every price provider failed.
	Skipped []string `yaml:"skipped,omitempty"`
}

// WriteRunReport writes the report as YAML to path, replacing any existing file.
func WriteRunReport(path string, report RunReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal run report to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run report to file: %w", err)
	}

	return nil
}
