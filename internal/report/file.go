package report

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	SnapshotFile  = "snapshot.yaml"
	SummaryFile   = "summary.yaml"
	MLResultsFile = "ml_results.yaml"
)

// FileSink writes each table as a YAML file in a results directory.
type FileSink struct {
	dir    string
	logger *logger.Logger
}

// NewFileSink creates dir if needed.
func NewFileSink(dir string, log *logger.Logger) (*FileSink, error) {
	if dir == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "results directory is required")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to create results directory %s", dir)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &FileSink{dir: dir, logger: log}, nil
}

// Dir returns the results directory.
func (f *FileSink) Dir() string {
	return f.dir
}

// WriteLatestSnapshot implements Sink.
func (f *FileSink) WriteLatestSnapshot(_ context.Context, rows []SnapshotRow) error {
	return f.write(SnapshotFile, rows)
}

// WriteSummary implements Sink.
func (f *FileSink) WriteSummary(_ context.Context, rows []SummaryRow) error {
	return f.write(SummaryFile, rows)
}

// WriteMLResults implements Sink.
func (f *FileSink) WriteMLResults(_ context.Context, rows []MLResultRow) error {
	return f.write(MLResultsFile, rows)
}

func (f *FileSink) write(name string, rows any) error {
	data, err := yaml.Marshal(rows)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to marshal %s", name)
	}

	path := filepath.Join(f.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to write %s", path)
	}

	f.logger.Debug("Wrote results file", zap.String("path", path))

	return nil
}
