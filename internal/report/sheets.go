package report

import (
	"context"

	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	TradeLogSheet  = "Trade_Log"
	SummarySheet   = "Summary"
	MLResultsSheet = "ML_Results"
)

// valuesService is the part of the Sheets values API the sink uses.
type valuesService interface {
	Clear(ctx context.Context, spreadsheetID, sheet string) error
	Update(ctx context.Context, spreadsheetID, rng string, values [][]any) error
}

type sheetsValues struct {
	values *sheets.SpreadsheetsValuesService
}

func (s *sheetsValues) Clear(ctx context.Context, spreadsheetID, sheet string) error {
	_, err := s.values.Clear(spreadsheetID, sheet, &sheets.ClearValuesRequest{}).Context(ctx).Do()

	return err
}

func (s *sheetsValues) Update(ctx context.Context, spreadsheetID, rng string, values [][]any) error {
	_, err := s.values.Update(spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()

	return err
}

// SheetsSink writes result tables to worksheets of one spreadsheet.
type SheetsSink struct {
	values        valuesService
	spreadsheetID string
	logger        *logger.Logger
}

// NewSheetsSink authenticates with a service account key file.
func NewSheetsSink(ctx context.Context, credentialsFile, spreadsheetID string, log *logger.Logger) (*SheetsSink, error) {
	if spreadsheetID == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "spreadsheet ID is required")
	}

	srv, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to create sheets client from %s", credentialsFile)
	}

	return newSheetsSink(&sheetsValues{values: srv.Spreadsheets.Values}, spreadsheetID, log), nil
}

func newSheetsSink(values valuesService, spreadsheetID string, log *logger.Logger) *SheetsSink {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &SheetsSink{
		values:        values,
		spreadsheetID: spreadsheetID,
		logger:        log,
	}
}

// WriteLatestSnapshot replaces the Trade_Log worksheet.
func (s *SheetsSink) WriteLatestSnapshot(ctx context.Context, rows []SnapshotRow) error {
	return s.replace(ctx, TradeLogSheet, table(SnapshotHeaders, rows))
}

// WriteSummary replaces the Summary worksheet.
func (s *SheetsSink) WriteSummary(ctx context.Context, rows []SummaryRow) error {
	return s.replace(ctx, SummarySheet, table(SummaryHeaders, rows))
}

// WriteMLResults replaces the ML_Results worksheet.
func (s *SheetsSink) WriteMLResults(ctx context.Context, rows []MLResultRow) error {
	return s.replace(ctx, MLResultsSheet, table(MLResultHeaders, rows))
}

func (s *SheetsSink) replace(ctx context.Context, sheet string, values [][]any) error {
	if err := s.values.Clear(ctx, s.spreadsheetID, sheet); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to clear worksheet %s", sheet)
	}

	if err := s.values.Update(ctx, s.spreadsheetID, sheet+"!A1", values); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to update worksheet %s", sheet)
	}

	s.logger.Info("Wrote worksheet", zap.String("sheet", sheet), zap.Int("rows", len(values)-1))

	return nil
}
