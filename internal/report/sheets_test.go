package report

import (
	"context"
	"fmt"
	"testing"

	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type call struct {
	op     string
	id     string
	rng    string
	values [][]any
}

// fakeValues records Sheets values calls and fails on demand.
type fakeValues struct {
	calls    []call
	clearErr error
	writeErr error
}

func (f *fakeValues) Clear(_ context.Context, spreadsheetID, sheet string) error {
	f.calls = append(f.calls, call{op: "clear", id: spreadsheetID, rng: sheet})

	return f.clearErr
}

func (f *fakeValues) Update(_ context.Context, spreadsheetID, rng string, values [][]any) error {
	f.calls = append(f.calls, call{op: "update", id: spreadsheetID, rng: rng, values: values})

	return f.writeErr
}

type SheetsSinkTestSuite struct {
	suite.Suite
	values *fakeValues
	sink   *SheetsSink
}

func TestSheetsSinkSuite(t *testing.T) {
	suite.Run(t, new(SheetsSinkTestSuite))
}

func (suite *SheetsSinkTestSuite) SetupTest() {
	suite.values = &fakeValues{}
	suite.sink = newSheetsSink(suite.values, "sheet-id", nil)
}

func (suite *SheetsSinkTestSuite) TestClearThenWrite() {
	err := suite.sink.WriteSummary(context.Background(), []SummaryRow{{Symbol: "INFY.NS", TotalReturnPct: -3.7}})
	suite.Require().NoError(err)

	suite.Require().Len(suite.values.calls, 2)
	suite.Equal(call{op: "clear", id: "sheet-id", rng: "Summary"}, suite.values.calls[0])
	suite.Equal("update", suite.values.calls[1].op)
	suite.Equal("Summary!A1", suite.values.calls[1].rng)
	suite.Equal([][]any{
		{"Symbol", "Total Return (%)", "Win Ratio (%)", "Sentiment"},
		{"INFY.NS", -3.7, 0.0, 0.0},
	}, suite.values.calls[1].values)
}

func (suite *SheetsSinkTestSuite) TestWorksheets() {
	ctx := context.Background()
	suite.Require().NoError(suite.sink.WriteLatestSnapshot(ctx, nil))
	suite.Require().NoError(suite.sink.WriteMLResults(ctx, []MLResultRow{{Symbol: "TCS.NS", Error: "single class"}}))

	suite.Equal("Trade_Log!A1", suite.values.calls[1].rng)
	suite.Equal([][]any{{"Date", "Symbol", "Close", "Volume", "Sentiment"}}, suite.values.calls[1].values)
	suite.Equal("ML_Results!A1", suite.values.calls[3].rng)
	suite.Equal([]any{"TCS.NS", "Error", "-", "-", "-", "-"}, suite.values.calls[3].values[1])
}

func (suite *SheetsSinkTestSuite) TestClearFailureSkipsUpdate() {
	suite.values.clearErr = fmt.Errorf("quota exceeded")

	err := suite.sink.WriteSummary(context.Background(), nil)
	suite.True(errors.HasCode(err, errors.ErrCodeReportWriteFailed))
	suite.Len(suite.values.calls, 1)
}

func (suite *SheetsSinkTestSuite) TestUpdateFailure() {
	suite.values.writeErr = fmt.Errorf("permission denied")

	err := suite.sink.WriteMLResults(context.Background(), nil)
	suite.True(errors.HasCode(err, errors.ErrCodeReportWriteFailed))
	suite.Contains(err.Error(), "ML_Results")
}

func (suite *SheetsSinkTestSuite) TestNewSheetsSinkRequiresID() {
	_, err := NewSheetsSink(context.Background(), "credentials.json", "", nil)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))
}
