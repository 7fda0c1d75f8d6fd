package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type YahooClientTestSuite struct {
	suite.Suite
}

func TestYahooClientSuite(t *testing.T) {
	suite.Run(t, new(YahooClientTestSuite))
}

// sessions open 09:15 IST, i.e. 03:45 UTC, on 2 and 3 May 2024; the middle entry is a null bar
const yahooBody = `{"chart": {"result": [{
	"meta": {"symbol": "INFY.NS", "gmtoffset": 19800},
	"timestamp": [1714621500, 1714650000, 1714707900],
	"indicators": {"quote": [{
		"open": [1400.0, null, 1420.5],
		"high": [1415.0, null, 1431.0],
		"low": [1395.0, null, 1410.0],
		"close": [1410.0, null, 1425.75],
		"volume": [500000, null, 610000]
	}]}
}], "error": null}}`

func (suite *YahooClientTestSuite) newClient(url string, now time.Time) *YahooClient {
	client := NewYahooClient(200, url, nil)
	client.now = func() time.Time { return now }

	return client
}

func (suite *YahooClientTestSuite) TestFetch() {
	now := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.Equal("/v8/finance/chart/INFY.NS", r.URL.Path)
		suite.Equal("1d", r.URL.Query().Get("interval"))
		suite.Equal(strconv.FormatInt(now.Unix(), 10), r.URL.Query().Get("period2"))
		suite.Equal(strconv.FormatInt(now.AddDate(0, 0, -200).Unix(), 10), r.URL.Query().Get("period1"))
		suite.NotEmpty(r.Header.Get("User-Agent"))

		_, _ = w.Write([]byte(yahooBody))
	}))
	defer server.Close()

	client := suite.newClient(server.URL, now)
	suite.Equal(ProviderYahoo, client.Name())

	series, err := client.Fetch(context.Background(), "INFY.NS")
	suite.Require().NoError(err)
	suite.Require().Len(series, 2)

	suite.Equal("2024-05-02", series[0].Date())
	suite.Equal("2024-05-03", series[1].Date())
	suite.Equal(1425.75, series[1].Close)
	suite.Equal(610000.0, series[1].Volume)
}

func (suite *YahooClientTestSuite) TestChartError() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`))
	}))
	defer server.Close()

	_, err := suite.newClient(server.URL, time.Now()).Fetch(context.Background(), "GONE.NS")
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed))
	suite.Contains(err.Error(), "delisted")
}

func (suite *YahooClientTestSuite) TestEmptyResult() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"chart": {"result": [{"meta": {}, "timestamp": [], "indicators": {"quote": [{}]}}], "error": null}}`))
	}))
	defer server.Close()

	_, err := suite.newClient(server.URL, time.Now()).Fetch(context.Background(), "INFY.NS")
	suite.True(errors.HasCode(err, errors.ErrCodeNoDataFound))
}

func (suite *YahooClientTestSuite) TestGarbageBody() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>Too Many Requests</html>`))
	}))
	defer server.Close()

	_, err := suite.newClient(server.URL, time.Now()).Fetch(context.Background(), "INFY.NS")
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))
}

func (suite *YahooClientTestSuite) TestDefaultLookback() {
	suite.Equal(defaultLookbackDays, NewYahooClient(0, "", nil).lookbackDays)
}
