package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type AlphaVantageClientTestSuite struct {
	suite.Suite
}

func TestAlphaVantageClientSuite(t *testing.T) {
	suite.Run(t, new(AlphaVantageClientTestSuite))
}

const alphaVantageBody = `{
	"Meta Data": {"2. Symbol": "RELIANCE.BSE"},
	"Time Series (Daily)": {
		"2024-05-03": {"1. open": "2900.0", "2. high": "2950.5", "3. low": "2880.0", "4. close": "2931.25", "5. volume": "120000"},
		"2024-05-02": {"1. open": "2850.0", "2. high": "2905.0", "3. low": "2840.0", "4. close": "2899.00", "5. volume": "98000"}
	}
}`

func (suite *AlphaVantageClientTestSuite) server(body string, status int, assert func(r *http.Request)) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if assert != nil {
			assert(r)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	suite.T().Cleanup(server.Close)

	return server
}

func (suite *AlphaVantageClientTestSuite) TestSymbolMapping() {
	suite.Equal("RELIANCE.BSE", AlphaVantageSymbol("RELIANCE.NS"))
	suite.Equal("AAPL", AlphaVantageSymbol("AAPL"))
}

func (suite *AlphaVantageClientTestSuite) TestFetch() {
	server := suite.server(alphaVantageBody, http.StatusOK, func(r *http.Request) {
		suite.Equal("/query", r.URL.Path)
		suite.Equal("TIME_SERIES_DAILY", r.URL.Query().Get("function"))
		suite.Equal("RELIANCE.BSE", r.URL.Query().Get("symbol"))
		suite.Equal("full", r.URL.Query().Get("outputsize"))
		suite.Equal("key", r.URL.Query().Get("apikey"))
	})

	client := NewAlphaVantageClient("key", server.URL, nil)
	suite.Equal(ProviderAlphaVantage, client.Name())

	series, err := client.Fetch(context.Background(), "RELIANCE.NS")
	suite.Require().NoError(err)
	suite.Require().Len(series, 2)

	suite.Equal("2024-05-02", series[0].Date())
	suite.Equal("2024-05-03", series[1].Date())
	suite.Equal("RELIANCE.NS", series[1].Symbol)
	suite.Equal(2931.25, series[1].Close)
	suite.Equal(120000.0, series[1].Volume)
}

func (suite *AlphaVantageClientTestSuite) TestRateLimitNote() {
	server := suite.server(`{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`, http.StatusOK, nil)

	_, err := NewAlphaVantageClient("key", server.URL, nil).Fetch(context.Background(), "INFY.NS")
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed))
	suite.Contains(err.Error(), "No data for INFY.BSE")
	suite.Contains(err.Error(), "call frequency")
}

func (suite *AlphaVantageClientTestSuite) TestHTTPError() {
	server := suite.server(`{}`, http.StatusInternalServerError, nil)

	_, err := NewAlphaVantageClient("key", server.URL, nil).Fetch(context.Background(), "INFY.NS")
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed))
}

func (suite *AlphaVantageClientTestSuite) TestMalformedValue() {
	server := suite.server(`{"Time Series (Daily)": {"2024-05-02": {"1. open": "n/a", "2. high": "1", "3. low": "1", "4. close": "1", "5. volume": "1"}}}`, http.StatusOK, nil)

	_, err := NewAlphaVantageClient("key", server.URL, nil).Fetch(context.Background(), "INFY.NS")
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))
}

func (suite *AlphaVantageClientTestSuite) TestMissingAPIKey() {
	_, err := NewAlphaVantageClient("", "http://127.0.0.1:0", nil).Fetch(context.Background(), "INFY.NS")
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed))
}
