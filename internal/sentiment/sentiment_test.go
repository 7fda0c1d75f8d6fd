package sentiment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SentimentTestSuite struct {
	suite.Suite
}

func TestSentimentSuite(t *testing.T) {
	suite.Run(t, new(SentimentTestSuite))
}

func (suite *SentimentTestSuite) TestCompanyName() {
	suite.Equal("Reliance Industries", CompanyName("RELIANCE.NS"))
	suite.Equal("HDFC Bank", CompanyName("HDFCBANK.NS"))
	suite.Equal("Infosys", CompanyName("INFY.NS"))
	suite.Equal("TCS", CompanyName("TCS.NS"))
	suite.Equal("AAPL", CompanyName("AAPL"))
}

func (suite *SentimentTestSuite) TestStripHTML() {
	suite.Equal("Infosys beats estimates", StripHTML("Infosys <b>beats</b>\n estimates"))
	suite.Equal("Q4 profit & margin", StripHTML("<p>Q4 profit &amp; margin</p>"))
	suite.Equal("plain text", StripHTML("  plain   text "))
	suite.Equal("", StripHTML(""))
}

func (suite *SentimentTestSuite) TestVaderScorer() {
	scorer := NewVaderScorer()

	suite.Greater(scorer.Score("Shares surge on great results, investors are happy"), 0.0)
	suite.Less(scorer.Score("Shares crash after terrible losses and fraud"), 0.0)
	suite.Equal(0.0, scorer.Score("   "))

	for _, text := range []string{"good", "bad", "awful awful awful", "best ever!!!"} {
		score := scorer.Score(text)
		suite.GreaterOrEqual(score, -1.0)
		suite.LessOrEqual(score, 1.0)
	}
}

func (suite *SentimentTestSuite) TestNeutral() {
	suite.Equal(0.0, Neutral{}.FetchSentiment(context.Background(), "INFY.NS"))
}
