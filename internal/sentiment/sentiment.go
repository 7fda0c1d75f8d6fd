package sentiment

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonreiter/govader"
)

// Source yields one sentiment score per symbol for a run.
type Source interface {
	// FetchSentiment returns a score in [-1, 1]. It never fails; 0 means neutral or unknown.
	FetchSentiment(ctx context.Context, symbol string) float64
}

// Scorer rates the polarity of a piece of text in [-1, 1].
type Scorer interface {
	Score(text string) float64
}

// VaderScorer scores text with the VADER lexicon's compound score.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer creates a scorer backed by the built-in VADER lexicon.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the compound polarity of text.
func (v *VaderScorer) Score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	return v.analyzer.PolarityScores(text).Compound
}

// Neutral is a Source that always reports 0.
type Neutral struct{}

// FetchSentiment implements Source.
func (Neutral) FetchSentiment(context.Context, string) float64 {
	return 0
}

var companyNames = map[string]string{
	"RELIANCE.NS": "Reliance Industries",
	"HDFCBANK.NS": "HDFC Bank",
	"INFY.NS":     "Infosys",
}

// CompanyName returns the name news is searched under: a known company name,
// otherwise the symbol up to its first '.'.
func CompanyName(symbol string) string {
	if name, ok := companyNames[symbol]; ok {
		return name
	}

	name, _, _ := strings.Cut(symbol, ".")

	return name
}

// StripHTML returns the visible text of an HTML fragment with whitespace collapsed.
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}
