package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-research/internal/types"
)

// DataGenerator generates realistic daily market data for tests.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how market data is generated.
type GeneratorConfig struct {
	// Symbol is the equity symbol (e.g., "INFY.NS")
	Symbol string
	// StartTime is the date of the first bar
	StartTime time.Time
	// Count is the number of daily bars to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical daily volatility)
	Volatility float64
	// Trend is the drift factor (-0.01 to 0.01 for bearish to bullish)
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:         "TEST.NS",
		StartTime:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Count:          200,
		InitialPrice:   1500.0,
		Volatility:     0.015,
		Trend:          0.0,
		VolumeBase:     1_000_000,
		VolumeVariance: 0.3,
	}
}

// Generate creates one bar per calendar day following a geometric Brownian motion.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.MarketData {
	data := make([]types.MarketData, config.Count)
	currentPrice := config.InitialPrice

	for i := 0; i < config.Count; i++ {
		open := currentPrice

		// Box-Muller transform for normal distribution
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		priceChange := config.Volatility * z
		drift := config.Trend / float64(config.Count)

		close := open * (1 + priceChange + drift)
		if close <= 0 {
			close = open * 0.99
		}

		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, close) + highExtension
		low := math.Min(open, close) - lowExtension
		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		volumeVariation := 1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance
		volume := config.VolumeBase * volumeVariation
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		data[i] = types.MarketData{
			Symbol: config.Symbol,
			Time:   config.StartTime.AddDate(0, 0, i),
			Open:   roundToDecimals(open, 2),
			High:   roundToDecimals(high, 2),
			Low:    roundToDecimals(low, 2),
			Close:  roundToDecimals(close, 2),
			Volume: math.Round(volume),
		}

		currentPrice = close
	}

	return data
}

// GenerateDaily is a convenience wrapper producing count bars for symbol with a fixed seed.
func GenerateDaily(symbol string, count int) []types.MarketData {
	config := DefaultConfig()
	config.Symbol = symbol
	config.Count = count

	return NewDataGenerator(42).Generate(config)
}

// FromCloses builds a daily series whose bars open, high, low and close at the given prices.
func FromCloses(symbol string, closes []float64) []types.MarketData {
	start := DefaultConfig().StartTime
	data := make([]types.MarketData, len(closes))

	for i, c := range closes {
		data[i] = types.MarketData{
			Symbol: symbol,
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000 + float64(i),
		}
	}

	return data
}

// CrossoverCloses returns 60 closes engineered so the buy rule fires exactly once, on row 54.
//
// A 3000 spike on row 4 holds DMA50 above DMA20 until it leaves the 50-day window on
// row 54, while the decline from row 43 keeps RSI(14) near 13. Row 54 closes at 135 and
// row 55 at 130, so the single trade returns -1/27.
func CrossoverCloses() []float64 {
	closes := make([]float64, 0, 60)

	for i := 0; i < 36; i++ {
		if i == 4 {
			closes = append(closes, 3000)

			continue
		}

		closes = append(closes, 100)
	}

	closes = append(closes, 150, 160, 170, 180, 190, 200)

	for i := 1; i <= 18; i++ {
		closes = append(closes, 200-5*float64(i))
	}

	return closes
}

// CrossoverRow is the only row of CrossoverCloses on which the buy rule fires.
const CrossoverRow = 54

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
