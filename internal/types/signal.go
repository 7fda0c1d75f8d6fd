package types

import "time"

type SignalType string

const (
	// SignalTypeBuyLong is a signal that tells the strategy to buy
	SignalTypeBuyLong SignalType = "buy_long"
)

// Signal describes one bar on which a strategy fired, with the values behind it.
type Signal struct {
	// Time is the time of the signal
	Time time.Time
	// Type is the type of the signal
	Type SignalType
	// Name is the name of the strategy that produced the signal
	Name string
	// Reason is the reason for the signal
	Reason string
	// RawValue holds the indicator values on the signal bar, keyed by column
	RawValue map[string]float64
	// Symbol is the symbol of the signal
	Symbol string
}
