package strategy

import (
	"errors"
	"fmt"
)

// Signal is a discretized directional recommendation for one timestep.
type Signal int8

const (
	// Flat targets no position.
	Flat Signal = iota
	// Long targets a positive position sized off current equity.
	Long
	// Short targets the negative of the Long size.
	Short
)

func (s Signal) String() string {
	switch s {
	case Long:
		return "LONG"
	case Short:
		return "SHORT"
	default:
		return "FLAT"
	}
}

// Name identifies a strategy in the catalog.
type Name string

const (
	Bollinger Name = "bollinger"
	MACD      Name = "macd"
	ROC       Name = "roc"
	RSI       Name = "rsi"
)

// ErrUnknownStrategy is returned when a strategy name is not in the catalog.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Names lists the strategy catalog in a stable order.
func Names() []Name {
	return []Name{Bollinger, MACD, ROC, RSI}
}

// ParseName validates a strategy name against the catalog.
func ParseName(s string) (Name, error) {
	switch Name(s) {
	case Bollinger, MACD, ROC, RSI:
		return Name(s), nil
	}
	return "", fmt.Errorf("%w: %q (choose from %v)", ErrUnknownStrategy, s, Names())
}

// Generate produces one signal per closing price for the named strategy.
// The output is index-aligned with the input: signals[i] is the direction to
// hold at step i, derived from data through step i-1 so no signal looks
// ahead of its own bar.
func Generate(name Name, closes []float64) ([]Signal, error) {
	var signals []Signal
	switch name {
	case Bollinger:
		signals = bollingerSignals(closes, 20, 2.0)
	case MACD:
		signals = macdSignals(closes, 12, 26, 9)
	case ROC:
		signals = rocSignals(closes, 12)
	case RSI:
		signals = rsiSignals(closes, 14)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return shiftRight(signals), nil
}
