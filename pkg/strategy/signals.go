package strategy

import (
	"github.com/markcheno/go-talib"
)

// bollingerSignals is anticyclical: a close below the lower band is an
// oversold Long, a close above the upper band is an overbought Short.
func bollingerSignals(closes []float64, window int, numStdDev float64) []Signal {
	signals := make([]Signal, len(closes))
	if len(closes) < window {
		return signals
	}

	upper, _, lower := talib.BBands(closes, window, numStdDev, numStdDev, talib.SMA)

	for i := window - 1; i < len(closes); i++ {
		if isNaN(upper[i]) || isNaN(lower[i]) {
			continue
		}
		switch {
		case closes[i] < lower[i]:
			signals[i] = Long
		case closes[i] > upper[i]:
			signals[i] = Short
		}
	}
	return signals
}

// macdSignals follows the sign of the MACD histogram.
func macdSignals(closes []float64, fast, slow, signalPeriod int) []Signal {
	signals := make([]Signal, len(closes))
	warmup := slow + signalPeriod - 2
	if len(closes) <= warmup {
		return signals
	}

	_, _, hist := talib.Macd(closes, fast, slow, signalPeriod)

	for i := warmup; i < len(closes); i++ {
		if isNaN(hist[i]) {
			continue
		}
		switch {
		case hist[i] > 0:
			signals[i] = Long
		case hist[i] < 0:
			signals[i] = Short
		}
	}
	return signals
}

// rocSignals is trend-following on the rate of change.
func rocSignals(closes []float64, period int) []Signal {
	signals := make([]Signal, len(closes))
	if len(closes) <= period {
		return signals
	}

	roc := talib.Roc(closes, period)

	for i := period; i < len(closes); i++ {
		if isNaN(roc[i]) {
			continue
		}
		switch {
		case roc[i] > 0:
			signals[i] = Long
		case roc[i] < 0:
			signals[i] = Short
		}
	}
	return signals
}

// rsiSignals is anticyclical on the classic 30/70 thresholds.
func rsiSignals(closes []float64, period int) []Signal {
	signals := make([]Signal, len(closes))
	if len(closes) <= period {
		return signals
	}

	rsi := talib.Rsi(closes, period)

	for i := period; i < len(closes); i++ {
		if isNaN(rsi[i]) {
			continue
		}
		switch {
		case rsi[i] < 30:
			signals[i] = Long
		case rsi[i] > 70:
			signals[i] = Short
		}
	}
	return signals
}

// shiftRight delays every signal by one bar, so a condition observed at bar
// i is acted on at bar i+1. The first bar is always Flat.
func shiftRight(signals []Signal) []Signal {
	if len(signals) == 0 {
		return signals
	}
	shifted := make([]Signal, len(signals))
	copy(shifted[1:], signals[:len(signals)-1])
	return shifted
}

func isNaN(f float64) bool {
	return f != f
}
