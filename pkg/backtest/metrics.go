package backtest

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Metrics summarizes the performance of one equity trajectory.
type Metrics struct {
	FinalEquity decimal.Decimal

	// TotalReturn is final equity over initial cash, minus one.
	TotalReturn float64

	// MaxDrawdown is the largest fractional decline of equity from its
	// running maximum.
	MaxDrawdown float64

	// Volatility is the standard deviation of per-step equity returns.
	Volatility float64

	// SharpeRatio is mean per-step return over its standard deviation,
	// with a zero risk-free rate. Zero when volatility is zero.
	SharpeRatio float64

	// TradeCount is the number of steps with a non-zero executed trade.
	TradeCount int

	// TotalCost is the sum of transaction costs charged across the run.
	TotalCost decimal.Decimal
}

// Evaluate computes summary statistics from a trajectory. Pure function:
// the trajectory is not mutated. A single-step trajectory yields zero
// return, drawdown and volatility.
func Evaluate(traj *Trajectory) Metrics {
	final := traj.Final()

	m := Metrics{
		FinalEquity: final.Equity,
		TotalReturn: final.Equity.Div(traj.InitialCash).InexactFloat64() - 1,
		TotalCost:   decimal.Zero,
	}

	for _, snap := range traj.Snapshots {
		if !snap.Trade.IsNoop() {
			m.TradeCount++
		}
		m.TotalCost = m.TotalCost.Add(snap.Trade.Cost)
	}

	curve := traj.EquityCurve()
	m.MaxDrawdown = maxDrawdown(curve)

	returns := stepReturns(curve)
	if len(returns) > 1 {
		m.Volatility = stat.StdDev(returns, nil)
		if m.Volatility > 0 {
			m.SharpeRatio = stat.Mean(returns, nil) / m.Volatility
		}
	}

	return m
}

// maxDrawdown is max over t of 1 - equity[t] / max(equity[0..t]).
func maxDrawdown(curve []float64) float64 {
	runningMax := math.Inf(-1)
	drawdown := 0.0
	for _, equity := range curve {
		if equity > runningMax {
			runningMax = equity
		}
		if runningMax > 0 {
			if dd := 1 - equity/runningMax; dd > drawdown {
				drawdown = dd
			}
		}
	}
	return drawdown
}

// stepReturns converts an equity curve into per-step fractional returns.
func stepReturns(curve []float64) []float64 {
	if len(curve) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		if curve[i-1] != 0 {
			returns = append(returns, (curve[i]-curve[i-1])/curve[i-1])
		}
	}
	return returns
}
