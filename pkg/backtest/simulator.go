package backtest

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/backtestbay/backtestbay/pkg/market"
	"github.com/backtestbay/backtestbay/pkg/strategy"
)

// ErrLengthMismatch is returned when the signal series is not index-aligned
// with the price series.
var ErrLengthMismatch = errors.New("price and signal series must have the same length")

// Snapshot is the portfolio at one timestep of a run.
type Snapshot struct {
	Timestamp time.Time
	Price     decimal.Decimal
	Signal    strategy.Signal
	Position  decimal.Decimal
	Holdings  decimal.Decimal
	Cash      decimal.Decimal
	Equity    decimal.Decimal
	Trade     Trade
}

// Trajectory is the full time-indexed output of one simulation run, one
// snapshot per input timestamp.
type Trajectory struct {
	InitialCash decimal.Decimal
	Snapshots   []Snapshot
}

// Final returns the terminal snapshot. The open position is valued at the
// last price, not liquidated.
func (t *Trajectory) Final() Snapshot {
	return t.Snapshots[len(t.Snapshots)-1]
}

// EquityCurve returns the equity column for metric math and plotting.
func (t *Trajectory) EquityCurve() []float64 {
	curve := make([]float64, len(t.Snapshots))
	for i, snap := range t.Snapshots {
		curve[i] = snap.Equity.InexactFloat64()
	}
	return curve
}

// Simulate folds the trade executor over the aligned price and signal
// series, starting from all-cash, and returns the resulting trajectory.
//
// All preconditions are checked before any state is built, so a malformed
// input never yields a partial trajectory. The loop is strictly sequential:
// each step's sizing depends on the fully resolved state of the previous
// step. Simulate is a pure function of its inputs; runs over different
// inputs share no state and may execute concurrently.
func Simulate(series market.PriceSeries, signals []strategy.Signal, cfg Config) (*Trajectory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if len(signals) != len(series) {
		return nil, fmt.Errorf("%w: %d prices, %d signals", ErrLengthMismatch, len(series), len(signals))
	}

	state := State{Cash: cfg.InitialCash}
	traj := &Trajectory{
		InitialCash: cfg.InitialCash,
		Snapshots:   make([]Snapshot, 0, len(series)),
	}

	for i, pt := range series {
		equity := state.Equity(pt.Price)
		target := TargetPosition(signals[i], equity, pt.Price, cfg.TradePct)

		var trade Trade
		state, trade = Execute(state, target, pt.Price, cfg.CostRate)

		holdings := state.Position.Mul(pt.Price)
		traj.Snapshots = append(traj.Snapshots, Snapshot{
			Timestamp: pt.Timestamp,
			Price:     pt.Price,
			Signal:    signals[i],
			Position:  state.Position,
			Holdings:  holdings,
			Cash:      state.Cash,
			Equity:    state.Cash.Add(holdings),
			Trade:     trade,
		})
	}

	return traj, nil
}
