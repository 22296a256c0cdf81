package backtest

import (
	"github.com/shopspring/decimal"
)

// State is the portfolio at one point in time: cash plus a signed position.
type State struct {
	Cash     decimal.Decimal
	Position decimal.Decimal
}

// Equity values the state at the given price: cash + position x price.
// Always recomputed, never stored, so it cannot drift.
func (s State) Equity(price decimal.Decimal) decimal.Decimal {
	return s.Cash.Add(s.Position.Mul(price))
}

// Trade records one execution. Executed differs from Requested only when
// the affordability clamp reduced the trade.
type Trade struct {
	Requested decimal.Decimal
	Executed  decimal.Decimal
	Price     decimal.Decimal
	Notional  decimal.Decimal
	Cost      decimal.Decimal
	Clamped   bool
}

// IsNoop reports whether the trade moved nothing.
func (t Trade) IsNoop() bool {
	return t.Executed.IsZero()
}

// Execute moves the state from its current position toward target at the
// given price, charging costRate on the traded notional.
//
// A positive delta spends cash (buying long exposure or covering a short)
// and is clamped to the largest quantity whose notional plus cost fits in
// available cash, so post-trade cash never goes negative. A negative delta
// raises cash net of cost and never needs the clamp while costRate < 1.
//
// Pure function: the input state is not mutated.
func Execute(state State, target, price, costRate decimal.Decimal) (State, Trade) {
	delta := target.Sub(state.Position)
	trade := Trade{Requested: delta, Price: price}

	if delta.IsZero() {
		return state, trade
	}

	if delta.Sign() > 0 {
		affordable := maxAffordable(state.Cash, price, costRate)
		if delta.GreaterThan(affordable) {
			delta = affordable
			trade.Clamped = true
		}
	}
	if delta.IsZero() {
		return state, trade
	}

	notional := delta.Abs().Mul(price)
	cost := notional.Mul(costRate)

	trade.Executed = delta
	trade.Notional = notional
	trade.Cost = cost

	return State{
		Cash:     state.Cash.Sub(delta.Mul(price)).Sub(cost),
		Position: state.Position.Add(delta),
	}, trade
}

// maxAffordable returns the largest quantity q with
// q x price x (1 + costRate) <= cash. The division is truncated toward
// zero so the bound holds exactly in decimal arithmetic.
func maxAffordable(cash, price, costRate decimal.Decimal) decimal.Decimal {
	if cash.Sign() <= 0 {
		return decimal.Zero
	}
	unitCost := price.Mul(one.Add(costRate))
	q, _ := cash.QuoRem(unitCost, 16)
	return q
}
