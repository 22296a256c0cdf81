package backtest

import (
	"github.com/shopspring/decimal"

	"github.com/backtestbay/backtestbay/pkg/strategy"
)

// TargetPosition translates a directional signal into a target quantity.
// Long targets tradePct of current equity at the current price, Short the
// negative of that magnitude, Flat zero. Sizing off current equity means
// position size compounds with gains and losses.
//
// Pure function. A non-positive equity (possible after an adverse move
// against a short) always targets zero, so sizing never inverts direction.
func TargetPosition(signal strategy.Signal, equity, price, tradePct decimal.Decimal) decimal.Decimal {
	if equity.Sign() <= 0 {
		return decimal.Zero
	}

	switch signal {
	case strategy.Long:
		return tradePct.Mul(equity).Div(price)
	case strategy.Short:
		return tradePct.Mul(equity).Div(price).Neg()
	default:
		return decimal.Zero
	}
}
