package backtest

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidConfig is returned when an engine parameter is out of range.
var ErrInvalidConfig = errors.New("invalid backtest config")

// Config holds the engine parameters for one simulation run.
type Config struct {
	// InitialCash is the cash the portfolio starts with. Must be > 0.
	InitialCash decimal.Decimal

	// CostRate is the fraction of traded notional charged on every
	// executed trade. Must be in [0, 1).
	CostRate decimal.Decimal

	// TradePct is the fraction of current equity targeted per full-size
	// trade. Must be in (0, 1].
	TradePct decimal.Decimal
}

var one = decimal.NewFromInt(1)

// Validate checks the parameter ranges.
func (c Config) Validate() error {
	if c.InitialCash.Sign() <= 0 {
		return fmt.Errorf("%w: initial cash must be positive, got %s", ErrInvalidConfig, c.InitialCash)
	}
	if c.CostRate.Sign() < 0 || c.CostRate.GreaterThanOrEqual(one) {
		return fmt.Errorf("%w: transaction cost rate must be in [0, 1), got %s", ErrInvalidConfig, c.CostRate)
	}
	if c.TradePct.Sign() <= 0 || c.TradePct.GreaterThan(one) {
		return fmt.Errorf("%w: trade pct must be in (0, 1], got %s", ErrInvalidConfig, c.TradePct)
	}
	return nil
}
