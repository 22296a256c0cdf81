package market

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptySeries is returned when a series has no data points.
	ErrEmptySeries = errors.New("price series is empty")

	// ErrUnorderedSeries is returned when timestamps are not strictly increasing.
	ErrUnorderedSeries = errors.New("price series timestamps must be strictly increasing")

	// ErrNonPositivePrice is returned when a series contains a price <= 0.
	ErrNonPositivePrice = errors.New("price series contains a non-positive price")
)

// PricePoint is a single observation of an asset price at a point in time.
type PricePoint struct {
	Timestamp time.Time
	Price     decimal.Decimal
}

// PriceSeries is an ordered sequence of price observations, one per sampling
// interval. It is treated as immutable once built.
type PriceSeries []PricePoint

// Validate checks that the series is non-empty, strictly ordered in time and
// contains only positive prices.
func (s PriceSeries) Validate() error {
	if len(s) == 0 {
		return ErrEmptySeries
	}
	for i, pt := range s {
		if pt.Price.Sign() <= 0 {
			return fmt.Errorf("%w: %s at %s", ErrNonPositivePrice,
				pt.Price, pt.Timestamp.Format(time.RFC3339))
		}
		if i > 0 && !pt.Timestamp.After(s[i-1].Timestamp) {
			return fmt.Errorf("%w: %s does not follow %s", ErrUnorderedSeries,
				pt.Timestamp.Format(time.RFC3339), s[i-1].Timestamp.Format(time.RFC3339))
		}
	}
	return nil
}

// Closes returns the price column as float64 values for indicator math.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, pt := range s {
		closes[i] = pt.Price.InexactFloat64()
	}
	return closes
}
