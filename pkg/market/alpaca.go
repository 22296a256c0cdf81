package market

import (
	"fmt"
	"os"
	"time"

	alpacadata "github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

// HistoricalData supplies the price series a backtest runs against.
type HistoricalData interface {
	// GetPriceSeries returns one closing price per interval for the symbol
	// over [start, end], ordered by timestamp.
	GetPriceSeries(symbol string, interval Interval, start, end time.Time) (PriceSeries, error)
}

// AlpacaHistoricalData implements HistoricalData on top of the Alpaca
// market data API.
type AlpacaHistoricalData struct {
	client *alpacadata.Client
}

// NewAlpacaHistoricalData creates an Alpaca market data client using
// credentials from the environment.
func NewAlpacaHistoricalData() (*AlpacaHistoricalData, error) {
	apiKey := os.Getenv("ALPACA_API_KEY")
	secretKey := os.Getenv("ALPACA_SECRET_KEY")

	if apiKey == "" || secretKey == "" {
		return nil, fmt.Errorf("ALPACA_API_KEY and ALPACA_SECRET_KEY must be set")
	}

	client := alpacadata.NewClient(alpacadata.ClientOpts{
		APIKey:    apiKey,
		APISecret: secretKey,
	})

	return &AlpacaHistoricalData{client: client}, nil
}

// GetPriceSeries fetches historical bars and converts them into a validated
// price series of closing prices.
func (a *AlpacaHistoricalData) GetPriceSeries(symbol string, interval Interval, start, end time.Time) (PriceSeries, error) {
	if err := ValidateRange(start, end); err != nil {
		return nil, err
	}

	timeFrame, err := interval.timeFrame()
	if err != nil {
		return nil, err
	}

	bars, err := a.client.GetBars(symbol, alpacadata.GetBarsRequest{
		Start:     start,
		End:       end,
		TimeFrame: timeFrame,
	})
	if err != nil {
		return nil, fmt.Errorf("error getting historical bars for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no data found for %s between %s and %s with interval %q",
			symbol, start.Format("2006-01-02"), end.Format("2006-01-02"), interval)
	}

	series := make(PriceSeries, 0, len(bars))
	for _, bar := range bars {
		series = append(series, PricePoint{
			Timestamp: bar.Timestamp.UTC(),
			Price:     decimal.NewFromFloat(bar.Close),
		})
	}

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("bad data for %s: %w", symbol, err)
	}
	return series, nil
}

func (i Interval) timeFrame() (alpacadata.TimeFrame, error) {
	switch i {
	case Interval1Min:
		return alpacadata.OneMin, nil
	case Interval2Min:
		return alpacadata.NewTimeFrame(2, alpacadata.Min), nil
	case Interval5Min:
		return alpacadata.NewTimeFrame(5, alpacadata.Min), nil
	case Interval15Min:
		return alpacadata.NewTimeFrame(15, alpacadata.Min), nil
	case Interval30Min:
		return alpacadata.NewTimeFrame(30, alpacadata.Min), nil
	case Interval1Hour:
		return alpacadata.OneHour, nil
	case Interval1Day:
		return alpacadata.OneDay, nil
	case Interval1Week:
		return alpacadata.OneWeek, nil
	case Interval1Mon:
		return alpacadata.OneMonth, nil
	default:
		return alpacadata.TimeFrame{}, fmt.Errorf("%w: %q", ErrInvalidInterval, i)
	}
}
