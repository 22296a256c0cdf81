package market

import (
	"errors"
	"fmt"
	"time"
)

// Interval is the sampling interval of a price series.
type Interval string

const (
	Interval1Min  Interval = "1m"
	Interval2Min  Interval = "2m"
	Interval5Min  Interval = "5m"
	Interval15Min Interval = "15m"
	Interval30Min Interval = "30m"
	Interval1Hour Interval = "1h"
	Interval1Day  Interval = "1d"
	Interval1Week Interval = "1wk"
	Interval1Mon  Interval = "1mo"
)

// ErrInvalidInterval is returned when an interval string is not in the
// supported set.
var ErrInvalidInterval = errors.New("invalid interval")

var validIntervals = map[Interval]struct{}{
	Interval1Min:  {},
	Interval2Min:  {},
	Interval5Min:  {},
	Interval15Min: {},
	Interval30Min: {},
	Interval1Hour: {},
	Interval1Day:  {},
	Interval1Week: {},
	Interval1Mon:  {},
}

// ParseInterval validates an interval string against the supported set.
func ParseInterval(s string) (Interval, error) {
	iv := Interval(s)
	if _, ok := validIntervals[iv]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidInterval, s)
	}
	return iv, nil
}

// ValidateRange checks that the requested date range is well formed.
func ValidateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errors.New("start and end dates must be set")
	}
	if !start.Before(end) {
		return fmt.Errorf("start date %s must be before end date %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return nil
}
