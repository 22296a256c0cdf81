package backtest

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

var csvHeader = []string{"timestamp", "price", "signal", "position", "holdings", "cash", "equity"}

// WriteCSV renders the trajectory in a stable tabular shape, one row per
// timestamp. This is the output contract for downstream plotting.
func (t *Trajectory) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("error writing trajectory header: %w", err)
	}

	for _, snap := range t.Snapshots {
		row := []string{
			snap.Timestamp.Format(time.RFC3339),
			snap.Price.String(),
			snap.Signal.String(),
			snap.Position.String(),
			snap.Holdings.String(),
			snap.Cash.String(),
			snap.Equity.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("error writing trajectory row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
