package pipeline

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteSummary renders a metrics table across all results, one row per run.
func WriteSummary(w io.Writer, results []Result) {
	table := tablewriter.NewWriter(w)
	table.Header("Symbol", "Strategy", "Interval", "Start", "End",
		"Final Equity", "Return %", "Max DD %", "Volatility", "Trades", "Costs", "Status")

	for _, res := range results {
		if res.Err != nil {
			table.Append(res.Params.Symbol,
				string(res.Params.Strategy),
				string(res.Params.Interval),
				res.Params.Start.Format("2006-01-02"),
				res.Params.End.Format("2006-01-02"),
				"-", "-", "-", "-", "-", "-",
				res.Err.Error())
			continue
		}

		m := res.Metrics
		table.Append(res.Params.Symbol,
			string(res.Params.Strategy),
			string(res.Params.Interval),
			res.Params.Start.Format("2006-01-02"),
			res.Params.End.Format("2006-01-02"),
			"$"+m.FinalEquity.StringFixed(2),
			fmt.Sprintf("%.2f", m.TotalReturn*100),
			fmt.Sprintf("%.2f", m.MaxDrawdown*100),
			fmt.Sprintf("%.4f", m.Volatility),
			fmt.Sprintf("%d", m.TradeCount),
			"$"+m.TotalCost.StringFixed(2),
			"ok")
	}

	table.Render()
}
