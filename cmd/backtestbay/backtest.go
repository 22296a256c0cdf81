package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/backtestbay/backtestbay/pkg/backtest"
	"github.com/backtestbay/backtestbay/pkg/logger"
	"github.com/backtestbay/backtestbay/pkg/market"
	"github.com/backtestbay/backtestbay/pkg/pipeline"
	"github.com/backtestbay/backtestbay/pkg/strategy"
)

var (
	btSymbol      string
	btStrategy    string
	btStart       string
	btEnd         string
	btInterval    string
	btInitialCash float64
	btCostRate    float64
	btTradePct    float64
	btCSVPath     string
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a single backtest for one symbol and strategy",
	Long: `Run one backtest combination and print its performance metrics.

Example:
  backtestbay backtest --symbol AAPL --strategy bollinger \
    --start 2022-01-01 --end 2025-01-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		strat, err := strategy.ParseName(btStrategy)
		if err != nil {
			return err
		}
		interval, err := market.ParseInterval(btInterval)
		if err != nil {
			return err
		}
		start, err := time.Parse("2006-01-02", btStart)
		if err != nil {
			return fmt.Errorf("error parsing start date: %w", err)
		}
		end, err := time.Parse("2006-01-02", btEnd)
		if err != nil {
			return fmt.Errorf("error parsing end date: %w", err)
		}

		engineCfg := backtest.Config{
			InitialCash: decimal.NewFromFloat(btInitialCash),
			CostRate:    decimal.NewFromFloat(btCostRate),
			TradePct:    decimal.NewFromFloat(btTradePct),
		}
		if err := engineCfg.Validate(); err != nil {
			return err
		}

		data, err := market.NewAlpacaHistoricalData()
		if err != nil {
			return fmt.Errorf("error creating market data client: %w", err)
		}

		log := logger.New(logger.Config{Level: "info", Pretty: true})
		p := pipeline.New(pipeline.Options{
			Data:    data,
			Engine:  engineCfg,
			Log:     log,
			Workers: 1,
		})

		job := pipeline.Params{
			Symbol:   btSymbol,
			Start:    start,
			End:      end,
			Interval: interval,
			Strategy: strat,
		}
		results := p.Run(cmd.Context(), []pipeline.Params{job})

		res := results[0]
		if res.Err != nil {
			return res.Err
		}

		if btCSVPath != "" {
			f, err := os.Create(btCSVPath)
			if err != nil {
				return fmt.Errorf("error creating %s: %w", btCSVPath, err)
			}
			defer f.Close()
			if err := res.Trajectory.WriteCSV(f); err != nil {
				return err
			}
			fmt.Printf("Wrote trajectory to %s\n", btCSVPath)
		}

		pipeline.WriteSummary(os.Stdout, results)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVar(&btSymbol, "symbol", "", "Ticker symbol to backtest")
	backtestCmd.Flags().StringVar(&btStrategy, "strategy", "", "Strategy name from the catalog")
	backtestCmd.Flags().StringVar(&btStart, "start", "", "Start date (YYYY-MM-DD)")
	backtestCmd.Flags().StringVar(&btEnd, "end", "", "End date (YYYY-MM-DD)")
	backtestCmd.Flags().StringVar(&btInterval, "interval", "1d", "Sampling interval")
	backtestCmd.Flags().Float64Var(&btInitialCash, "initial-cash", 10000, "Initial cash")
	backtestCmd.Flags().Float64Var(&btCostRate, "cost-rate", 0.005, "Transaction cost rate, fraction of traded notional")
	backtestCmd.Flags().Float64Var(&btTradePct, "trade-pct", 0.05, "Fraction of equity per full-size trade")
	backtestCmd.Flags().StringVar(&btCSVPath, "csv", "", "Write the trajectory to this CSV file")

	backtestCmd.MarkFlagRequired("symbol")
	backtestCmd.MarkFlagRequired("strategy")
	backtestCmd.MarkFlagRequired("start")
	backtestCmd.MarkFlagRequired("end")
}
