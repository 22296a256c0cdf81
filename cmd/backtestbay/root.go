package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backtestbay",
	Short: "Backtestbay evaluates trading strategies against historical prices",
	Long: `Backtestbay downloads historical price series, generates trading signals
from a catalog of rule-based strategies, and simulates the resulting
portfolio trajectory under transaction costs and position-sizing
constraints. Results are reported as performance metrics and per-run
trajectory files for plotting.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
