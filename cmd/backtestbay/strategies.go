package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backtestbay/backtestbay/pkg/strategy"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the strategy catalog",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range strategy.Names() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}
