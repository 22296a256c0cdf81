package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backtestbay/backtestbay/pkg/config"
	"github.com/backtestbay/backtestbay/pkg/logger"
	"github.com/backtestbay/backtestbay/pkg/market"
	"github.com/backtestbay/backtestbay/pkg/pipeline"
)

var (
	configPath string
	outputDir  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full backtest pipeline from a config file",
	Long: `Run backtests for every combination of configured symbols, date ranges
and strategies. Each combination is simulated independently; a failed run
is reported and skipped without aborting the others.

Example:
  backtestbay run --config backtestbay.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if outputDir != "" {
			cfg.OutputDir = outputDir
		}

		log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})

		engineCfg, err := cfg.Engine()
		if err != nil {
			return err
		}

		jobs, err := cfg.Jobs()
		if err != nil {
			return err
		}

		data, err := market.NewAlpacaHistoricalData()
		if err != nil {
			return fmt.Errorf("error creating market data client: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info().Int("runs", len(jobs)).Str("output", cfg.OutputDir).Msg("starting pipeline")

		p := pipeline.New(pipeline.Options{
			Data:      data,
			Engine:    engineCfg,
			Log:       log,
			Workers:   cfg.Workers,
			OutputDir: cfg.OutputDir,
		})
		results := p.Run(ctx, jobs)

		pipeline.WriteSummary(os.Stdout, results)

		failed := 0
		for _, res := range results {
			if res.Err != nil {
				failed++
			}
		}
		if failed > 0 {
			log.Warn().Int("failed", failed).Int("total", len(results)).Msg("some runs failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&configPath, "config", "backtestbay.yaml", "Path to config file")
	runCmd.Flags().StringVar(&outputDir, "output", "", "Override output directory for trajectory files")
}
