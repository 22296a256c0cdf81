package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backtestbay/backtestbay/pkg/backtest"
	"github.com/backtestbay/backtestbay/pkg/market"
	"github.com/backtestbay/backtestbay/pkg/strategy"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "backtestbay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

const validConfig = `
initial_cash: 5000
transaction_cost_rate: 0.01
trade_pct: 0.5
strategies: [bollinger, rsi]
output_dir: out
data:
  - symbol: AAPL
    start: 2022-01-01
    end: 2025-01-01
    interval: 1d
  - symbol: MSFT
    start: 2022-01-01
    end: 2025-01-01
    interval: 1d
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 5000.0, cfg.InitialCash)
	assert.Equal(t, 0.01, cfg.CostRate)
	assert.Equal(t, 0.5, cfg.TradePct)
	assert.Equal(t, []string{"bollinger", "rsi"}, cfg.Strategies)
	assert.Equal(t, "out", cfg.OutputDir)
	require.Len(t, cfg.Data, 2)
	assert.Equal(t, "AAPL", cfg.Data[0].Symbol)
}

func TestLoadDefaults(t *testing.T) {
	minimal := `
data:
  - symbol: AAPL
    start: 2022-01-01
    end: 2025-01-01
    interval: 1d
`
	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, 10000.0, cfg.InitialCash)
	assert.Equal(t, 0.005, cfg.CostRate)
	assert.Equal(t, 0.05, cfg.TradePct)
	assert.Equal(t, []string{"bollinger", "macd", "roc", "rsi"}, cfg.Strategies)
	assert.Equal(t, "bld", cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		wantErr  error
	}{
		{
			name: "unknown strategy",
			contents: `
strategies: [bollinger, hodl]
data:
  - {symbol: AAPL, start: 2022-01-01, end: 2025-01-01, interval: 1d}
`,
			wantErr: strategy.ErrUnknownStrategy,
		},
		{
			name: "bad interval",
			contents: `
data:
  - {symbol: AAPL, start: 2022-01-01, end: 2025-01-01, interval: 4h}
`,
			wantErr: market.ErrInvalidInterval,
		},
		{
			name: "trade pct out of range",
			contents: `
trade_pct: 1.5
data:
  - {symbol: AAPL, start: 2022-01-01, end: 2025-01-01, interval: 1d}
`,
			wantErr: backtest.ErrInvalidConfig,
		},
		{
			name: "negative cost rate",
			contents: `
transaction_cost_rate: -0.01
data:
  - {symbol: AAPL, start: 2022-01-01, end: 2025-01-01, interval: 1d}
`,
			wantErr: backtest.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.contents))

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{
			name:     "no data entries",
			contents: `initial_cash: 1000`,
		},
		{
			name: "missing symbol",
			contents: `
data:
  - {start: 2022-01-01, end: 2025-01-01, interval: 1d}
`,
		},
		{
			name: "start after end",
			contents: `
data:
  - {symbol: AAPL, start: 2025-01-01, end: 2022-01-01, interval: 1d}
`,
		},
		{
			name: "malformed date",
			contents: `
data:
  - {symbol: AAPL, start: 01/01/2022, end: 2025-01-01, interval: 1d}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.contents))

			require.Error(t, err)
		})
	}
}

func TestJobsCrossProduct(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	jobs, err := cfg.Jobs()
	require.NoError(t, err)

	// 2 data entries x 2 strategies.
	require.Len(t, jobs, 4)
	assert.Equal(t, "AAPL", jobs[0].Symbol)
	assert.Equal(t, strategy.Bollinger, jobs[0].Strategy)
	assert.Equal(t, strategy.RSI, jobs[1].Strategy)
	assert.Equal(t, "MSFT", jobs[2].Symbol)
	assert.Equal(t, market.Interval1Day, jobs[3].Interval)
}

func TestEngineConversion(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	engineCfg, err := cfg.Engine()
	require.NoError(t, err)

	assert.True(t, engineCfg.InitialCash.Equal(engineCfg.InitialCash.Truncate(0)))
	assert.Equal(t, "5000", engineCfg.InitialCash.String())
	assert.Equal(t, "0.01", engineCfg.CostRate.String())
	assert.Equal(t, "0.5", engineCfg.TradePct.String())
}
