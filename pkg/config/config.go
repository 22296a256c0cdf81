package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/backtestbay/backtestbay/pkg/backtest"
	"github.com/backtestbay/backtestbay/pkg/market"
	"github.com/backtestbay/backtestbay/pkg/pipeline"
	"github.com/backtestbay/backtestbay/pkg/strategy"
)

// DateLayout is the format of start/end dates in config files.
const DateLayout = "2006-01-02"

// DataConfig selects one symbol and date range to backtest.
type DataConfig struct {
	Symbol   string `mapstructure:"symbol"`
	Start    string `mapstructure:"start"`
	End      string `mapstructure:"end"`
	Interval string `mapstructure:"interval"`
}

// Config is the full configuration surface of a pipeline run.
type Config struct {
	InitialCash float64      `mapstructure:"initial_cash"`
	CostRate    float64      `mapstructure:"transaction_cost_rate"`
	TradePct    float64      `mapstructure:"trade_pct"`
	Strategies  []string     `mapstructure:"strategies"`
	Data        []DataConfig `mapstructure:"data"`
	OutputDir   string       `mapstructure:"output_dir"`
	LogLevel    string       `mapstructure:"log_level"`
	Workers     int          `mapstructure:"workers"`
}

// Load reads configuration from a file, with environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvPrefix("BACKTESTBAY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("initial_cash", 10000.0)
	v.SetDefault("transaction_cost_rate", 0.005)
	v.SetDefault("trade_pct", 0.05)
	v.SetDefault("strategies", []string{"bollinger", "macd", "roc", "rsi"})
	v.SetDefault("output_dir", "bld")
	v.SetDefault("log_level", "info")
	v.SetDefault("workers", 4)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks all configured values before any run starts.
func (c *Config) Validate() error {
	if _, err := c.Engine(); err != nil {
		return err
	}
	if len(c.Strategies) == 0 {
		return fmt.Errorf("at least one strategy must be configured")
	}
	for _, name := range c.Strategies {
		if _, err := strategy.ParseName(name); err != nil {
			return err
		}
	}
	if len(c.Data) == 0 {
		return fmt.Errorf("at least one data entry must be configured")
	}
	for i, d := range c.Data {
		if d.Symbol == "" {
			return fmt.Errorf("data[%d]: symbol must be set", i)
		}
		if _, err := market.ParseInterval(d.Interval); err != nil {
			return fmt.Errorf("data[%d]: %w", i, err)
		}
		start, end, err := d.dates()
		if err != nil {
			return fmt.Errorf("data[%d]: %w", i, err)
		}
		if err := market.ValidateRange(start, end); err != nil {
			return fmt.Errorf("data[%d]: %w", i, err)
		}
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// Engine converts the configured engine parameters, validating their ranges.
func (c *Config) Engine() (backtest.Config, error) {
	cfg := backtest.Config{
		InitialCash: decimal.NewFromFloat(c.InitialCash),
		CostRate:    decimal.NewFromFloat(c.CostRate),
		TradePct:    decimal.NewFromFloat(c.TradePct),
	}
	if err := cfg.Validate(); err != nil {
		return backtest.Config{}, err
	}
	return cfg, nil
}

// Jobs expands the configured data entries and strategies into the
// cross-product of pipeline runs.
func (c *Config) Jobs() ([]pipeline.Params, error) {
	var jobs []pipeline.Params
	for _, d := range c.Data {
		start, end, err := d.dates()
		if err != nil {
			return nil, err
		}
		interval, err := market.ParseInterval(d.Interval)
		if err != nil {
			return nil, err
		}
		for _, name := range c.Strategies {
			strat, err := strategy.ParseName(name)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, pipeline.Params{
				Symbol:   d.Symbol,
				Start:    start,
				End:      end,
				Interval: interval,
				Strategy: strat,
			})
		}
	}
	return jobs, nil
}

func (d DataConfig) dates() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, d.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing start date: %w", err)
	}
	end, err := time.Parse(DateLayout, d.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing end date: %w", err)
	}
	return start, end, nil
}
