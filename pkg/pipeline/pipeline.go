package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/backtestbay/backtestbay/pkg/backtest"
	"github.com/backtestbay/backtestbay/pkg/market"
	"github.com/backtestbay/backtestbay/pkg/strategy"
)

// Params identifies one backtest run: a symbol, date range, sampling
// interval and strategy.
type Params struct {
	Symbol   string
	Start    time.Time
	End      time.Time
	Interval market.Interval
	Strategy strategy.Name
}

// ID returns a stable identifier for the run, used for output file names.
func (p Params) ID() string {
	return fmt.Sprintf("%s_%s_%s_%s_%s",
		p.Symbol,
		p.Start.Format("2006-01-02"),
		p.End.Format("2006-01-02"),
		p.Interval,
		p.Strategy,
	)
}

// dataKey identifies the price series a run needs, independent of strategy,
// so runs over the same series share one download.
func (p Params) dataKey() string {
	return fmt.Sprintf("%s_%s_%s_%s",
		p.Symbol,
		p.Start.Format("2006-01-02"),
		p.End.Format("2006-01-02"),
		p.Interval,
	)
}

// Result is the outcome of one run. Err is set when the run failed; a
// failed run never carries a trajectory.
type Result struct {
	RunID      uuid.UUID
	Params     Params
	Trajectory *backtest.Trajectory
	Metrics    backtest.Metrics
	Err        error
}

// Options configures a Pipeline.
type Options struct {
	Data      market.HistoricalData
	Engine    backtest.Config
	Log       zerolog.Logger
	Workers   int
	OutputDir string // empty disables trajectory files
}

// Pipeline runs the cross-product of configured symbols, date ranges and
// strategies. Runs are independent: each owns its portfolio state and
// trajectory, so they execute concurrently, and one run's failure never
// aborts its siblings.
type Pipeline struct {
	data      market.HistoricalData
	engine    backtest.Config
	log       zerolog.Logger
	workers   int
	outputDir string
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		data:      opts.Data,
		engine:    opts.Engine,
		log:       opts.Log,
		workers:   workers,
		outputDir: opts.OutputDir,
	}
}

// Run executes all jobs and returns one result per job, in job order.
// Data is fetched once per unique (symbol, range, interval) and shared by
// the strategies that run over it.
func (p *Pipeline) Run(ctx context.Context, jobs []Params) []Result {
	series := p.fetchSeries(ctx, jobs)

	results := make([]Result, len(jobs))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = p.runOne(ctx, jobs[i], series)
			}
		}()
	}

	for i := range jobs {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}

type fetched struct {
	series market.PriceSeries
	err    error
}

// fetchSeries downloads each unique price series once, sequentially. The
// engine itself never does I/O; all fetch latency lives here.
func (p *Pipeline) fetchSeries(ctx context.Context, jobs []Params) map[string]fetched {
	series := make(map[string]fetched)
	for _, job := range jobs {
		key := job.dataKey()
		if _, ok := series[key]; ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			series[key] = fetched{err: err}
			continue
		}

		p.log.Debug().Str("data", key).Msg("fetching price series")
		s, err := p.data.GetPriceSeries(job.Symbol, job.Interval, job.Start, job.End)
		if err != nil {
			p.log.Error().Err(err).Str("data", key).Msg("failed to fetch price series")
			series[key] = fetched{err: fmt.Errorf("fetching %s: %w", key, err)}
			continue
		}
		series[key] = fetched{series: s}
	}
	return series
}

func (p *Pipeline) runOne(ctx context.Context, job Params, series map[string]fetched) Result {
	res := Result{RunID: uuid.New(), Params: job}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	data := series[job.dataKey()]
	if data.err != nil {
		res.Err = data.err
		return res
	}

	signals, err := strategy.Generate(job.Strategy, data.series.Closes())
	if err != nil {
		res.Err = fmt.Errorf("run %s: %w", job.ID(), err)
		return res
	}

	traj, err := backtest.Simulate(data.series, signals, p.engine)
	if err != nil {
		p.log.Error().Err(err).Str("run", job.ID()).Msg("simulation failed")
		res.Err = fmt.Errorf("run %s: %w", job.ID(), err)
		return res
	}

	res.Trajectory = traj
	res.Metrics = backtest.Evaluate(traj)

	p.log.Info().
		Str("run", job.ID()).
		Str("final_equity", res.Metrics.FinalEquity.StringFixed(2)).
		Float64("total_return", res.Metrics.TotalReturn).
		Int("trades", res.Metrics.TradeCount).
		Msg("run complete")

	if p.outputDir != "" {
		if err := p.writeTrajectory(job, traj); err != nil {
			p.log.Error().Err(err).Str("run", job.ID()).Msg("failed to write trajectory")
			res.Err = err
		}
	}
	return res
}

func (p *Pipeline) writeTrajectory(job Params, traj *backtest.Trajectory) error {
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(p.outputDir, job.ID()+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := traj.WriteCSV(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
