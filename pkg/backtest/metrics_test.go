package backtest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backtestbay/backtestbay/pkg/strategy"
)

func trajectoryFromEquities(initialCash string, equities ...string) *Trajectory {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	traj := &Trajectory{InitialCash: d(initialCash)}
	for i, e := range equities {
		traj.Snapshots = append(traj.Snapshots, Snapshot{
			Timestamp: base.AddDate(0, 0, i),
			Cash:      d(e),
			Equity:    d(e),
		})
	}
	return traj
}

func TestEvaluateTotalReturn(t *testing.T) {
	tests := []struct {
		name        string
		initialCash string
		equities    []string
		want        float64
	}{
		{
			name:        "five percent gain",
			initialCash: "100",
			equities:    []string{"100", "102", "105"},
			want:        0.05,
		},
		{
			name:        "ten percent loss",
			initialCash: "1000",
			equities:    []string{"1000", "950", "900"},
			want:        -0.10,
		},
		{
			name:        "flat",
			initialCash: "500",
			equities:    []string{"500", "500"},
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Evaluate(trajectoryFromEquities(tt.initialCash, tt.equities...))

			assert.InDelta(t, tt.want, m.TotalReturn, 1e-12)
		})
	}
}

func TestEvaluateMaxDrawdown(t *testing.T) {
	tests := []struct {
		name     string
		equities []string
		want     float64
	}{
		{
			name:     "no drawdown on monotonic rise",
			equities: []string{"100", "110", "120"},
			want:     0,
		},
		{
			name:     "drawdown from running max",
			equities: []string{"100", "120", "90", "105"},
			want:     0.25, // 1 - 90/120
		},
		{
			name:     "drawdown measured against earlier peak",
			equities: []string{"100", "80", "95", "60"},
			want:     0.40, // 1 - 60/100
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Evaluate(trajectoryFromEquities("100", tt.equities...))

			assert.InDelta(t, tt.want, m.MaxDrawdown, 1e-12)
		})
	}
}

func TestEvaluateSingleStepTrajectory(t *testing.T) {
	m := Evaluate(trajectoryFromEquities("100", "100"))

	assert.Zero(t, m.TotalReturn)
	assert.Zero(t, m.MaxDrawdown)
	assert.Zero(t, m.Volatility)
	assert.Zero(t, m.SharpeRatio)
	assert.Zero(t, m.TradeCount)
	assert.True(t, m.TotalCost.IsZero())
}

func TestEvaluateCountsTradesAndCosts(t *testing.T) {
	traj, err := Simulate(
		series("100", "110", "105"),
		[]strategy.Signal{strategy.Long, strategy.Long, strategy.Flat},
		testConfig(),
	)
	require.NoError(t, err)

	m := Evaluate(traj)

	assert.Equal(t, 3, m.TradeCount)
	// 5 + 0.275 + 4.9875 across the three executions.
	assert.True(t, m.TotalCost.Equal(d("10.2625")), "total cost: %s", m.TotalCost)
	assert.True(t, m.FinalEquity.Equal(d("1015.9875")))
}

func TestEvaluateDoesNotMutateTrajectory(t *testing.T) {
	traj := trajectoryFromEquities("100", "100", "110", "90")
	before := make([]Snapshot, len(traj.Snapshots))
	copy(before, traj.Snapshots)

	_ = Evaluate(traj)

	assert.Equal(t, before, traj.Snapshots)
	assert.True(t, traj.InitialCash.Equal(decimal.RequireFromString("100")))
}

func TestEvaluateVolatility(t *testing.T) {
	m := Evaluate(trajectoryFromEquities("100", "100", "110", "95"))

	// Returns are +10% and -13.64%; sample standard deviation is 0.1671...
	assert.Greater(t, m.Volatility, 0.0)
	assert.InDelta(t, 0.1671, m.Volatility, 0.001)
	assert.Less(t, m.SharpeRatio, 0.0)
}
