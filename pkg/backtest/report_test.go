package backtest

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backtestbay/backtestbay/pkg/strategy"
)

func TestWriteCSV(t *testing.T) {
	traj, err := Simulate(
		series("100", "110", "105"),
		[]strategy.Signal{strategy.Long, strategy.Long, strategy.Flat},
		testConfig(),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, traj.WriteCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + one row per timestamp

	assert.Equal(t, csvHeader, records[0])

	first := records[1]
	assert.Equal(t, "2024-01-02T00:00:00Z", first[0])
	assert.Equal(t, "100", first[1])
	assert.Equal(t, "LONG", first[2])
	assert.Equal(t, "5", first[3])

	last := records[3]
	assert.Equal(t, "FLAT", last[2])
	assert.Equal(t, "0", last[3])
	assert.Equal(t, "1015.9875", last[6])
}
