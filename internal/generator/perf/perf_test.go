package perf

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestTrackerAggregates(t *testing.T) {
	tracker := NewTracker()

	tracker.Record("generate", 100, 10*time.Millisecond)
	tracker.Record("generate", 100, 30*time.Millisecond)
	tracker.Record("write", 0, 5*time.Millisecond)

	report := tracker.Report()
	require.Len(t, report.Metrics, 2)

	gen := report.Metrics[0]
	require.Equal(t, "generate", gen.Name)
	require.Equal(t, 2, gen.Count)
	require.Equal(t, 200, gen.Rows)
	require.Equal(t, 40*time.Millisecond, gen.Total)
	require.Equal(t, 10*time.Millisecond, gen.Min)
	require.Equal(t, 30*time.Millisecond, gen.Max)

	require.Equal(t, "write", report.Metrics[1].Name)
	require.Greater(t, report.RowsPerSec, float64(0))
}

func TestMeasurePropagatesError(t *testing.T) {
	tracker := NewTracker()

	wantErr := errors.New("boom")
	err := tracker.Measure("op", 1, func() error { return wantErr })
	require.ErrorIs(t, err, wantErr)

	report := tracker.Report()
	require.Len(t, report.Metrics, 1)
	require.Equal(t, 1, report.Metrics[0].Count)
}
