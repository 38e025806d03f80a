// Package perf collects coarse per-operation timings for a generation
// run and renders them into the report attached to processor results.
package perf

import (
	"sort"
	"time"
)

// Metric type accumulates timing for one named operation.
type Metric struct {
	Name  string        `json:"name"       yaml:"name"`
	Count int           `json:"count"      yaml:"count"`
	Total time.Duration `json:"total_ns"   yaml:"total_ns"`
	Min   time.Duration `json:"min_ns"     yaml:"min_ns"`
	Max   time.Duration `json:"max_ns"     yaml:"max_ns"`
	Rows  int           `json:"rows"       yaml:"rows"`
}

// Report type is the ordered summary of a run.
type Report struct {
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	Elapsed    time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
	RowsPerSec float64       `json:"rows_per_sec" yaml:"rows_per_sec"`
	Metrics    []*Metric     `json:"metrics"    yaml:"metrics"`
}

// Tracker type measures named operations. Zero value is not usable,
// construct with NewTracker.
type Tracker struct {
	startedAt time.Time
	metrics   map[string]*Metric
	rows      int
}

func NewTracker() *Tracker {
	return &Tracker{
		startedAt: time.Now(),
		metrics:   make(map[string]*Metric),
	}
}

// Measure times fn under the given operation name, attributing rows
// processed rows to it.
func (t *Tracker) Measure(name string, rows int, fn func() error) error {
	start := time.Now()
	err := fn()
	t.Record(name, rows, time.Since(start))

	return err
}

// Record adds one observation for name.
func (t *Tracker) Record(name string, rows int, elapsed time.Duration) {
	m, ok := t.metrics[name]
	if !ok {
		m = &Metric{Name: name, Min: elapsed, Max: elapsed}
		t.metrics[name] = m
	}

	m.Count++
	m.Total += elapsed
	m.Rows += rows

	if elapsed < m.Min {
		m.Min = elapsed
	}

	if elapsed > m.Max {
		m.Max = elapsed
	}

	t.rows += rows
}

// Report snapshots the collected metrics sorted by operation name.
func (t *Tracker) Report() *Report {
	elapsed := time.Since(t.startedAt)

	metrics := make([]*Metric, 0, len(t.metrics))
	for _, m := range t.metrics {
		metrics = append(metrics, m)
	}

	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Name < metrics[j].Name })

	rps := float64(0)
	if elapsed > 0 {
		rps = float64(t.rows) / elapsed.Seconds()
	}

	return &Report{
		StartedAt:  t.startedAt,
		Elapsed:    elapsed,
		RowsPerSec: rps,
		Metrics:    metrics,
	}
}
