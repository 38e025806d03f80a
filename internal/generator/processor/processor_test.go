package processor

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/genxdata/genxdata/internal/generator/logger/handlers"
	"github.com/genxdata/genxdata/internal/generator/models"
)

func parseConfig(t *testing.T, yaml string) *models.GenerationConfig {
	t.Helper()

	cfg := &models.GenerationConfig{}
	require.NoError(t, cfg.ParseFromYAML([]byte(yaml)))

	return cfg
}

func TestNormalProcessorEndToEnd(t *testing.T) {
	cfg := parseConfig(t, `
metadata:
  name: users
column_name: [id, first, last, full]
num_of_rows: 120
configs:
  - column_names: [id]
    strategy:
      name: SERIES_STRATEGY
      params: {start: 1, step: 1}
      unique: true
  - column_names: [first]
    strategy:
      name: RANDOM_NAME_STRATEGY
      params: {name_type: first, seed: 1}
  - column_names: [last]
    strategy:
      name: RANDOM_NAME_STRATEGY
      params: {name_type: last, seed: 2}
  - column_names: [full]
    strategy:
      name: CONCAT_STRATEGY
      params:
        lhs_col: first
        rhs_col: last
        separator: " "
file_writer:
  type: csv
  params: {output_path: users.csv}
`)

	fs := afero.NewMemMapFs()
	result, err := NewNormalProcessor(cfg, handlers.DummyLogger, fs).Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, StatusSuccess, result.Status)
	require.Equal(t, TypeNormal, result.ProcessorType)
	require.Equal(t, "users", result.ConfigName)
	require.Equal(t, 120, result.RowsGenerated)
	require.Equal(t, 4, result.ColumnsGenerated)
	require.Equal(t, []string{"id", "first", "last", "full"}, result.ColumnNames)
	require.Equal(t, 120, result.WriterSummary.RowsWritten)
	require.NotNil(t, result.Performance)

	data, err := afero.ReadFile(fs, "users.csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 121)
	require.Equal(t, "id,first,last,full", lines[0])

	fields := strings.Split(lines[1], ",")
	require.Equal(t, "1", fields[0])
	require.Equal(t, fields[1]+" "+fields[2], fields[3])
}

func TestNormalProcessorRowFloor(t *testing.T) {
	cfg := parseConfig(t, `
column_name: [id]
num_of_rows: 7
configs:
  - column_names: [id]
    strategy: {name: UUID_STRATEGY}
file_writer:
  type: devnull
`)

	result, err := NewNormalProcessor(cfg, handlers.DummyLogger, afero.NewMemMapFs()).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.MinimumRowsAllowed, result.RowsGenerated)
}

func TestNormalProcessorDropsIntermediate(t *testing.T) {
	cfg := parseConfig(t, `
column_name: [raw, final]
num_of_rows: 100
configs:
  - column_names: [raw]
    strategy:
      name: SERIES_STRATEGY
    intermediate: true
  - column_names: [final]
    strategy:
      name: CONCAT_STRATEGY
      params:
        lhs_col: raw
        rhs_col: raw
        separator: "-"
file_writer:
  type: devnull
`)

	result, err := NewNormalProcessor(cfg, handlers.DummyLogger, afero.NewMemMapFs()).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"final"}, result.ColumnNames)
	require.Equal(t, 1, result.ColumnsGenerated)
}

func TestNormalProcessorSkipsDisabled(t *testing.T) {
	cfg := parseConfig(t, `
column_name: [a, b]
num_of_rows: 100
configs:
  - column_names: [a]
    strategy: {name: UUID_STRATEGY}
  - column_names: [b]
    strategy: {name: NOT_A_REAL_STRATEGY}
    disabled: true
file_writer:
  type: devnull
`)

	result, err := NewNormalProcessor(cfg, handlers.DummyLogger, afero.NewMemMapFs()).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, result.Status)
}

func TestNormalProcessorFailsOnUnknownStrategy(t *testing.T) {
	cfg := parseConfig(t, `
column_name: [a]
num_of_rows: 100
configs:
  - column_names: [a]
    strategy: {name: NOT_A_REAL_STRATEGY}
file_writer:
  type: devnull
`)

	result, err := NewNormalProcessor(cfg, handlers.DummyLogger, afero.NewMemMapFs()).Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), `column "a"`)
	require.Equal(t, StatusError, result.Status)
	require.NotEmpty(t, result.Error)
}

func TestStreamingProcessorBatchFiles(t *testing.T) {
	cfg := parseConfig(t, `
metadata:
  name: orders
column_name: [id]
num_of_rows: 250
configs:
  - column_names: [id]
    strategy:
      name: SERIES_STRATEGY
      unique: true
batch:
  chunk_size: 100
  batch_size: 50
  file_writer:
    type: csv
    params: {output_path: "orders_{batch_index}.csv"}
`)

	fs := afero.NewMemMapFs()

	p := NewStreamingProcessor(cfg, handlers.DummyLogger, fs)

	var progress []int
	p.OnProgress = func(done, total int) {
		progress = append(progress, done)
		require.Equal(t, 250, total)
	}

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, StatusSuccess, result.Status)
	require.Equal(t, TypeStreaming, result.ProcessorType)
	require.Equal(t, 250, result.RowsGenerated)
	require.Equal(t, 3, result.ChunksProcessed)
	require.Equal(t, 100, result.ChunkSize)
	require.Equal(t, 50, result.BatchSize)
	require.Equal(t, []int{100, 200, 250}, progress)
	require.Equal(t, 250, result.WriterSummary.RowsWritten)
	require.Len(t, result.WriterSummary.Destinations, 5)

	// sequence continues across chunk boundaries
	next := int64(1)

	for batch := 1; batch <= 5; batch++ {
		data, err := afero.ReadFile(fs, "orders_"+strconv.Itoa(batch)+".csv")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Equal(t, "id", lines[0])

		for _, line := range lines[1:] {
			require.Equal(t, strconv.FormatInt(next, 10), line)
			next++
		}
	}

	require.Equal(t, int64(251), next)
}

func TestStreamingProcessorLastChunkShrinks(t *testing.T) {
	cfg := parseConfig(t, `
column_name: [id]
num_of_rows: 130
configs:
  - column_names: [id]
    strategy: {name: SERIES_STRATEGY}
batch:
  chunk_size: 60
  batch_size: 60
  file_writer:
    type: devnull
`)

	result, err := NewStreamingProcessor(cfg, handlers.DummyLogger, afero.NewMemMapFs()).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 130, result.RowsGenerated)
	require.Equal(t, 3, result.ChunksProcessed)
	require.Equal(t, 3, result.WriterSummary.Writes)
}

func TestStreamingProcessorCancellation(t *testing.T) {
	cfg := parseConfig(t, `
column_name: [id]
num_of_rows: 1000
configs:
  - column_names: [id]
    strategy: {name: SERIES_STRATEGY}
batch:
  chunk_size: 10
  batch_size: 10
  file_writer:
    type: devnull
`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewStreamingProcessor(cfg, handlers.DummyLogger, afero.NewMemMapFs()).Run(ctx)
	require.Error(t, err)
	require.Equal(t, StatusError, result.Status)
}

func TestNewPicksProcessor(t *testing.T) {
	normal := parseConfig(t, `
column_name: [a]
num_of_rows: 100
configs:
  - column_names: [a]
    strategy: {name: UUID_STRATEGY}
file_writer: {type: devnull}
`)

	chunked := parseConfig(t, `
column_name: [a]
num_of_rows: 100
configs:
  - column_names: [a]
    strategy: {name: UUID_STRATEGY}
batch:
  file_writer: {type: devnull}
`)

	require.IsType(t, &NormalProcessor{}, New(normal, handlers.DummyLogger, afero.NewMemMapFs()))
	require.IsType(t, &StreamingProcessor{}, New(chunked, handlers.DummyLogger, afero.NewMemMapFs()))
}
