package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
metadata:
  name: users
column_name: [id, name]
num_of_rows: 500
configs:
  - column_names: [id]
    strategy:
      name: SERIES_STRATEGY
      params:
        start: 1
        step: 1
      unique: true
  - column_names: [name]
    strategy:
      name: RANDOM_NAME_STRATEGY
file_writer:
  type: csv
  params:
    output_path: users.csv
`

func TestGenerationConfigParse(t *testing.T) {
	cfg := &GenerationConfig{}
	require.NoError(t, cfg.ParseFromYAML([]byte(validConfigYAML)))

	require.Equal(t, "users", cfg.Name())
	require.Equal(t, []string{"id", "name"}, cfg.ColumnNames)
	require.Equal(t, 500, cfg.RowsCount)
	require.Len(t, cfg.Configs, 2)
	require.True(t, cfg.Configs[0].Strategy.Unique)
	require.Equal(t, "csv", cfg.FileWriter.Type)
	require.NotNil(t, cfg.Configs[1].Strategy.Params)
}

func TestGenerationConfigUnknownField(t *testing.T) {
	cfg := &GenerationConfig{}
	err := cfg.ParseFromYAML([]byte("num_of_rowz: 10\n"))
	require.Error(t, err)
}

func TestGenerationConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "zero rows",
			yaml: `
column_name: [a]
num_of_rows: 0
configs:
  - column_names: [a]
    strategy: {name: UUID_STRATEGY}
`,
			want: "num_of_rows must be greater than zero",
		},
		{
			name: "no columns",
			yaml: `
num_of_rows: 100
configs:
  - column_names: [a]
    strategy: {name: UUID_STRATEGY}
`,
			want: "column_name must list at least one column",
		},
		{
			name: "missing strategy name",
			yaml: `
column_name: [a]
num_of_rows: 100
configs:
  - column_names: [a]
    strategy: {params: {}}
`,
			want: "strategy.name is required",
		},
		{
			name: "bad mask expression",
			yaml: `
column_name: [a, b]
num_of_rows: 100
configs:
  - column_names: [b]
    strategy: {name: UUID_STRATEGY}
    mask: "a >"
`,
			want: "invalid mask expression",
		},
		{
			name: "stream and batch together",
			yaml: `
column_name: [a]
num_of_rows: 100
configs:
  - column_names: [a]
    strategy: {name: UUID_STRATEGY}
stream:
  amqp: {queue: q}
batch:
  file_writer: {type: csv}
`,
			want: "mutually exclusive",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &GenerationConfig{}
			err := cfg.ParseFromYAML([]byte(tc.yaml))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestStreamConfigDefaults(t *testing.T) {
	cfg := &GenerationConfig{}
	require.NoError(t, cfg.ParseFromYAML([]byte(`
column_name: [a]
num_of_rows: 100
configs:
  - column_names: [a]
    strategy: {name: UUID_STRATEGY}
stream:
  kafka:
    topic: events
`)))

	require.Equal(t, DefaultChunkSize, cfg.Stream.ChunkSize)
	require.Equal(t, DefaultBatchSize, cfg.Stream.BatchSize)
	require.Equal(t, []string{"localhost:9092"}, cfg.Stream.Kafka.Brokers)
	require.Equal(t, "genxdata-producer", cfg.Stream.Kafka.ClientID)
}

func TestBatchConfigRequiresWriter(t *testing.T) {
	b := &BatchConfig{}
	b.FillDefaults()
	errs := b.Validate()
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "file_writer section is required")
}

func TestAttachBatchFileReplacesDelivery(t *testing.T) {
	cfg := &GenerationConfig{}
	require.NoError(t, cfg.ParseFromYAML([]byte(validConfigYAML)))
	require.NotNil(t, cfg.FileWriter)

	path := filepath.Join(t.TempDir(), "batch.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
chunk_size: 200
batch_size: 50
file_writer:
  type: csv
  params: {output_path: "part_{batch_index}.csv"}
`), 0o600))

	require.NoError(t, cfg.AttachBatchFile(path))
	require.Nil(t, cfg.FileWriter)
	require.Nil(t, cfg.Stream)
	require.Equal(t, 200, cfg.Batch.ChunkSize)
	require.Equal(t, 50, cfg.Batch.BatchSize)
}

func TestAttachStreamFileReplacesDelivery(t *testing.T) {
	cfg := &GenerationConfig{}
	require.NoError(t, cfg.ParseFromYAML([]byte(validConfigYAML)))

	path := filepath.Join(t.TempDir(), "stream.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
amqp:
  queue: rows
`), 0o600))

	require.NoError(t, cfg.AttachStreamFile(path))
	require.Nil(t, cfg.FileWriter)
	require.Nil(t, cfg.Batch)
	require.Equal(t, "rows", cfg.Stream.AMQP.Queue)
	require.Equal(t, DefaultChunkSize, cfg.Stream.ChunkSize)
}
