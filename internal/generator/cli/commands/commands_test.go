package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const generationConfigYAML = `
metadata:
  name: smoke
column_name: [id, name]
num_of_rows: 100
configs:
  - column_names: [id]
    strategy:
      name: SERIES_STRATEGY
      unique: true
  - column_names: [name]
    strategy:
      name: RANDOM_NAME_STRATEGY
      params: {seed: 1}
file_writer:
  type: csv
  params:
    output_path: %s
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand("test")

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func writeConfig(t *testing.T, outPath string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	content := strings.Replace(generationConfigYAML, "%s", outPath, 1)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestStrategiesCommand(t *testing.T) {
	out, err := execute(t, "strategies")
	require.NoError(t, err)
	require.Contains(t, out, "SERIES_STRATEGY")
	require.Contains(t, out, "UUID_STRATEGY")
}

func TestValidateCommand(t *testing.T) {
	path := writeConfig(t, "unused.csv")

	_, err := execute(t, "validate", path)
	require.NoError(t, err)
}

func TestValidateCommandRejectsBrokenConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yml")
	require.NoError(t, os.WriteFile(path, []byte("num_of_rows: 0\n"), 0o600))

	_, err := execute(t, "validate", path)
	require.Error(t, err)
}

func TestGenerateCommand(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "data.csv")
	path := writeConfig(t, outPath)

	out, err := execute(t, "generate", "--no-progress", path)
	require.NoError(t, err)
	require.Contains(t, out, "status: success")
	require.Contains(t, out, "rows_generated: 100")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "id,name\n"))
}

func TestGenerateCommandBatchFlag(t *testing.T) {
	dir := t.TempDir()
	outPattern := filepath.Join(dir, "part_{batch_index}.csv")
	path := writeConfig(t, filepath.Join(dir, "ignored.csv"))

	batchPath := filepath.Join(dir, "batch.yml")
	batchContent := strings.Replace(`
chunk_size: 50
batch_size: 25
file_writer:
  type: csv
  params: {output_path: "%s"}
`, "%s", outPattern, 1)
	require.NoError(t, os.WriteFile(batchPath, []byte(batchContent), 0o600))

	out, err := execute(t, "generate", "--no-progress", "--batch", batchPath, path)
	require.NoError(t, err)
	require.Contains(t, out, "processor_type: streaming")
	require.Contains(t, out, "chunks_processed: 2")

	for i := 1; i <= 4; i++ {
		_, err := os.Stat(filepath.Join(dir, "part_"+strconv.Itoa(i)+".csv"))
		require.NoError(t, err)
	}
}

func TestGenerateCommandStreamAndBatchExclusive(t *testing.T) {
	path := writeConfig(t, "unused.csv")

	_, err := execute(t, "generate", "--no-progress", "--stream", "s.yml", "--batch", "b.yml", path)
	require.Error(t, err)
}

func TestGenerateCommandPerfReport(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "data.csv")
	path := writeConfig(t, outPath)

	out, err := execute(t, "generate", "--no-progress", "--perf-report", path)
	require.NoError(t, err)
	require.Contains(t, out, "performance_report:")
}
