package output

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/genxdata/genxdata/internal/generator/frame"
)

func testFrame(t *testing.T) *frame.Frame {
	t.Helper()

	f := frame.New(3, []string{"id", "name"})
	require.NoError(t, f.SetColumn("id", []any{int64(1), int64(2), int64(3)}))
	require.NoError(t, f.SetColumn("name", []any{"a", "b", "c"}))

	return f
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	return string(data)
}

func TestCSVWriter(t *testing.T) {
	fs := afero.NewMemMapFs()

	w, err := NewCSVWriter(fs, map[string]any{"output_path": "out.csv"})
	require.NoError(t, err)

	res, err := w.Write(testFrame(t), nil)
	require.NoError(t, err)
	require.Equal(t, 3, res.Rows)

	summary, err := w.Finalize()
	require.NoError(t, err)
	require.Equal(t, "csv", summary.Type)
	require.Equal(t, 3, summary.RowsWritten)

	content := readFile(t, fs, "out.csv")
	require.Equal(t, "id,name\n1,a\n2,b\n3,c\n", content)
}

func TestCSVWriterAppendsAcrossWrites(t *testing.T) {
	fs := afero.NewMemMapFs()

	w, err := NewCSVWriter(fs, map[string]any{"output_path": "out.csv", "delimiter": ";"})
	require.NoError(t, err)

	_, err = w.Write(testFrame(t), nil)
	require.NoError(t, err)
	_, err = w.Write(testFrame(t), nil)
	require.NoError(t, err)

	summary, err := w.Finalize()
	require.NoError(t, err)
	require.Equal(t, 6, summary.RowsWritten)
	require.Equal(t, 2, summary.Writes)

	content := readFile(t, fs, "out.csv")
	require.Equal(t, 1, strings.Count(content, "id;name"))
	require.Equal(t, 7, strings.Count(content, "\n"))
}

func TestCSVWriterValidation(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := NewCSVWriter(fs, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "output_path")

	_, err = NewCSVWriter(fs, map[string]any{"output_path": "x.csv", "delimiter": "ab"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "single character")
}

func TestJSONLWriter(t *testing.T) {
	fs := afero.NewMemMapFs()

	w, err := NewJSONLWriter(fs, map[string]any{"output_path": "out.jsonl"})
	require.NoError(t, err)

	_, err = w.Write(testFrame(t), nil)
	require.NoError(t, err)

	_, err = w.Finalize()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(readFile(t, fs, "out.jsonl")), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], `"id":1`)
	require.Contains(t, lines[0], `"name":"a"`)
}

func TestHTMLWriter(t *testing.T) {
	fs := afero.NewMemMapFs()

	w, err := NewHTMLWriter(fs, map[string]any{"output_path": "out.html", "title": "report"})
	require.NoError(t, err)

	_, err = w.Write(testFrame(t), nil)
	require.NoError(t, err)

	_, err = w.Finalize()
	require.NoError(t, err)

	content := readFile(t, fs, "out.html")
	require.Contains(t, content, "<title>report</title>")
	require.Contains(t, content, "<th>id</th>")
	require.Contains(t, content, "<td>b</td>")
}

func TestDevNullWriter(t *testing.T) {
	w := NewDevNullWriter()

	_, err := w.Write(testFrame(t), nil)
	require.NoError(t, err)

	summary, err := w.Finalize()
	require.NoError(t, err)
	require.Equal(t, 3, summary.RowsWritten)
	require.Equal(t, []string{"/dev/null"}, summary.Destinations)
}

func TestResolvePath(t *testing.T) {
	meta := &BatchMeta{BatchIndex: 4, Timestamp: time.Now()}

	require.Equal(t, "out_4.csv", ResolvePath("out_{batch_index}.csv", meta))
	require.Equal(t, "out.csv", ResolvePath("out.csv", meta))
	require.Equal(t, "out_0.csv", ResolvePath("out_{batch_index}.csv", nil))
}

func TestBatchWriterTemplated(t *testing.T) {
	fs := afero.NewMemMapFs()

	w := NewBatchWriter("csv", true, func() (Writer, error) {
		return NewCSVWriter(fs, map[string]any{"output_path": "chunk_{batch_index}.csv"})
	})

	for i := 1; i <= 3; i++ {
		_, err := w.Write(testFrame(t), &BatchMeta{BatchIndex: i, Timestamp: time.Now()})
		require.NoError(t, err)
	}

	summary, err := w.Finalize()
	require.NoError(t, err)
	require.Equal(t, 9, summary.RowsWritten)
	require.Len(t, summary.Destinations, 3)

	for _, path := range []string{"chunk_1.csv", "chunk_2.csv", "chunk_3.csv"} {
		exists, err := afero.Exists(fs, path)
		require.NoError(t, err)
		require.True(t, exists)
	}
}

func TestBatchWriterSingleDestination(t *testing.T) {
	fs := afero.NewMemMapFs()

	w := NewBatchWriter("csv", false, func() (Writer, error) {
		return NewCSVWriter(fs, map[string]any{"output_path": "all.csv"})
	})

	for i := 1; i <= 2; i++ {
		_, err := w.Write(testFrame(t), &BatchMeta{BatchIndex: i, Timestamp: time.Now()})
		require.NoError(t, err)
	}

	summary, err := w.Finalize()
	require.NoError(t, err)
	require.Equal(t, 6, summary.RowsWritten)
	require.Equal(t, []string{"all.csv"}, summary.Destinations)

	content := readFile(t, fs, "all.csv")
	require.Equal(t, 1, strings.Count(content, "id,name"))
}
