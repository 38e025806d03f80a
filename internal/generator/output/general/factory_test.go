package general

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/genxdata/genxdata/internal/generator/models"
	"github.com/genxdata/genxdata/internal/generator/output"
)

func TestNewWriterTypes(t *testing.T) {
	fs := afero.NewMemMapFs()

	cases := []struct {
		writerType string
		params     map[string]any
	}{
		{"csv", map[string]any{"output_path": "a.csv"}},
		{"CSV_WRITER", map[string]any{"output_path": "a.csv"}},
		{"jsonl", map[string]any{"output_path": "a.jsonl"}},
		{"parquet", map[string]any{"output_path": "a.parquet"}},
		{"xlsx", map[string]any{"output_path": "a.xlsx"}},
		{"EXCEL_WRITER", map[string]any{"output_path": "a.xlsx"}},
		{"html", map[string]any{"output_path": "a.html"}},
		{"devnull", nil},
	}

	for _, tc := range cases {
		t.Run(tc.writerType, func(t *testing.T) {
			w, err := NewWriter(fs, &models.FileWriterConfig{Type: tc.writerType, Params: tc.params})
			require.NoError(t, err)
			require.NotNil(t, w)
		})
	}
}

func TestNewWriterUnsupported(t *testing.T) {
	_, err := NewWriter(afero.NewMemMapFs(), &models.FileWriterConfig{Type: "avro"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported file writer type")
}

func TestNewBatchWriterDetectsTemplate(t *testing.T) {
	fs := afero.NewMemMapFs()

	w, err := NewBatchWriter(fs, &models.FileWriterConfig{
		Type:   "csv",
		Params: map[string]any{"output_path": "part_{batch_index}.csv"},
	})
	require.NoError(t, err)

	var _ output.Writer = w
}
