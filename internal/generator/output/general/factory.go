// Package general constructs file writers from declarative config.
package general

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/genxdata/genxdata/internal/generator/models"
	"github.com/genxdata/genxdata/internal/generator/output"
)

// NewWriter builds the sink matching a file writer config. Type names
// are case-insensitive and the legacy *_WRITER aliases are accepted.
func NewWriter(fs afero.Fs, cfg *models.FileWriterConfig) (output.Writer, error) {
	switch normalizeType(cfg.Type) {
	case "csv":
		return output.NewCSVWriter(fs, cfg.Params)
	case "json", "jsonl":
		return output.NewJSONLWriter(fs, cfg.Params)
	case "parquet":
		return output.NewParquetWriter(fs, cfg.Params)
	case "xlsx", "excel":
		return output.NewXLSXWriter(fs, cfg.Params)
	case "sqlite":
		return output.NewSQLiteWriter(cfg.Params)
	case "html":
		return output.NewHTMLWriter(fs, cfg.Params)
	case "http":
		return output.NewHTTPWriter(cfg.Params)
	case "devnull", "dev_null":
		return output.NewDevNullWriter(), nil
	default:
		return nil, errors.Errorf("unsupported file writer type: %q", cfg.Type)
	}
}

// NewBatchWriter wraps NewWriter for chunked runs: a templated file
// path produces one file per batch, otherwise batches append into a
// single destination.
func NewBatchWriter(fs afero.Fs, cfg *models.FileWriterConfig) (*output.BatchWriter, error) {
	// fail fast on unknown types and bad params
	if _, err := NewWriter(fs, cfg); err != nil {
		return nil, err
	}

	templated := false
	if path, ok := cfg.Params["output_path"].(string); ok {
		templated = strings.Contains(path, output.BatchIndexPlaceholder)
	}

	construct := func() (output.Writer, error) {
		return NewWriter(fs, cfg)
	}

	return output.NewBatchWriter(normalizeType(cfg.Type), templated, construct), nil
}

func normalizeType(writerType string) string {
	normalized := strings.ToLower(strings.TrimSpace(writerType))
	normalized = strings.TrimSuffix(normalized, "_writer")

	return normalized
}
