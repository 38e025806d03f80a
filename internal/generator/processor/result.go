package processor

import (
	"github.com/genxdata/genxdata/internal/generator/output"
	"github.com/genxdata/genxdata/internal/generator/perf"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	TypeNormal    = "normal"
	TypeStreaming = "streaming"
)

// Result type is the run report returned by every processor.
type Result struct {
	Status           string          `json:"status"            yaml:"status"`
	ProcessorType    string          `json:"processor_type"    yaml:"processor_type"`
	ConfigName       string          `json:"config_name"       yaml:"config_name"`
	RowsGenerated    int             `json:"rows_generated"    yaml:"rows_generated"`
	ColumnsGenerated int             `json:"columns_generated" yaml:"columns_generated"`
	ColumnNames      []string        `json:"column_names"      yaml:"column_names"`
	ChunksProcessed  int             `json:"chunks_processed,omitempty" yaml:"chunks_processed,omitempty"`
	ChunkSize        int             `json:"chunk_size,omitempty"       yaml:"chunk_size,omitempty"`
	BatchSize        int             `json:"batch_size,omitempty"       yaml:"batch_size,omitempty"`
	WriterSummary    *output.Summary `json:"writer_summary,omitempty"     yaml:"writer_summary,omitempty"`
	Performance      *perf.Report    `json:"performance_report,omitempty" yaml:"performance_report,omitempty"`
	Error            string          `json:"error,omitempty"   yaml:"error,omitempty"`
}
