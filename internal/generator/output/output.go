// Package output defines the writer contract shared by all sinks and
// the batch wrapper that fans chunked generation out into per-batch
// destinations.
package output

import (
	"strconv"
	"strings"
	"time"

	"github.com/genxdata/genxdata/internal/generator/frame"
)

// BatchMeta type describes the position of a frame inside a chunked
// run. It travels with every Write call and is embedded into streamed
// message envelopes.
type BatchMeta struct {
	BatchIndex   int       `json:"batch_index"   yaml:"batch_index"`
	ChunkIndex   int       `json:"chunk_index"   yaml:"chunk_index"`
	BatchSize    int       `json:"batch_size"    yaml:"batch_size"`
	TotalBatches int       `json:"total_batches" yaml:"total_batches"`
	Timestamp    time.Time `json:"timestamp"     yaml:"timestamp"`
}

// WriteResult type reports one completed Write call.
type WriteResult struct {
	Rows        int    `json:"rows"        yaml:"rows"`
	Destination string `json:"destination" yaml:"destination"`
}

// Summary type is the writer's final accounting, attached to processor
// results.
type Summary struct {
	Type         string   `json:"type"          yaml:"type"`
	RowsWritten  int      `json:"rows_written"  yaml:"rows_written"`
	Writes       int      `json:"writes"        yaml:"writes"`
	Destinations []string `json:"destinations"  yaml:"destinations"`
}

func (s *Summary) Add(res *WriteResult) {
	s.RowsWritten += res.Rows
	s.Writes++

	for _, d := range s.Destinations {
		if d == res.Destination {
			return
		}
	}

	if res.Destination != "" {
		s.Destinations = append(s.Destinations, res.Destination)
	}
}

// Writer is the sink contract. Write may be called once per run or once
// per batch; Finalize flushes and reports the totals.
type Writer interface {
	Write(f *frame.Frame, meta *BatchMeta) (*WriteResult, error)
	Finalize() (*Summary, error)
}

// BatchIndexPlaceholder marks where the 1-based batch number is
// substituted into templated file paths.
const BatchIndexPlaceholder = "{batch_index}"

// ResolvePath substitutes the batch index placeholder. A nil meta
// leaves zero in place, which only happens outside chunked runs where
// templates are not used.
func ResolvePath(path string, meta *BatchMeta) string {
	if !strings.Contains(path, BatchIndexPlaceholder) {
		return path
	}

	index := 0
	if meta != nil {
		index = meta.BatchIndex
	}

	return strings.ReplaceAll(path, BatchIndexPlaceholder, strconv.Itoa(index))
}
