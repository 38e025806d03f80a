package output

import (
	"github.com/genxdata/genxdata/internal/generator/frame"
)

// DevNullWriter type discards frames while counting rows. Useful for
// benchmarking generation throughput without sink overhead.
type DevNullWriter struct {
	summary Summary
}

var _ Writer = (*DevNullWriter)(nil)

func NewDevNullWriter() *DevNullWriter {
	return &DevNullWriter{summary: Summary{Type: "devnull"}}
}

func (w *DevNullWriter) Write(f *frame.Frame, _ *BatchMeta) (*WriteResult, error) {
	res := &WriteResult{Rows: f.Len(), Destination: "/dev/null"}
	w.summary.Add(res)

	return res, nil
}

func (w *DevNullWriter) Finalize() (*Summary, error) {
	return &w.summary, nil
}
