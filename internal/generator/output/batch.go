package output

import (
	"github.com/pkg/errors"

	"github.com/genxdata/genxdata/internal/generator/frame"
)

// BatchWriter type adapts a single-destination writer constructor to
// chunked runs. With a templated file path every batch gets its own
// writer and file; otherwise one writer is kept open and batches are
// appended.
type BatchWriter struct {
	construct func() (Writer, error)
	templated bool

	inner   Writer
	summary Summary
}

var _ Writer = (*BatchWriter)(nil)

func NewBatchWriter(writerType string, templated bool, construct func() (Writer, error)) *BatchWriter {
	return &BatchWriter{
		construct: construct,
		templated: templated,
		summary:   Summary{Type: writerType},
	}
}

func (w *BatchWriter) Write(f *frame.Frame, meta *BatchMeta) (*WriteResult, error) {
	if w.templated {
		return w.writeBatchFile(f, meta)
	}

	if w.inner == nil {
		inner, err := w.construct()
		if err != nil {
			return nil, err
		}

		w.inner = inner
	}

	res, err := w.inner.Write(f, meta)
	if err != nil {
		return nil, err
	}

	w.summary.Add(res)

	return res, nil
}

func (w *BatchWriter) writeBatchFile(f *frame.Frame, meta *BatchMeta) (*WriteResult, error) {
	inner, err := w.construct()
	if err != nil {
		return nil, err
	}

	res, err := inner.Write(f, meta)
	if err != nil {
		return nil, err
	}

	if _, err := inner.Finalize(); err != nil {
		return nil, errors.WithMessage(err, "failed to finalize batch file")
	}

	w.summary.Add(res)

	return res, nil
}

func (w *BatchWriter) Finalize() (*Summary, error) {
	if !w.templated && w.inner != nil {
		if _, err := w.inner.Finalize(); err != nil {
			return nil, err
		}
	}

	return &w.summary, nil
}
