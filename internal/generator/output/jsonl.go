package output

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/genxdata/genxdata/internal/generator/common"
	"github.com/genxdata/genxdata/internal/generator/frame"
)

// JSONLParams type configures the JSON Lines sink.
type JSONLParams struct {
	OutputPath string `json:"output_path" yaml:"output_path"`
}

// JSONLWriter type writes one JSON object per row.
type JSONLWriter struct {
	fs     afero.Fs
	params JSONLParams

	file    afero.File
	encoder *json.Encoder
	summary Summary
}

var _ Writer = (*JSONLWriter)(nil)

func NewJSONLWriter(fs afero.Fs, params map[string]any) (*JSONLWriter, error) {
	p, err := common.AnyToStruct[JSONLParams](params)
	if err != nil {
		return nil, errors.WithMessage(err, "invalid jsonl writer params")
	}

	if p.OutputPath == "" {
		return nil, errors.New("jsonl writer requires output_path")
	}

	return &JSONLWriter{fs: fs, params: *p, summary: Summary{Type: "jsonl"}}, nil
}

func (w *JSONLWriter) Write(f *frame.Frame, meta *BatchMeta) (*WriteResult, error) {
	path := ResolvePath(w.params.OutputPath, meta)

	if w.encoder == nil {
		file, err := w.fs.Create(path)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to create jsonl file %q", path)
		}

		w.file = file
		w.encoder = json.NewEncoder(file)
	}

	for i := 0; i < f.Len(); i++ {
		if err := w.encoder.Encode(f.Row(i)); err != nil {
			return nil, errors.WithMessage(err, "failed to encode jsonl row")
		}
	}

	res := &WriteResult{Rows: f.Len(), Destination: path}
	w.summary.Add(res)

	return res, nil
}

func (w *JSONLWriter) Finalize() (*Summary, error) {
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			return nil, errors.New(err.Error())
		}
	}

	return &w.summary, nil
}
