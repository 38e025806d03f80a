package output

import (
	"encoding/csv"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/genxdata/genxdata/internal/generator/common"
	"github.com/genxdata/genxdata/internal/generator/frame"
)

// CSVParams type configures the CSV sink.
type CSVParams struct {
	OutputPath string `json:"output_path" yaml:"output_path"`
	Delimiter  string `json:"delimiter"   yaml:"delimiter"`
	NoHeader   bool   `json:"no_header"   yaml:"no_header"`
}

// CSVWriter type writes frames as delimited text. Repeated writes to
// the same path append rows under a single header.
type CSVWriter struct {
	fs     afero.Fs
	params CSVParams

	file    afero.File
	encoder *csv.Writer
	summary Summary
}

var _ Writer = (*CSVWriter)(nil)

func NewCSVWriter(fs afero.Fs, params map[string]any) (*CSVWriter, error) {
	p, err := common.AnyToStruct[CSVParams](params)
	if err != nil {
		return nil, errors.WithMessage(err, "invalid csv writer params")
	}

	if p.OutputPath == "" {
		return nil, errors.New("csv writer requires output_path")
	}

	if p.Delimiter == "" {
		p.Delimiter = ","
	}

	if len([]rune(p.Delimiter)) != 1 {
		return nil, errors.Errorf("delimiter must be a single character: %q", p.Delimiter)
	}

	return &CSVWriter{fs: fs, params: *p, summary: Summary{Type: "csv"}}, nil
}

func (w *CSVWriter) Write(f *frame.Frame, meta *BatchMeta) (*WriteResult, error) {
	path := ResolvePath(w.params.OutputPath, meta)

	if w.encoder == nil {
		file, err := w.fs.Create(path)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to create csv file %q", path)
		}

		w.file = file
		w.encoder = csv.NewWriter(file)
		w.encoder.Comma = []rune(w.params.Delimiter)[0]

		if !w.params.NoHeader {
			if err := w.encoder.Write(f.Columns()); err != nil {
				return nil, errors.WithMessage(err, "failed to write csv header")
			}
		}
	}

	columns := f.Columns()
	record := make([]string, len(columns))

	for i := 0; i < f.Len(); i++ {
		for j, col := range columns {
			record[j] = common.FormatValue(f.Value(col, i))
		}

		if err := w.encoder.Write(record); err != nil {
			return nil, errors.WithMessage(err, "failed to write csv row")
		}
	}

	res := &WriteResult{Rows: f.Len(), Destination: path}
	w.summary.Add(res)

	return res, nil
}

func (w *CSVWriter) Finalize() (*Summary, error) {
	if w.encoder != nil {
		w.encoder.Flush()

		if err := w.encoder.Error(); err != nil {
			return nil, errors.WithMessage(err, "failed to flush csv file")
		}

		if err := w.file.Close(); err != nil {
			return nil, errors.New(err.Error())
		}
	}

	return &w.summary, nil
}
