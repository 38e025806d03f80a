package output

import (
	"html/template"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/genxdata/genxdata/internal/generator/common"
	"github.com/genxdata/genxdata/internal/generator/frame"
)

var htmlTemplate = template.Must(template.New("table").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<table border="1">
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

// HTMLParams type configures the HTML table sink.
type HTMLParams struct {
	OutputPath string `json:"output_path" yaml:"output_path"`
	Title      string `json:"title"       yaml:"title"`
}

// HTMLWriter type accumulates rows and renders a single table on
// Finalize.
type HTMLWriter struct {
	fs     afero.Fs
	params HTMLParams

	path    string
	columns []string
	rows    [][]string
	summary Summary
}

var _ Writer = (*HTMLWriter)(nil)

func NewHTMLWriter(fs afero.Fs, params map[string]any) (*HTMLWriter, error) {
	p, err := common.AnyToStruct[HTMLParams](params)
	if err != nil {
		return nil, errors.WithMessage(err, "invalid html writer params")
	}

	if p.OutputPath == "" {
		return nil, errors.New("html writer requires output_path")
	}

	if p.Title == "" {
		p.Title = "dataset"
	}

	return &HTMLWriter{fs: fs, params: *p, summary: Summary{Type: "html"}}, nil
}

func (w *HTMLWriter) Write(f *frame.Frame, meta *BatchMeta) (*WriteResult, error) {
	if w.columns == nil {
		w.columns = f.Columns()
		w.path = ResolvePath(w.params.OutputPath, meta)
	}

	for i := 0; i < f.Len(); i++ {
		row := make([]string, len(w.columns))
		for j, col := range w.columns {
			row[j] = common.FormatValue(f.Value(col, i))
		}

		w.rows = append(w.rows, row)
	}

	res := &WriteResult{Rows: f.Len(), Destination: w.path}
	w.summary.Add(res)

	return res, nil
}

func (w *HTMLWriter) Finalize() (*Summary, error) {
	if w.columns != nil {
		file, err := w.fs.Create(w.path)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to create html file %q", w.path)
		}

		data := struct {
			Title   string
			Columns []string
			Rows    [][]string
		}{w.params.Title, w.columns, w.rows}

		if err := htmlTemplate.Execute(file, data); err != nil {
			return nil, errors.WithMessage(err, "failed to render html table")
		}

		if err := file.Close(); err != nil {
			return nil, errors.New(err.Error())
		}
	}

	return &w.summary, nil
}
