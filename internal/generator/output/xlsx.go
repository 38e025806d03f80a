package output

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"

	"github.com/genxdata/genxdata/internal/generator/common"
	"github.com/genxdata/genxdata/internal/generator/frame"
)

// XLSXParams type configures the Excel sink.
type XLSXParams struct {
	OutputPath string `json:"output_path" yaml:"output_path"`
	SheetName  string `json:"sheet_name"  yaml:"sheet_name"`
}

// XLSXWriter type accumulates rows into an in-memory workbook and
// saves it on Finalize.
type XLSXWriter struct {
	fs     afero.Fs
	params XLSXParams

	book    *excelize.File
	path    string
	nextRow int
	summary Summary
}

var _ Writer = (*XLSXWriter)(nil)

func NewXLSXWriter(fs afero.Fs, params map[string]any) (*XLSXWriter, error) {
	p, err := common.AnyToStruct[XLSXParams](params)
	if err != nil {
		return nil, errors.WithMessage(err, "invalid xlsx writer params")
	}

	if p.OutputPath == "" {
		return nil, errors.New("xlsx writer requires output_path")
	}

	if p.SheetName == "" {
		p.SheetName = "Sheet1"
	}

	return &XLSXWriter{fs: fs, params: *p, summary: Summary{Type: "xlsx"}}, nil
}

func (w *XLSXWriter) Write(f *frame.Frame, meta *BatchMeta) (*WriteResult, error) {
	if w.book == nil {
		w.book = excelize.NewFile()
		w.path = ResolvePath(w.params.OutputPath, meta)

		if w.params.SheetName != "Sheet1" {
			if err := w.book.SetSheetName("Sheet1", w.params.SheetName); err != nil {
				return nil, errors.New(err.Error())
			}
		}

		header := make([]any, len(f.Columns()))
		for i, col := range f.Columns() {
			header[i] = col
		}

		if err := w.setRow(1, header); err != nil {
			return nil, err
		}

		w.nextRow = 2
	}

	columns := f.Columns()

	for i := 0; i < f.Len(); i++ {
		row := make([]any, len(columns))
		for j, col := range columns {
			row[j] = f.Value(col, i)
		}

		if err := w.setRow(w.nextRow, row); err != nil {
			return nil, err
		}

		w.nextRow++
	}

	res := &WriteResult{Rows: f.Len(), Destination: w.path}
	w.summary.Add(res)

	return res, nil
}

func (w *XLSXWriter) setRow(row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.New(err.Error())
	}

	if err := w.book.SetSheetRow(w.params.SheetName, cell, &values); err != nil {
		return errors.WithMessagef(err, "failed to write xlsx row %d", row)
	}

	return nil
}

func (w *XLSXWriter) Finalize() (*Summary, error) {
	if w.book != nil {
		file, err := w.fs.Create(w.path)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to create xlsx file %q", w.path)
		}

		if err := w.book.Write(file); err != nil {
			return nil, errors.WithMessage(err, "failed to save workbook")
		}

		if err := file.Close(); err != nil {
			return nil, errors.New(err.Error())
		}
	}

	return &w.summary, nil
}
