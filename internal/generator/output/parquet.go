package output

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/genxdata/genxdata/internal/generator/common"
	"github.com/genxdata/genxdata/internal/generator/frame"
)

// ParquetParams type configures the Parquet sink.
type ParquetParams struct {
	OutputPath string `json:"output_path" yaml:"output_path"`
}

// ParquetWriter type writes frames as Arrow records into a Parquet
// file. The schema is inferred from the first frame and reused for the
// rest of the run.
type ParquetWriter struct {
	fs     afero.Fs
	params ParquetParams

	file    afero.File
	writer  *pqarrow.FileWriter
	schema  *arrow.Schema
	summary Summary
}

var _ Writer = (*ParquetWriter)(nil)

func NewParquetWriter(fs afero.Fs, params map[string]any) (*ParquetWriter, error) {
	p, err := common.AnyToStruct[ParquetParams](params)
	if err != nil {
		return nil, errors.WithMessage(err, "invalid parquet writer params")
	}

	if p.OutputPath == "" {
		return nil, errors.New("parquet writer requires output_path")
	}

	return &ParquetWriter{fs: fs, params: *p, summary: Summary{Type: "parquet"}}, nil
}

func (w *ParquetWriter) Write(f *frame.Frame, meta *BatchMeta) (*WriteResult, error) {
	path := ResolvePath(w.params.OutputPath, meta)

	if w.writer == nil {
		if err := w.open(path, f); err != nil {
			return nil, err
		}
	}

	record, err := buildRecord(w.schema, f)
	if err != nil {
		return nil, err
	}
	defer record.Release()

	if err := w.writer.WriteBuffered(record); err != nil {
		return nil, errors.WithMessage(err, "failed to write parquet record")
	}

	res := &WriteResult{Rows: f.Len(), Destination: path}
	w.summary.Add(res)

	return res, nil
}

func (w *ParquetWriter) open(path string, f *frame.Frame) error {
	file, err := w.fs.Create(path)
	if err != nil {
		return errors.WithMessagef(err, "failed to create parquet file %q", path)
	}

	w.file = file
	w.schema = inferSchema(f)

	writer, err := pqarrow.NewFileWriter(
		w.schema,
		file,
		parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy)),
		pqarrow.DefaultWriterProps(),
	)
	if err != nil {
		return errors.WithMessage(err, "failed to create parquet writer")
	}

	w.writer = writer

	return nil
}

func (w *ParquetWriter) Finalize() (*Summary, error) {
	if w.writer != nil {
		if err := w.writer.Close(); err != nil {
			return nil, errors.WithMessage(err, "failed to close parquet writer")
		}
	}

	return &w.summary, nil
}

// inferSchema maps each column to an Arrow type based on its first
// non-nil value; columns with no values fall back to strings.
func inferSchema(f *frame.Frame) *arrow.Schema {
	fields := make([]arrow.Field, 0, len(f.Columns()))

	for _, col := range f.Columns() {
		var dt arrow.DataType = arrow.BinaryTypes.String

		for i := 0; i < f.Len(); i++ {
			switch f.Value(col, i).(type) {
			case nil:
				continue
			case int, int32, int64:
				dt = arrow.PrimitiveTypes.Int64
			case float32, float64:
				dt = arrow.PrimitiveTypes.Float64
			case bool:
				dt = arrow.FixedWidthTypes.Boolean
			}

			break
		}

		fields = append(fields, arrow.Field{Name: col, Type: dt, Nullable: true})
	}

	return arrow.NewSchema(fields, nil)
}

//nolint:cyclop
func buildRecord(schema *arrow.Schema, f *frame.Frame) (arrow.Record, error) {
	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()

	for i, field := range schema.Fields() {
		values := f.Column(field.Name)

		for _, v := range values {
			if v == nil {
				builder.Field(i).AppendNull()

				continue
			}

			switch b := builder.Field(i).(type) {
			case *array.Int64Builder:
				iv, ok := toInt64(v)
				if !ok {
					return nil, errors.Errorf("column %q: value %v is not an integer", field.Name, v)
				}

				b.Append(iv)
			case *array.Float64Builder:
				fv, ok := toFloat64(v)
				if !ok {
					return nil, errors.Errorf("column %q: value %v is not a float", field.Name, v)
				}

				b.Append(fv)
			case *array.BooleanBuilder:
				bv, ok := v.(bool)
				if !ok {
					return nil, errors.Errorf("column %q: value %v is not a boolean", field.Name, v)
				}

				b.Append(bv)
			case *array.StringBuilder:
				b.Append(common.FormatValue(v))
			default:
				return nil, errors.Errorf("column %q: unsupported builder type %T", field.Name, b)
			}
		}
	}

	return builder.NewRecord(), nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
