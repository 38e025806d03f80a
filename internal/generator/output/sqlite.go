package output

import (
	"database/sql"
	"strings"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/genxdata/genxdata/internal/generator/common"
	"github.com/genxdata/genxdata/internal/generator/frame"
)

// SQLiteParams type configures the SQLite sink.
type SQLiteParams struct {
	OutputPath string `json:"output_path" yaml:"output_path"`
	Table      string `json:"table"       yaml:"table"`
}

// SQLiteWriter type inserts frames into a SQLite table created from the
// first frame's columns. Rows of each write go in one transaction.
type SQLiteWriter struct {
	params SQLiteParams

	db      *sql.DB
	columns []string
	summary Summary
}

var _ Writer = (*SQLiteWriter)(nil)

func NewSQLiteWriter(params map[string]any) (*SQLiteWriter, error) {
	p, err := common.AnyToStruct[SQLiteParams](params)
	if err != nil {
		return nil, errors.WithMessage(err, "invalid sqlite writer params")
	}

	if p.OutputPath == "" {
		return nil, errors.New("sqlite writer requires output_path")
	}

	if p.Table == "" {
		p.Table = "dataset"
	}

	return &SQLiteWriter{params: *p, summary: Summary{Type: "sqlite"}}, nil
}

func (w *SQLiteWriter) Write(f *frame.Frame, meta *BatchMeta) (*WriteResult, error) {
	if w.db == nil {
		if err := w.open(f); err != nil {
			return nil, err
		}
	}

	tx, err := w.db.Begin()
	if err != nil {
		return nil, errors.New(err.Error())
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(w.columns)), ",")
	insert := "INSERT INTO " + quoteIdent(w.params.Table) +
		" (" + joinIdents(w.columns) + ") VALUES (" + placeholders + ")"

	stmt, err := tx.Prepare(insert)
	if err != nil {
		_ = tx.Rollback()

		return nil, errors.WithMessage(err, "failed to prepare insert")
	}
	defer stmt.Close()

	for i := 0; i < f.Len(); i++ {
		args := make([]any, len(w.columns))
		for j, col := range w.columns {
			args[j] = f.Value(col, i)
		}

		if _, err := stmt.Exec(args...); err != nil {
			_ = tx.Rollback()

			return nil, errors.WithMessagef(err, "failed to insert row %d", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.New(err.Error())
	}

	res := &WriteResult{Rows: f.Len(), Destination: w.params.OutputPath}
	w.summary.Add(res)

	return res, nil
}

func (w *SQLiteWriter) open(f *frame.Frame) error {
	db, err := sql.Open("sqlite", w.params.OutputPath)
	if err != nil {
		return errors.WithMessagef(err, "failed to open sqlite database %q", w.params.OutputPath)
	}

	w.db = db
	w.columns = f.Columns()

	defs := make([]string, len(w.columns))
	for i, col := range w.columns {
		defs[i] = quoteIdent(col) + " " + sqliteType(f, col)
	}

	ddl := "CREATE TABLE IF NOT EXISTS " + quoteIdent(w.params.Table) + " (" + strings.Join(defs, ", ") + ")"

	if _, err := db.Exec(ddl); err != nil {
		return errors.WithMessagef(err, "failed to create table %q", w.params.Table)
	}

	return nil
}

func sqliteType(f *frame.Frame, col string) string {
	for i := 0; i < f.Len(); i++ {
		switch f.Value(col, i).(type) {
		case nil:
			continue
		case int, int32, int64:
			return "INTEGER"
		case float32, float64:
			return "REAL"
		case bool:
			return "INTEGER"
		default:
			return "TEXT"
		}
	}

	return "TEXT"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func joinIdents(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}

	return strings.Join(quoted, ", ")
}

func (w *SQLiteWriter) Finalize() (*Summary, error) {
	if w.db != nil {
		if err := w.db.Close(); err != nil {
			return nil, errors.New(err.Error())
		}
	}

	return &w.summary, nil
}
