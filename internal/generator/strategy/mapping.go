package strategy

import (
	"encoding/csv"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/genxdata/genxdata/internal/generator/common"
)

type mappingParams struct {
	MapFrom       string         `json:"map_from"        yaml:"map_from"`
	Mapping       map[string]any `json:"mapping"         yaml:"mapping"`
	Source        string         `json:"source"          yaml:"source"`
	SourceColumn  string         `json:"source_column"   yaml:"source_column"`
	SourceMapFrom string         `json:"source_map_from" yaml:"source_map_from"`
}

// mappingStrategy translates the values of a source column through a
// lookup table given inline or loaded from a CSV mapping file. Matched
// keys take the mapped value, unmatched rows keep whatever the target
// column already holds.
type mappingStrategy struct {
	base

	fs     afero.Fs
	params mappingParams
	table  map[string]any
}

var _ Strategy = (*mappingStrategy)(nil)

func (s *mappingStrategy) bind(ctx *Context) error {
	s.bindContext(ctx)

	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}

	params, err := common.AnyToStructLenient[mappingParams](ctx.Params)
	if err != nil {
		return err
	}

	if params.MapFrom == "" {
		return errors.New("map_from is required")
	}

	fileMode := params.Source != "" && params.SourceColumn != ""

	if len(params.Mapping) > 0 && fileMode {
		return errors.New("provide either an inline mapping or source with source_column, not both")
	}

	if len(params.Mapping) == 0 && !fileMode {
		return errors.New("either an inline mapping or source with source_column is required")
	}

	table := make(map[string]any, len(params.Mapping))
	for k, v := range params.Mapping {
		table[k] = v
	}

	if fileMode {
		joinKey := params.SourceMapFrom
		if joinKey == "" {
			joinKey = params.MapFrom
		}

		fileTable, err := loadMappingSource(s.fs, params.Source, joinKey, params.SourceColumn)
		if err != nil {
			return err
		}

		table = fileTable
	}

	s.params = *params
	s.table = table

	return nil
}

// loadMappingSource reads a CSV file with a header row and builds a
// lookup table from the joinKey column to the valueColumn column.
func loadMappingSource(fs afero.Fs, path, joinKey, valueColumn string) (map[string]any, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to open mapping source %q", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to read mapping source %q", path)
	}

	keyIdx, valueIdx := -1, -1
	for i, name := range header {
		switch name {
		case joinKey:
			keyIdx = i
		case valueColumn:
			valueIdx = i
		}
	}

	if keyIdx < 0 || valueIdx < 0 {
		return nil, errors.Errorf("mapping source %q is missing column %q or %q", path, joinKey, valueColumn)
	}

	table := make(map[string]any)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, errors.WithMessagef(err, "failed to read mapping source %q", path)
		}

		table[record[keyIdx]] = record[valueIdx]
	}

	return table, nil
}

func (s *mappingStrategy) GenerateChunk(count int) ([]any, error) {
	if len(s.targetRows) != count {
		return nil, errors.Errorf("mapping needs %d target rows, have %d", count, len(s.targetRows))
	}

	values := make([]any, count)

	if !s.ctx.Frame.Has(s.params.MapFrom) {
		s.ctx.Logger.Warn("mapping source column does not exist, producing nulls",
			slog.String("column", s.ctx.Column),
			slog.String("map_from", s.params.MapFrom))

		return values, nil
	}

	for i, row := range s.targetRows {
		key := common.FormatValue(s.ctx.Frame.Value(s.params.MapFrom, row))

		if mapped, ok := s.table[key]; ok {
			values[i] = mapped
		} else {
			values[i] = s.ctx.Frame.Value(s.ctx.Column, row)
		}
	}

	return values, nil
}

func (s *mappingStrategy) Snapshot() (any, int, string) {
	return nil, 0, "string"
}
