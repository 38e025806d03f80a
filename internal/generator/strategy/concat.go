package strategy

import (
	"github.com/pkg/errors"

	"github.com/genxdata/genxdata/internal/generator/common"
)

type concatParams struct {
	LhsCol    string `json:"lhs_col"   yaml:"lhs_col"`
	RhsCol    string `json:"rhs_col"   yaml:"rhs_col"`
	Prefix    string `json:"prefix"    yaml:"prefix"`
	Suffix    string `json:"suffix"    yaml:"suffix"`
	Separator string `json:"separator" yaml:"separator"`
}

// concatStrategy joins sibling columns row by row as
// prefix + lhs + separator + rhs + suffix. One side may be omitted and
// contributes an empty string. It is row-aware: the chunk it produces
// lines up with the target rows chosen by the mask.
type concatStrategy struct {
	base

	params concatParams
}

var _ Strategy = (*concatStrategy)(nil)

func (s *concatStrategy) bind(ctx *Context) error {
	s.bindContext(ctx)

	params, err := common.AnyToStructLenient[concatParams](ctx.Params)
	if err != nil {
		return err
	}

	if params.LhsCol == "" && params.RhsCol == "" {
		return errors.New("at least one of lhs_col and rhs_col is required")
	}

	s.params = *params

	return nil
}

func (s *concatStrategy) GenerateChunk(count int) ([]any, error) {
	if len(s.targetRows) != count {
		return nil, errors.Errorf("concat needs %d target rows, have %d", count, len(s.targetRows))
	}

	for _, col := range []string{s.params.LhsCol, s.params.RhsCol} {
		if col != "" && !s.ctx.Frame.Has(col) {
			return nil, errors.Errorf("source column %q does not exist", col)
		}
	}

	values := make([]any, count)

	for i, row := range s.targetRows {
		values[i] = s.params.Prefix +
			s.sideValue(s.params.LhsCol, row) +
			s.params.Separator +
			s.sideValue(s.params.RhsCol, row) +
			s.params.Suffix
	}

	return values, nil
}

func (s *concatStrategy) sideValue(col string, row int) string {
	if col == "" {
		return ""
	}

	return common.FormatValue(s.ctx.Frame.Value(col, row))
}

func (s *concatStrategy) Snapshot() (any, int, string) {
	return nil, 0, "string"
}
