package strategy

import (
	"log/slog"

	"github.com/genxdata/genxdata/internal/generator/common"
)

type replacementParams struct {
	FromValue any `json:"from_value" yaml:"from_value"`
	ToValue   any `json:"to_value"   yaml:"to_value"`
}

// replacementStrategy rewrites the existing values of its own column:
// cells equal to from_value become to_value, everything else is kept.
// When the column has no prior data the chunk is to_value repeated.
type replacementStrategy struct {
	base

	params  replacementParams
	hasData bool
}

var _ Strategy = (*replacementStrategy)(nil)

func (s *replacementStrategy) bind(ctx *Context) error {
	s.bindContext(ctx)

	params, err := common.AnyToStructLenient[replacementParams](ctx.Params)
	if err != nil {
		return err
	}

	s.params = *params

	s.hasData = false
	for _, v := range ctx.Frame.Column(ctx.Column) {
		if v != nil {
			s.hasData = true

			break
		}
	}

	return nil
}

func (s *replacementStrategy) GenerateChunk(count int) ([]any, error) {
	values := make([]any, count)

	if !s.hasData || len(s.targetRows) != count {
		s.ctx.Logger.Warn("no existing data to replace, filling with to_value",
			slog.String("column", s.ctx.Column))

		for i := range values {
			values[i] = s.params.ToValue
		}

		return values, nil
	}

	from := common.FormatValue(s.params.FromValue)

	for i, row := range s.targetRows {
		current := s.ctx.Frame.Value(s.ctx.Column, row)
		if common.FormatValue(current) == from {
			values[i] = s.params.ToValue
		} else {
			values[i] = current
		}
	}

	return values, nil
}

func (s *replacementStrategy) Snapshot() (any, int, string) {
	return nil, 0, "string"
}
