package strategy

import (
	"math"

	"github.com/genxdata/genxdata/internal/generator/common"
)

type seriesParams struct {
	Start float64 `json:"start" yaml:"start"`
	Step  float64 `json:"step"  yaml:"step"`
}

// seriesStrategy emits an arithmetic progression. In chunked modes it
// resumes from the position recorded in shared state, so consecutive
// chunks form one continuous sequence.
type seriesStrategy struct {
	base

	params seriesParams
	index  int
}

var _ Strategy = (*seriesStrategy)(nil)

func (s *seriesStrategy) bind(ctx *Context) error {
	s.bindContext(ctx)

	params, err := common.AnyToStructLenient[seriesParams](ctx.Params)
	if err != nil {
		return err
	}

	if _, ok := ctx.Params["start"]; !ok {
		params.Start = 1
	}

	if _, ok := ctx.Params["step"]; !ok {
		params.Step = 1
	}

	s.params = *params

	if ctx.Mode == ModeStreamBatch {
		key := StateKey{Kind: s.kind, Column: ctx.Column}
		if ctx.State.Has(key) {
			s.index = ctx.State.Get(key).LastIndex
		}
	}

	return nil
}

func (s *seriesStrategy) GenerateChunk(count int) ([]any, error) {
	values := make([]any, count)

	integral := isIntegral(s.params.Start) && isIntegral(s.params.Step)

	for i := 0; i < count; i++ {
		v := s.params.Start + float64(s.index)*s.params.Step
		if integral {
			values[i] = int64(v)
		} else {
			values[i] = v
		}

		s.index++
	}

	return values, nil
}

func (s *seriesStrategy) ResetState() {
	s.index = 0
}

func (s *seriesStrategy) Snapshot() (any, int, string) {
	last := s.params.Start + float64(s.index-1)*s.params.Step

	dtype := "float"
	if isIntegral(s.params.Start) && isIntegral(s.params.Step) {
		dtype = "int"

		return int64(last), s.index, dtype
	}

	return last, s.index, dtype
}

func isIntegral(v float64) bool {
	return v == math.Trunc(v)
}
