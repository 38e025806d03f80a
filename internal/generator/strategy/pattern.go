package strategy

import (
	"github.com/lucasjones/reggen"
	"github.com/pkg/errors"

	"github.com/genxdata/genxdata/internal/generator/common"
)

// patternRepeatLimit caps expansion of unbounded regex quantifiers.
const patternRepeatLimit = 10

type patternParams struct {
	Regex string `json:"regex" yaml:"regex"`
	Seed  int64  `json:"seed"  yaml:"seed"`
}

// patternStrategy expands a regular expression into matching strings.
type patternStrategy struct {
	base

	params patternParams
	gen    *reggen.Generator
}

var _ Strategy = (*patternStrategy)(nil)

func (s *patternStrategy) bind(ctx *Context) error {
	s.bindContext(ctx)

	params, err := common.AnyToStructLenient[patternParams](ctx.Params)
	if err != nil {
		return err
	}

	if params.Regex == "" {
		return errors.New("regex is required")
	}

	if s.gen == nil || s.params.Regex != params.Regex {
		gen, err := reggen.NewGenerator(params.Regex)
		if err != nil {
			return errors.Errorf("invalid regex %q: %v", params.Regex, err)
		}

		if params.Seed != 0 {
			gen.SetSeed(params.Seed)
		}

		s.gen = gen
	}

	s.params = *params

	return nil
}

func (s *patternStrategy) GenerateChunk(count int) ([]any, error) {
	values := make([]any, count)
	for i := 0; i < count; i++ {
		values[i] = s.gen.Generate(patternRepeatLimit)
	}

	return values, nil
}

func (s *patternStrategy) ResetState() {
	if s.params.Seed != 0 && s.gen != nil {
		s.gen.SetSeed(s.params.Seed)
	}
}

func (s *patternStrategy) Snapshot() (any, int, string) {
	return nil, 0, "string"
}
