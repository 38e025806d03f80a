package strategy

import (
	"math/rand"
	"sort"

	"github.com/pkg/errors"

	"github.com/genxdata/genxdata/internal/generator/common"
)

type distributedChoiceParams struct {
	Choices map[string]float64 `json:"choices" yaml:"choices"`
	Seed    int64              `json:"seed"    yaml:"seed"`
}

// distributedChoiceStrategy fills a chunk with fixed values in weighted
// proportion. Choices are iterated in sorted order so the split is
// deterministic, then the chunk is shuffled.
type distributedChoiceStrategy struct {
	base

	params distributedChoiceParams
	keys   []string
	rng    *rand.Rand
}

var _ Strategy = (*distributedChoiceStrategy)(nil)

func (s *distributedChoiceStrategy) bind(ctx *Context) error {
	s.bindContext(ctx)

	params, err := common.AnyToStructLenient[distributedChoiceParams](ctx.Params)
	if err != nil {
		return err
	}

	if len(params.Choices) == 0 {
		return errors.New("choices must not be empty")
	}

	keys := make([]string, 0, len(params.Choices))
	for k := range params.Choices {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	weights := make([]float64, len(keys))
	for i, k := range keys {
		weights[i] = params.Choices[k]
	}

	if err := validateWeights(weights); err != nil {
		return err
	}

	s.params = *params
	s.keys = keys

	if s.rng == nil {
		s.rng = newRNG(params.Seed)
	}

	return nil
}

func (s *distributedChoiceStrategy) GenerateChunk(count int) ([]any, error) {
	weights := make([]float64, len(s.keys))
	for i, k := range s.keys {
		weights[i] = s.params.Choices[k]
	}

	values := make([]any, 0, count)

	for i, n := range distributeCounts(count, weights) {
		for j := 0; j < n; j++ {
			values = append(values, s.keys[i])
		}
	}

	s.rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	return values, nil
}

func (s *distributedChoiceStrategy) ResetState() {
	s.rng = newRNG(s.params.Seed)
}

func (s *distributedChoiceStrategy) Snapshot() (any, int, string) {
	return nil, 0, "string"
}
