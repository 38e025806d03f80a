package strategy

import (
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/genxdata/genxdata/internal/generator/common"
)

func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed)) //nolint:gosec
}

type randomNumberParams struct {
	Start     *float64 `json:"start"     yaml:"start"`
	End       *float64 `json:"end"       yaml:"end"`
	Precision int      `json:"precision" yaml:"precision"`
	Seed      int64    `json:"seed"      yaml:"seed"`
}

// randomNumberStrategy draws uniform values from [start, end]. Absent
// bounds default to 0 and 99. With zero precision it emits integers,
// otherwise floats rounded to the requested number of decimal places.
type randomNumberStrategy struct {
	base

	params     randomNumberParams
	start, end float64
	rng        *rand.Rand
}

var _ Strategy = (*randomNumberStrategy)(nil)

func (s *randomNumberStrategy) bind(ctx *Context) error {
	s.bindContext(ctx)

	params, err := common.AnyToStructLenient[randomNumberParams](ctx.Params)
	if err != nil {
		return err
	}

	start, end := 0.0, 99.0
	if params.Start != nil {
		start = *params.Start
	}

	if params.End != nil {
		end = *params.End
	}

	if start >= end {
		return errors.Errorf("start %v must be less than end %v", start, end)
	}

	if params.Precision < 0 {
		return errors.Errorf("precision must not be negative: %d", params.Precision)
	}

	s.params = *params
	s.start, s.end = start, end

	if s.rng == nil {
		s.rng = newRNG(params.Seed)
	}

	return nil
}

func (s *randomNumberStrategy) GenerateChunk(count int) ([]any, error) {
	values := make([]any, count)

	for i := 0; i < count; i++ {
		values[i] = drawNumber(s.rng, s.start, s.end, s.params.Precision)
	}

	return values, nil
}

func (s *randomNumberStrategy) ResetState() {
	s.rng = newRNG(s.params.Seed)
}

func (s *randomNumberStrategy) Snapshot() (any, int, string) {
	if s.params.Precision == 0 {
		return nil, 0, "int"
	}

	return nil, 0, "float"
}

func drawNumber(rng *rand.Rand, start, end float64, precision int) any {
	if precision == 0 {
		lo, hi := int64(math.Ceil(start)), int64(math.Floor(end))
		if hi <= lo {
			return lo
		}

		return lo + rng.Int63n(hi-lo+1)
	}

	v := start + rng.Float64()*(end-start)
	scale := math.Pow10(precision)

	return math.Round(v*scale) / scale
}

type numberRange struct {
	Start        float64 `json:"start"        yaml:"start"`
	End          float64 `json:"end"          yaml:"end"`
	Distribution float64 `json:"distribution" yaml:"distribution"`
}

type distributedNumberParams struct {
	Ranges    []numberRange `json:"ranges"    yaml:"ranges"`
	Precision int           `json:"precision" yaml:"precision"`
	Seed      int64         `json:"seed"      yaml:"seed"`
}

// distributedNumberStrategy splits a chunk across weighted ranges. The
// distribution percentages must sum to 100; rounding leftovers go to the
// heaviest range.
type distributedNumberStrategy struct {
	base

	params distributedNumberParams
	rng    *rand.Rand
}

var _ Strategy = (*distributedNumberStrategy)(nil)

func (s *distributedNumberStrategy) bind(ctx *Context) error {
	s.bindContext(ctx)

	params, err := common.AnyToStructLenient[distributedNumberParams](ctx.Params)
	if err != nil {
		return err
	}

	if len(params.Ranges) == 0 {
		return errors.New("ranges must not be empty")
	}

	weights := make([]float64, len(params.Ranges))

	for i, r := range params.Ranges {
		if r.Start >= r.End {
			return errors.Errorf("ranges[%d]: start %v must be less than end %v", i, r.Start, r.End)
		}

		weights[i] = r.Distribution
	}

	if err := validateWeights(weights); err != nil {
		return err
	}

	s.params = *params

	if s.rng == nil {
		s.rng = newRNG(params.Seed)
	}

	return nil
}

func (s *distributedNumberStrategy) GenerateChunk(count int) ([]any, error) {
	weights := make([]float64, len(s.params.Ranges))
	for i, r := range s.params.Ranges {
		weights[i] = r.Distribution
	}

	values := make([]any, 0, count)

	for i, n := range distributeCounts(count, weights) {
		r := s.params.Ranges[i]
		for j := 0; j < n; j++ {
			values = append(values, drawNumber(s.rng, r.Start, r.End, s.params.Precision))
		}
	}

	s.rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	return values, nil
}

func (s *distributedNumberStrategy) ResetState() {
	s.rng = newRNG(s.params.Seed)
}

func validateWeights(weights []float64) error {
	var sum float64
	for _, w := range weights {
		if w < 0 {
			return errors.Errorf("distribution must not be negative: %v", w)
		}

		sum += w
	}

	if math.Abs(sum-100) > 1e-9 {
		return errors.Errorf("distribution percentages must sum to 100, got %v", sum)
	}

	return nil
}

// distributeCounts splits count proportionally to weights; any remainder
// after truncation lands on the heaviest weight.
func distributeCounts(count int, weights []float64) []int {
	counts := make([]int, len(weights))

	assigned := 0
	heaviest := 0

	for i, w := range weights {
		counts[i] = int(float64(count) * w / 100)
		assigned += counts[i]

		if w > weights[heaviest] {
			heaviest = i
		}
	}

	counts[heaviest] += count - assigned

	return counts
}
