package strategy

import (
	"math/rand"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/genxdata/genxdata/internal/generator/common"
)

const defaultDateFormat = "%Y-%m-%d"

func parseDate(value, format string) (time.Time, error) {
	layout := common.StrftimeLayout(format)

	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, errors.Errorf("failed to parse date %q with format %q: %v", value, format, err)
	}

	return t, nil
}

type randomDateParams struct {
	StartDate    string `json:"start_date"    yaml:"start_date"`
	EndDate      string `json:"end_date"      yaml:"end_date"`
	Format       string `json:"format"        yaml:"format"`
	OutputFormat string `json:"output_format" yaml:"output_format"`
	Seed         int64  `json:"seed"          yaml:"seed"`
}

// randomDateStrategy draws uniform dates from [start_date, end_date].
// format parses the bounds, output_format renders the values.
type randomDateStrategy struct {
	base

	params randomDateParams
	start  time.Time
	end    time.Time
	rng    *rand.Rand
}

var _ Strategy = (*randomDateStrategy)(nil)

func (s *randomDateStrategy) bind(ctx *Context) error {
	s.bindContext(ctx)

	params, err := common.AnyToStructLenient[randomDateParams](ctx.Params)
	if err != nil {
		return err
	}

	if params.Format == "" {
		params.Format = defaultDateFormat
	}

	if params.OutputFormat == "" {
		params.OutputFormat = defaultDateFormat
	}

	start, err := parseDate(params.StartDate, params.Format)
	if err != nil {
		return err
	}

	end, err := parseDate(params.EndDate, params.Format)
	if err != nil {
		return err
	}

	if !start.Before(end) {
		return errors.Errorf("start_date %q must be before end_date %q", params.StartDate, params.EndDate)
	}

	s.params = *params
	s.start, s.end = start, end

	if s.rng == nil {
		s.rng = newRNG(params.Seed)
	}

	return nil
}

func (s *randomDateStrategy) GenerateChunk(count int) ([]any, error) {
	layout := common.StrftimeLayout(s.params.OutputFormat)
	span := s.end.Unix() - s.start.Unix()

	values := make([]any, count)

	for i := 0; i < count; i++ {
		offset := int64(0)
		if span > 0 {
			offset = s.rng.Int63n(span + 1)
		}

		values[i] = time.Unix(s.start.Unix()+offset, 0).UTC().Format(layout)
	}

	return values, nil
}

func (s *randomDateStrategy) ResetState() {
	s.rng = newRNG(s.params.Seed)
}

func (s *randomDateStrategy) Snapshot() (any, int, string) {
	return nil, 0, "string"
}

type dateRange struct {
	StartDate    string  `json:"start_date"    yaml:"start_date"`
	EndDate      string  `json:"end_date"      yaml:"end_date"`
	Format       string  `json:"format"        yaml:"format"`
	OutputFormat string  `json:"output_format" yaml:"output_format"`
	Distribution float64 `json:"distribution"  yaml:"distribution"`
}

type distributedDateParams struct {
	Ranges []dateRange `json:"ranges" yaml:"ranges"`
	Seed   int64       `json:"seed"   yaml:"seed"`
}

// distributedDateStrategy splits a chunk across weighted date windows.
// Each range carries its own parse and output formats.
type distributedDateStrategy struct {
	base

	params distributedDateParams
	starts []time.Time
	ends   []time.Time
	rng    *rand.Rand
}

var _ Strategy = (*distributedDateStrategy)(nil)

func (s *distributedDateStrategy) bind(ctx *Context) error {
	s.bindContext(ctx)

	params, err := common.AnyToStructLenient[distributedDateParams](ctx.Params)
	if err != nil {
		return err
	}

	if len(params.Ranges) == 0 {
		return errors.New("ranges must not be empty")
	}

	starts := make([]time.Time, len(params.Ranges))
	ends := make([]time.Time, len(params.Ranges))
	weights := make([]float64, len(params.Ranges))

	for i, r := range params.Ranges {
		if r.Format == "" {
			params.Ranges[i].Format = defaultDateFormat
			r.Format = defaultDateFormat
		}

		if r.OutputFormat == "" {
			params.Ranges[i].OutputFormat = defaultDateFormat
		}

		start, err := parseDate(r.StartDate, r.Format)
		if err != nil {
			return errors.WithMessagef(err, "ranges[%d]", i)
		}

		end, err := parseDate(r.EndDate, r.Format)
		if err != nil {
			return errors.WithMessagef(err, "ranges[%d]", i)
		}

		if !start.Before(end) {
			return errors.Errorf("ranges[%d]: start_date %q must be before end_date %q", i, r.StartDate, r.EndDate)
		}

		starts[i], ends[i] = start, end
		weights[i] = r.Distribution
	}

	if err := validateWeights(weights); err != nil {
		return err
	}

	s.params = *params
	s.starts, s.ends = starts, ends

	if s.rng == nil {
		s.rng = newRNG(params.Seed)
	}

	return nil
}

func (s *distributedDateStrategy) GenerateChunk(count int) ([]any, error) {
	weights := make([]float64, len(s.params.Ranges))
	for i, r := range s.params.Ranges {
		weights[i] = r.Distribution
	}

	values := make([]any, 0, count)

	for i, n := range distributeCounts(count, weights) {
		layout := common.StrftimeLayout(s.params.Ranges[i].OutputFormat)
		span := s.ends[i].Unix() - s.starts[i].Unix()

		for j := 0; j < n; j++ {
			offset := int64(0)
			if span > 0 {
				offset = s.rng.Int63n(span + 1)
			}

			values = append(values, time.Unix(s.starts[i].Unix()+offset, 0).UTC().Format(layout))
		}
	}

	s.rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	return values, nil
}

func (s *distributedDateStrategy) ResetState() {
	s.rng = newRNG(s.params.Seed)
}

func (s *distributedDateStrategy) Snapshot() (any, int, string) {
	return nil, 0, "string"
}

type dateSeriesParams struct {
	StartDate    string `json:"start_date"    yaml:"start_date"`
	Freq         string `json:"freq"          yaml:"freq"`
	Format       string `json:"format"        yaml:"format"`
	OutputFormat string `json:"output_format" yaml:"output_format"`
}

// dateSeriesStrategy emits evenly spaced dates starting at start_date,
// stepping by the configured frequency. Chunked modes resume from the
// index recorded in shared state.
type dateSeriesStrategy struct {
	base

	params dateSeriesParams
	start  time.Time
	index  int
}

var _ Strategy = (*dateSeriesStrategy)(nil)

func (s *dateSeriesStrategy) bind(ctx *Context) error {
	s.bindContext(ctx)

	params, err := common.AnyToStructLenient[dateSeriesParams](ctx.Params)
	if err != nil {
		return err
	}

	if params.Format == "" {
		params.Format = defaultDateFormat
	}

	if params.OutputFormat == "" {
		params.OutputFormat = defaultDateFormat
	}

	if params.Freq == "" {
		params.Freq = "D"
	}

	start, err := parseDate(params.StartDate, params.Format)
	if err != nil {
		return err
	}

	if _, _, _, err := freqStep(params.Freq); err != nil {
		return err
	}

	s.params = *params
	s.start = start

	if ctx.Mode == ModeStreamBatch {
		key := StateKey{Kind: s.kind, Column: ctx.Column}
		if ctx.State.Has(key) {
			s.index = ctx.State.Get(key).LastIndex
		}
	}

	return nil
}

// freqStep maps a frequency alias to a calendar step (years, months,
// days) or a sub-day duration; exactly one of the two is non-zero.
func freqStep(freq string) (years int, months int, d time.Duration, err error) {
	switch strings.ToUpper(freq) {
	case "Y", "YS":
		return 1, 0, 0, nil
	case "M", "MS":
		return 0, 1, 0, nil
	case "W":
		return 0, 0, 7 * 24 * time.Hour, nil
	case "D":
		return 0, 0, 24 * time.Hour, nil
	case "H":
		return 0, 0, time.Hour, nil
	case "T", "MIN":
		return 0, 0, time.Minute, nil
	case "S":
		return 0, 0, time.Second, nil
	default:
		return 0, 0, 0, errors.Errorf("unsupported freq: %q", freq)
	}
}

func (s *dateSeriesStrategy) at(index int) time.Time {
	years, months, d, _ := freqStep(s.params.Freq)
	if d != 0 {
		return s.start.Add(time.Duration(index) * d)
	}

	return s.start.AddDate(years*index, months*index, 0)
}

func (s *dateSeriesStrategy) GenerateChunk(count int) ([]any, error) {
	layout := common.StrftimeLayout(s.params.OutputFormat)

	values := make([]any, count)

	for i := 0; i < count; i++ {
		values[i] = s.at(s.index).Format(layout)
		s.index++
	}

	return values, nil
}

func (s *dateSeriesStrategy) ResetState() {
	s.index = 0
}

func (s *dateSeriesStrategy) Snapshot() (any, int, string) {
	layout := common.StrftimeLayout(s.params.OutputFormat)

	return s.at(s.index - 1).Format(layout), s.index, "string"
}
