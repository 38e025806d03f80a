package strategy

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/genxdata/genxdata/internal/generator/common"
)

const defaultTimeFormat = "%H:%M:%S"

// timeWindow is a start/end pair within a day, in seconds since
// midnight. When end is earlier than start the window wraps past
// midnight, so end carries an extra day.
type timeWindow struct {
	start int64
	end   int64
}

func parseTimeWindow(startValue, endValue, format string) (timeWindow, error) {
	layout := common.StrftimeLayout(format)

	start, err := time.Parse(layout, startValue)
	if err != nil {
		return timeWindow{}, errors.Errorf("failed to parse time %q with format %q: %v", startValue, format, err)
	}

	end, err := time.Parse(layout, endValue)
	if err != nil {
		return timeWindow{}, errors.Errorf("failed to parse time %q with format %q: %v", endValue, format, err)
	}

	w := timeWindow{
		start: daySeconds(start),
		end:   daySeconds(end),
	}

	if w.start == w.end {
		return timeWindow{}, errors.Errorf("start time %q must be before end time %q", startValue, endValue)
	}

	if w.end < w.start {
		w.end += 24 * 3600
	}

	return w, nil
}

func daySeconds(t time.Time) int64 {
	return int64(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

func (w timeWindow) draw(rng *rand.Rand, layout string) string {
	sec := w.start
	if span := w.end - w.start; span > 0 {
		sec += rng.Int63n(span + 1)
	}

	sec %= 24 * 3600

	return time.Date(0, 1, 1, 0, 0, int(sec), 0, time.UTC).Format(layout)
}

type timeRangeParams struct {
	StartTime string `json:"start_time" yaml:"start_time"`
	EndTime   string `json:"end_time"   yaml:"end_time"`
	Format    string `json:"format"     yaml:"format"`
	Seed      int64  `json:"seed"       yaml:"seed"`
}

// timeRangeStrategy draws uniform times of day from a window, including
// windows that wrap past midnight.
type timeRangeStrategy struct {
	base

	params timeRangeParams
	window timeWindow
	rng    *rand.Rand
}

var _ Strategy = (*timeRangeStrategy)(nil)

func (s *timeRangeStrategy) bind(ctx *Context) error {
	s.bindContext(ctx)

	params, err := common.AnyToStructLenient[timeRangeParams](ctx.Params)
	if err != nil {
		return err
	}

	if params.StartTime == "" {
		params.StartTime = "00:00:00"
	}

	if params.EndTime == "" {
		params.EndTime = "23:59:59"
	}

	if params.Format == "" {
		params.Format = defaultTimeFormat
	}

	window, err := parseTimeWindow(params.StartTime, params.EndTime, params.Format)
	if err != nil {
		return err
	}

	s.params = *params
	s.window = window

	if s.rng == nil {
		s.rng = newRNG(params.Seed)
	}

	return nil
}

func (s *timeRangeStrategy) GenerateChunk(count int) ([]any, error) {
	layout := common.StrftimeLayout(s.params.Format)

	values := make([]any, count)
	for i := 0; i < count; i++ {
		values[i] = s.window.draw(s.rng, layout)
	}

	return values, nil
}

func (s *timeRangeStrategy) ResetState() {
	s.rng = newRNG(s.params.Seed)
}

func (s *timeRangeStrategy) Snapshot() (any, int, string) {
	return nil, 0, "string"
}

type timeRangeEntry struct {
	Start        string  `json:"start"        yaml:"start"`
	End          string  `json:"end"          yaml:"end"`
	Format       string  `json:"format"       yaml:"format"`
	Distribution float64 `json:"distribution" yaml:"distribution"`
}

type distributedTimeParams struct {
	Ranges []timeRangeEntry `json:"ranges" yaml:"ranges"`
	Seed   int64            `json:"seed"   yaml:"seed"`
}

// distributedTimeStrategy splits a chunk across weighted time-of-day
// windows.
type distributedTimeStrategy struct {
	base

	params  distributedTimeParams
	windows []timeWindow
	rng     *rand.Rand
}

var _ Strategy = (*distributedTimeStrategy)(nil)

func (s *distributedTimeStrategy) bind(ctx *Context) error {
	s.bindContext(ctx)

	params, err := common.AnyToStructLenient[distributedTimeParams](ctx.Params)
	if err != nil {
		return err
	}

	if len(params.Ranges) == 0 {
		return errors.New("ranges must not be empty")
	}

	windows := make([]timeWindow, len(params.Ranges))
	weights := make([]float64, len(params.Ranges))

	for i, r := range params.Ranges {
		if r.Start == "" {
			params.Ranges[i].Start = "00:00:00"
			r.Start = "00:00:00"
		}

		if r.End == "" {
			params.Ranges[i].End = "23:59:59"
			r.End = "23:59:59"
		}

		if r.Format == "" {
			params.Ranges[i].Format = defaultTimeFormat
			r.Format = defaultTimeFormat
		}

		window, err := parseTimeWindow(r.Start, r.End, r.Format)
		if err != nil {
			return errors.WithMessagef(err, "ranges[%d]", i)
		}

		windows[i] = window
		weights[i] = r.Distribution
	}

	if err := validateWeights(weights); err != nil {
		return err
	}

	s.params = *params
	s.windows = windows

	if s.rng == nil {
		s.rng = newRNG(params.Seed)
	}

	return nil
}

func (s *distributedTimeStrategy) GenerateChunk(count int) ([]any, error) {
	weights := make([]float64, len(s.params.Ranges))
	for i, r := range s.params.Ranges {
		weights[i] = r.Distribution
	}

	values := make([]any, 0, count)

	for i, n := range distributeCounts(count, weights) {
		layout := common.StrftimeLayout(s.params.Ranges[i].Format)
		for j := 0; j < n; j++ {
			values = append(values, s.windows[i].draw(s.rng, layout))
		}
	}

	s.rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	return values, nil
}

func (s *distributedTimeStrategy) ResetState() {
	s.rng = newRNG(s.params.Seed)
}

func (s *distributedTimeStrategy) Snapshot() (any, int, string) {
	return nil, 0, "string"
}
