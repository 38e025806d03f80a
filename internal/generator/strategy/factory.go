package strategy

import (
	"log/slog"
	"sort"

	"github.com/pkg/errors"
)

type constructor func() Strategy

var registry = map[Kind]constructor{
	KindSeries:                 func() Strategy { return &seriesStrategy{} },
	KindRandomNumberRange:      func() Strategy { return &randomNumberStrategy{} },
	KindDistributedNumberRange: func() Strategy { return &distributedNumberStrategy{} },
	KindRandomDateRange:        func() Strategy { return &randomDateStrategy{} },
	KindDateGenerator:          func() Strategy { return &randomDateStrategy{} },
	KindDistributedDateRange:   func() Strategy { return &distributedDateStrategy{} },
	KindDateSeries:             func() Strategy { return &dateSeriesStrategy{} },
	KindTimeRange:              func() Strategy { return &timeRangeStrategy{} },
	KindDistributedTimeRange:   func() Strategy { return &distributedTimeStrategy{} },
	KindDistributedChoice:      func() Strategy { return &distributedChoiceStrategy{} },
	KindPattern:                func() Strategy { return &patternStrategy{} },
	KindUUID:                   func() Strategy { return &uuidStrategy{} },
	KindRandomName:             func() Strategy { return &randomNameStrategy{} },
	KindConcat:                 func() Strategy { return &concatStrategy{} },
	KindMapping:                func() Strategy { return &mappingStrategy{} },
	KindReplacement:            func() Strategy { return &replacementStrategy{} },
	KindDelete:                 func() Strategy { return &deleteStrategy{} },
}

// Kinds returns the registered strategy names in sorted order.
func Kinds() []string {
	names := make([]string, 0, len(registry))
	for kind := range registry {
		names = append(names, string(kind))
	}

	sort.Strings(names)

	return names
}

// PoolKey type addresses a pooled strategy instance: one per generator
// kind per column.
type PoolKey struct {
	Kind   Kind
	Column string
}

// Factory type creates strategies and pools them per (kind, column) so
// chunked generation reuses the same instance and its internal position.
type Factory struct {
	pool   map[PoolKey]Strategy
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}

	return &Factory{
		pool:   make(map[PoolKey]Strategy),
		logger: logger,
	}
}

// GetOrCreate returns the pooled instance for (kind, ctx.Column),
// creating it on first use. The context is rebound on every call so the
// instance tracks the current frame, row count and parameters while
// keeping its generation position.
func (f *Factory) GetOrCreate(kind Kind, ctx *Context) (Strategy, error) {
	ctor, ok := registry[kind]
	if !ok {
		return nil, errors.Errorf("unsupported strategy: %q", kind)
	}

	if ctx.Logger == nil {
		ctx.Logger = f.logger
	}

	if ctx.State == nil {
		ctx.State = NewSharedState()
	}

	key := PoolKey{Kind: kind, Column: ctx.Column}

	strat, ok := f.pool[key]
	if !ok {
		strat = ctor()
		strat.setKind(kind)
		f.pool[key] = strat

		f.logger.Debug("created strategy",
			slog.String("strategy", string(kind)),
			slog.String("column", ctx.Column))
	}

	if err := strat.bind(ctx); err != nil {
		return nil, errors.WithMessagef(err, "failed to configure strategy %q for column %q", kind, ctx.Column)
	}

	return strat, nil
}

// PoolSize returns the number of pooled instances.
func (f *Factory) PoolSize() int {
	return len(f.pool)
}
