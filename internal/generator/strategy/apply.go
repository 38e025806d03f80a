package strategy

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/pkg/errors"
)

const (
	uniqueMaxAttempts   = 10
	uniqueOverprovision = 2
	uniqueMinBatch      = 1
)

// Apply runs a strategy against its frame column: it resolves the mask
// to a set of target rows, generates exactly that many values, enforces
// uniqueness when requested and records resume state for chunked modes.
func Apply(strat Strategy, ctx *Context) error {
	if ctx.State == nil {
		ctx.State = NewSharedState()
	}

	f := ctx.Frame
	f.EnsureColumn(ctx.Column)

	idxs := maskedRows(ctx)
	if len(idxs) == 0 {
		return nil
	}

	strat.setTargetRows(idxs)

	if ctx.Mode == ModeNormal {
		strat.ResetState()
	}

	values, err := generateValues(strat, ctx, len(idxs))
	if err != nil {
		return err
	}

	for i, idx := range idxs {
		f.SetAt(ctx.Column, idx, values[i])
	}

	syncState(strat, ctx)

	return nil
}

// maskedRows resolves the mask expression into the list of row indexes
// to fill. A mask that fails at runtime falls back to every row, a mask
// that matches nothing skips the column; both are logged.
func maskedRows(ctx *Context) []int {
	f := ctx.Frame

	all := make([]int, f.Len())
	for i := range all {
		all[i] = i
	}

	if ctx.Mask == "" {
		return all
	}

	program, err := expr.Compile(ctx.Mask, expr.AllowUndefinedVariables())
	if err != nil {
		ctx.Logger.Warn("mask failed to compile, applying to all rows",
			slog.String("column", ctx.Column),
			slog.String("mask", ctx.Mask),
			slog.Any("error", err))

		return all
	}

	matched := make([]int, 0, f.Len())

	for i := 0; i < f.Len(); i++ {
		out, err := expr.Run(program, f.Row(i))
		if err != nil {
			ctx.Logger.Warn("mask failed at runtime, applying to all rows",
				slog.String("column", ctx.Column),
				slog.String("mask", ctx.Mask),
				slog.Any("error", err))

			return all
		}

		ok, isBool := out.(bool)
		if !isBool {
			ctx.Logger.Warn("mask is not boolean, applying to all rows",
				slog.String("column", ctx.Column),
				slog.String("mask", ctx.Mask))

			return all
		}

		if ok {
			matched = append(matched, i)
		}
	}

	if len(matched) == 0 {
		ctx.Logger.Warn("mask matched no rows, skipping column",
			slog.String("column", ctx.Column),
			slog.String("mask", ctx.Mask))
	}

	return matched
}

func generateValues(strat Strategy, ctx *Context, count int) ([]any, error) {
	values, err := strat.GenerateChunk(count)
	if err != nil {
		return nil, err
	}

	if len(values) != count {
		return nil, errors.Errorf("strategy produced %d values, want %d", len(values), count)
	}

	if ctx.Unique {
		switch {
		case strat.uniqueByConstruction():
			ctx.Logger.Debug("unique flag is redundant for this strategy, skipping enforcement",
				slog.String("column", ctx.Column),
				slog.String("strategy", string(strat.Kind())))
		case ctx.Mode == ModeStreamBatch:
			ctx.Logger.Warn("uniqueness tracking is disabled in chunked mode",
				slog.String("column", ctx.Column))
		default:
			values, err = enforceUnique(strat, ctx, values)
			if err != nil {
				return nil, err
			}
		}
	}

	return values, nil
}

// enforceUnique filters out values already seen for this column and
// regenerates replacements, giving up after a bounded number of retry
// rounds. The seen set lives in shared state so uniqueness holds across
// chunks.
func enforceUnique(strat Strategy, ctx *Context, values []any) ([]any, error) {
	seen := stateFor(strat, ctx).Unique

	kept := make([]any, 0, len(values))

	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}

		seen[v] = struct{}{}
		kept = append(kept, v)
	}

	needed := len(values) - len(kept)

	for attempt := 0; needed > 0 && attempt < uniqueMaxAttempts; attempt++ {
		batch := needed * uniqueOverprovision
		if batch < uniqueMinBatch {
			batch = uniqueMinBatch
		}

		candidates, err := strat.GenerateChunk(batch)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to regenerate unique values")
		}

		for _, v := range candidates {
			if needed == 0 {
				break
			}

			if _, dup := seen[v]; dup {
				continue
			}

			seen[v] = struct{}{}
			kept = append(kept, v)
			needed--
		}
	}

	if needed > 0 {
		return nil, errors.Errorf(
			"failed to generate enough unique values for column %q: %d of %d still missing after %d attempts",
			ctx.Column, needed, len(values), uniqueMaxAttempts)
	}

	return kept, nil
}

// syncState records the generator resume point after a chunk. Chunked
// modes keep the last value and position so the next chunk continues the
// sequence; normal mode only carries the unique set, which stateFor
// already maintains in place.
func syncState(strat Strategy, ctx *Context) {
	if ctx.Mode != ModeStreamBatch {
		return
	}

	cs := stateFor(strat, ctx)
	cs.LastValue, cs.LastIndex, cs.DType = strat.Snapshot()
}

func stateFor(strat Strategy, ctx *Context) *ColumnState {
	return ctx.State.Get(StateKey{Kind: strat.Kind(), Column: ctx.Column})
}
