// Package processor orchestrates generation runs: it walks the column
// configs, applies strategies to a frame and hands finished frames to a
// writer. The normal processor materializes the whole dataset at once,
// the streaming processor works in chunks with state carried between
// them.
package processor

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/genxdata/genxdata/internal/generator/frame"
	"github.com/genxdata/genxdata/internal/generator/models"
	"github.com/genxdata/genxdata/internal/generator/perf"
	"github.com/genxdata/genxdata/internal/generator/strategy"
)

// Processor is the contract both run modes implement.
type Processor interface {
	Run(ctx context.Context) (*Result, error)
}

// New picks the processor matching the config: chunked when a stream or
// batch section is present, single-pass otherwise.
func New(cfg *models.GenerationConfig, logger *slog.Logger, fs afero.Fs) Processor {
	if cfg.Stream != nil || cfg.Batch != nil {
		return NewStreamingProcessor(cfg, logger, fs)
	}

	return NewNormalProcessor(cfg, logger, fs)
}

// core holds what both processors share: the config, the strategy pool
// and the cross-chunk state.
type core struct {
	cfg     *models.GenerationConfig
	logger  *slog.Logger
	fs      afero.Fs
	factory *strategy.Factory
	state   *strategy.SharedState
	tracker *perf.Tracker
}

func newCore(cfg *models.GenerationConfig, logger *slog.Logger, fs afero.Fs) core {
	if logger == nil {
		logger = slog.Default()
	}

	if fs == nil {
		fs = afero.NewOsFs()
	}

	return core{
		cfg:     cfg,
		logger:  logger,
		fs:      fs,
		factory: strategy.NewFactory(logger),
		state:   strategy.NewSharedState(),
		tracker: perf.NewTracker(),
	}
}

// effectiveRows applies the minimum row floor.
func (c *core) effectiveRows() int {
	if c.cfg.RowsCount < models.MinimumRowsAllowed {
		c.logger.Warn("requested row count is below the allowed minimum, raising it",
			slog.Int("requested", c.cfg.RowsCount),
			slog.Int("minimum", models.MinimumRowsAllowed))

		return models.MinimumRowsAllowed
	}

	return c.cfg.RowsCount
}

// processColumns runs every enabled column config against the frame in
// declaration order, then shuffles and strips intermediate columns. The
// progress callback, when set, is invoked after each finished column.
func (c *core) processColumns(f *frame.Frame, mode strategy.Mode, progress func(done, total int)) error {
	total := 0
	for _, cc := range c.cfg.Configs {
		if !cc.Disabled {
			total += len(cc.ColumnNames)
		}
	}

	done := 0

	for _, cc := range c.cfg.Configs {
		if cc.Disabled {
			c.logger.Debug("skipping disabled config", slog.Any("columns", cc.ColumnNames))

			continue
		}

		for _, column := range cc.ColumnNames {
			if err := c.processColumn(f, mode, cc, column); err != nil {
				c.logger.Error("failed to generate column",
					slog.String("column", column),
					slog.String("strategy", cc.Strategy.Name),
					slog.Any("error", err))

				return errors.WithMessagef(err, "column %q", column)
			}

			if cc.Intermediate {
				f.MarkIntermediate(column)
			}

			done++

			if progress != nil {
				progress(done, total)
			}
		}
	}

	if c.cfg.Shuffle {
		f.Shuffle(rand.New(rand.NewSource(c.shuffleSeed()))) //nolint:gosec
	}

	f.DropIntermediate()

	return nil
}

func (c *core) processColumn(f *frame.Frame, mode strategy.Mode, cc *models.ColumnConfig, column string) error {
	sctx := &strategy.Context{
		Mode:   mode,
		Logger: c.logger,
		Frame:  f,
		Column: column,
		Rows:   f.Len(),
		Unique: cc.Strategy.Unique,
		Mask:   cc.Mask,
		Params: cc.Strategy.Params,
		State:  c.state,
	}

	strat, err := c.factory.GetOrCreate(strategy.Kind(cc.Strategy.Name), sctx)
	if err != nil {
		return err
	}

	return c.tracker.Measure("strategy/"+cc.Strategy.Name, f.Len(), func() error {
		return strategy.Apply(strat, sctx)
	})
}

func (c *core) shuffleSeed() int64 {
	if c.cfg.Seed != 0 {
		return c.cfg.Seed
	}

	return rand.Int63() //nolint:gosec
}

func failedResult(processorType string, cfg *models.GenerationConfig, err error) *Result {
	return &Result{
		Status:        StatusError,
		ProcessorType: processorType,
		ConfigName:    cfg.Name(),
		Error:         err.Error(),
	}
}
