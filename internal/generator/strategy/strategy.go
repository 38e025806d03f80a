// Package strategy implements the column value generators and the
// machinery that applies them to a frame: masked application, uniqueness
// enforcement and cross-chunk state for streaming generation.
package strategy

import (
	"log/slog"

	"github.com/genxdata/genxdata/internal/generator/frame"
)

// Kind type identifies a registered generator.
type Kind string

const (
	KindSeries                 Kind = "SERIES_STRATEGY"
	KindRandomNumberRange      Kind = "RANDOM_NUMBER_RANGE_STRATEGY"
	KindDistributedNumberRange Kind = "DISTRIBUTED_NUMBER_RANGE_STRATEGY"
	KindRandomDateRange        Kind = "RANDOM_DATE_RANGE_STRATEGY"
	KindDateGenerator          Kind = "DATE_GENERATOR_STRATEGY"
	KindDistributedDateRange   Kind = "DISTRIBUTED_DATE_RANGE_STRATEGY"
	KindDateSeries             Kind = "DATE_SERIES_STRATEGY"
	KindTimeRange              Kind = "TIME_RANGE_STRATEGY"
	KindDistributedTimeRange   Kind = "DISTRIBUTED_TIME_RANGE_STRATEGY"
	KindDistributedChoice      Kind = "DISTRIBUTED_CHOICE_STRATEGY"
	KindPattern                Kind = "PATTERN_STRATEGY"
	KindUUID                   Kind = "UUID_STRATEGY"
	KindRandomName             Kind = "RANDOM_NAME_STRATEGY"
	KindConcat                 Kind = "CONCAT_STRATEGY"
	KindMapping                Kind = "MAPPING_STRATEGY"
	KindReplacement            Kind = "REPLACEMENT_STRATEGY"
	KindDelete                 Kind = "DELETE_STRATEGY"
)

// Mode type selects how state behaves between Apply calls.
type Mode int

const (
	// ModeNormal resets generator state before every application.
	ModeNormal Mode = iota
	// ModeStreamBatch carries state across chunks so sequences continue
	// where the previous chunk stopped.
	ModeStreamBatch
)

// Context type carries the per-application inputs of a strategy: the
// target frame and column, row count, uniqueness flag, mask and the raw
// parameter map. The factory rebinds it on every chunk so pooled
// strategies always see the current frame.
type Context struct {
	Mode   Mode
	Logger *slog.Logger
	Frame  *frame.Frame
	Column string
	Rows   int
	Unique bool
	Mask   string
	Params map[string]any
	State  *SharedState
}

// Strategy is the contract every generator implements. GenerateChunk
// produces exactly count values, ResetState rewinds the generator to its
// initial position.
type Strategy interface {
	GenerateChunk(count int) ([]any, error)
	ResetState()

	// Kind reports the registry name this instance was created under.
	Kind() Kind

	// bind decodes params and attaches the current context. Called by
	// the factory on creation and on every reuse from the pool.
	bind(ctx *Context) error

	// setKind stamps the registry name. Called once by the factory.
	setKind(kind Kind)

	// setTargetRows tells row-aware strategies (concat, mapping) which
	// frame rows the next chunk corresponds to.
	setTargetRows(idxs []int)

	// Snapshot reports the current generation state: the last produced
	// value, the running index and the value type. It is what gets
	// recorded into shared state in stream and batch modes, and it
	// returns zero values before anything was generated.
	Snapshot() (lastValue any, lastIndex int, dtype string)

	// uniqueByConstruction reports whether every generated value is
	// already distinct, making the unique flag a no-op.
	uniqueByConstruction() bool
}

// base carries the fields and default behavior shared by all strategies.
type base struct {
	ctx        Context
	kind       Kind
	targetRows []int
}

func (b *base) Kind() Kind {
	return b.kind
}

func (b *base) setKind(kind Kind) {
	b.kind = kind
}

func (b *base) bindContext(ctx *Context) {
	b.ctx = *ctx
	if b.ctx.Logger == nil {
		b.ctx.Logger = slog.Default()
	}
}

func (b *base) setTargetRows(idxs []int) {
	b.targetRows = idxs
}

func (b *base) ResetState() {}

func (b *base) uniqueByConstruction() bool {
	return false
}

func (b *base) Snapshot() (any, int, string) {
	return nil, 0, ""
}
