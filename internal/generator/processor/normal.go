package processor

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/genxdata/genxdata/internal/generator/frame"
	"github.com/genxdata/genxdata/internal/generator/models"
	"github.com/genxdata/genxdata/internal/generator/output"
	"github.com/genxdata/genxdata/internal/generator/output/general"
	"github.com/genxdata/genxdata/internal/generator/strategy"
)

// NormalProcessor type materializes the whole dataset in one frame and
// writes it in a single pass.
type NormalProcessor struct {
	core

	// OnProgress, when set, is called after every generated column with
	// the columns finished so far and the total.
	OnProgress func(done, total int)
}

var _ Processor = (*NormalProcessor)(nil)

func NewNormalProcessor(cfg *models.GenerationConfig, logger *slog.Logger, fs afero.Fs) *NormalProcessor {
	return &NormalProcessor{core: newCore(cfg, logger, fs)}
}

func (p *NormalProcessor) Run(ctx context.Context) (*Result, error) {
	rows := p.effectiveRows()

	p.logger.Info("starting generation",
		slog.String("config", p.cfg.Name()),
		slog.Int("rows", rows))

	f := frame.New(rows, p.cfg.ColumnNames)

	if err := p.processColumns(f, strategy.ModeNormal, p.OnProgress); err != nil {
		return failedResult(TypeNormal, p.cfg, err), err
	}

	if err := ctx.Err(); err != nil {
		return failedResult(TypeNormal, p.cfg, err), err
	}

	summary, err := p.write(f)
	if err != nil {
		return failedResult(TypeNormal, p.cfg, err), err
	}

	result := &Result{
		Status:           StatusSuccess,
		ProcessorType:    TypeNormal,
		ConfigName:       p.cfg.Name(),
		RowsGenerated:    f.Len(),
		ColumnsGenerated: len(f.Columns()),
		ColumnNames:      f.Columns(),
		WriterSummary:    summary,
		Performance:      p.tracker.Report(),
	}

	p.logger.Info("generation finished",
		slog.String("config", p.cfg.Name()),
		slog.Int("rows", result.RowsGenerated),
		slog.Int("columns", result.ColumnsGenerated))

	return result, nil
}

func (p *NormalProcessor) write(f *frame.Frame) (*output.Summary, error) {
	writer, err := general.NewWriter(p.fs, p.cfg.FileWriter)
	if err != nil {
		return nil, err
	}

	meta := &output.BatchMeta{
		BatchIndex:   1,
		ChunkIndex:   1,
		BatchSize:    f.Len(),
		TotalBatches: 1,
		Timestamp:    time.Now(),
	}

	err = p.tracker.Measure("write/"+p.cfg.FileWriter.Type, 0, func() error {
		if _, err := writer.Write(f, meta); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return writer.Finalize()
}
