package processor

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/genxdata/genxdata/internal/generator/frame"
	"github.com/genxdata/genxdata/internal/generator/models"
	"github.com/genxdata/genxdata/internal/generator/output"
	"github.com/genxdata/genxdata/internal/generator/output/general"
	"github.com/genxdata/genxdata/internal/generator/output/stream"
	"github.com/genxdata/genxdata/internal/generator/strategy"
)

// StreamingProcessor type generates the dataset chunk by chunk, carrying
// generator state between chunks, and delivers batches either to a
// message broker (stream config) or to per-batch files (batch config).
type StreamingProcessor struct {
	core

	// OnProgress, when set, is called after every chunk with the rows
	// finished so far and the total.
	OnProgress func(done, total int)
}

var _ Processor = (*StreamingProcessor)(nil)

func NewStreamingProcessor(cfg *models.GenerationConfig, logger *slog.Logger, fs afero.Fs) *StreamingProcessor {
	return &StreamingProcessor{core: newCore(cfg, logger, fs)}
}

func (p *StreamingProcessor) sizes() (chunkSize, batchSize int) {
	switch {
	case p.cfg.Stream != nil:
		return p.cfg.Stream.ChunkSize, p.cfg.Stream.BatchSize
	case p.cfg.Batch != nil:
		return p.cfg.Batch.ChunkSize, p.cfg.Batch.BatchSize
	default:
		return models.DefaultChunkSize, models.DefaultBatchSize
	}
}

func (p *StreamingProcessor) newWriter() (output.Writer, error) {
	switch {
	case p.cfg.Stream != nil:
		return stream.NewWriter(p.cfg.Stream)
	case p.cfg.Batch != nil:
		return general.NewBatchWriter(p.fs, p.cfg.Batch.FileWriter)
	default:
		return nil, errors.New("streaming run requires a stream or batch config")
	}
}

//nolint:funlen
func (p *StreamingProcessor) Run(ctx context.Context) (*Result, error) {
	rows := p.effectiveRows()
	chunkSize, batchSize := p.sizes()

	writer, err := p.newWriter()
	if err != nil {
		return failedResult(TypeStreaming, p.cfg, err), err
	}

	p.logger.Info("starting chunked generation",
		slog.String("config", p.cfg.Name()),
		slog.Int("rows", rows),
		slog.Int("chunk_size", chunkSize),
		slog.Int("batch_size", batchSize))

	totalBatches := (rows + batchSize - 1) / batchSize

	var (
		columnNames []string
		done        int
		chunkIndex  int
		batchIndex  int
	)

	for done < rows {
		if err := ctx.Err(); err != nil {
			return failedResult(TypeStreaming, p.cfg, err), err
		}

		n := chunkSize
		if remaining := rows - done; remaining < n {
			n = remaining
		}

		chunkIndex++

		f := frame.New(n, p.cfg.ColumnNames)

		if err := p.processColumns(f, strategy.ModeStreamBatch, nil); err != nil {
			return failedResult(TypeStreaming, p.cfg, err), err
		}

		for offset := 0; offset < f.Len(); offset += batchSize {
			end := offset + batchSize
			if end > f.Len() {
				end = f.Len()
			}

			batchIndex++

			part := f.Slice(offset, end)
			meta := &output.BatchMeta{
				BatchIndex:   batchIndex,
				ChunkIndex:   chunkIndex,
				BatchSize:    part.Len(),
				TotalBatches: totalBatches,
				Timestamp:    time.Now(),
			}

			err := p.tracker.Measure("write/batch", 0, func() error {
				_, err := writer.Write(part, meta)

				return err
			})
			if err != nil {
				return failedResult(TypeStreaming, p.cfg, err), err
			}
		}

		done += n
		columnNames = f.Columns()

		if p.OnProgress != nil {
			p.OnProgress(done, rows)
		}

		p.logger.Debug("chunk delivered",
			slog.Int("chunk", chunkIndex),
			slog.Int("rows_done", done))
	}

	summary, err := writer.Finalize()
	if err != nil {
		return failedResult(TypeStreaming, p.cfg, err), err
	}

	result := &Result{
		Status:           StatusSuccess,
		ProcessorType:    TypeStreaming,
		ConfigName:       p.cfg.Name(),
		RowsGenerated:    done,
		ColumnsGenerated: len(columnNames),
		ColumnNames:      columnNames,
		ChunksProcessed:  chunkIndex,
		ChunkSize:        chunkSize,
		BatchSize:        batchSize,
		WriterSummary:    summary,
		Performance:      p.tracker.Report(),
	}

	p.logger.Info("chunked generation finished",
		slog.String("config", p.cfg.Name()),
		slog.Int("rows", result.RowsGenerated),
		slog.Int("chunks", result.ChunksProcessed))

	return result, nil
}
