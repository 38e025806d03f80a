package bar

import (
	"context"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/genxdata/genxdata/internal/generator/cli/progress"
)

const intervals = 50

var _ progress.Tracker = (*ProgressBar)(nil)

// ProgressBar type renders an interactive terminal progress bar.
type ProgressBar struct {
	manager    *mpb.Progress
	bar        *mpb.Bar
	lastUpdate time.Time
}

func New(ctx context.Context) *ProgressBar {
	return &ProgressBar{manager: mpb.NewWithContext(ctx)}
}

func (p *ProgressBar) Start(title string, total int) {
	if p.bar != nil {
		return
	}

	p.bar = p.manager.AddBar(
		int64(total),
		mpb.PrependDecorators(
			decor.Name(title, decor.WC{C: decor.DSyncSpaceR}),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{C: decor.DSyncSpaceR}),
			decor.Name("ETA", decor.WC{C: decor.DSyncSpaceR}),
			decor.EwmaETA(decor.ET_STYLE_HHMMSS, intervals),
		),
	)

	p.lastUpdate = time.Now()
}

func (p *ProgressBar) Update(done int) {
	if p.bar == nil {
		return
	}

	p.bar.EwmaSetCurrent(int64(done), time.Since(p.lastUpdate))
	p.lastUpdate = time.Now()
}

func (p *ProgressBar) Wait() {
	p.manager.Wait()
}
