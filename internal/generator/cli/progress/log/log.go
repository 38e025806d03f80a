package log

import (
	"fmt"
	"log/slog"

	"github.com/genxdata/genxdata/internal/generator/cli/progress"
)

var _ progress.Tracker = (*ProgressLog)(nil)

// ProgressLog type reports progress as log lines, used when stdout is
// not a terminal.
type ProgressLog struct {
	logger *slog.Logger
	title  string
	total  int
}

func New(logger *slog.Logger) *ProgressLog {
	return &ProgressLog{logger: logger}
}

func (p *ProgressLog) Start(title string, total int) {
	p.title = title
	p.total = total
}

func (p *ProgressLog) Update(done int) {
	percentage := 0
	if p.total > 0 {
		percentage = done * 100 / p.total
	}

	p.logger.Info(fmt.Sprintf("%s %d%% (%d / %d)", p.title, percentage, done, p.total))
}

func (p *ProgressLog) Wait() {}
