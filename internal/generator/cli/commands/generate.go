package commands

import (
	"log/slog"
	"os"

	"github.com/moby/term"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/genxdata/genxdata/internal/generator/cli/progress"
	"github.com/genxdata/genxdata/internal/generator/cli/progress/bar"
	progresslog "github.com/genxdata/genxdata/internal/generator/cli/progress/log"
	"github.com/genxdata/genxdata/internal/generator/models"
	"github.com/genxdata/genxdata/internal/generator/processor"
)

// generateOptions type is used to describe 'generate' command options.
type generateOptions struct {
	root *rootOptions

	configPath string
	streamPath string
	batchPath  string
	perfReport bool
	noProgress bool
}

// newGenerateCommand creates the 'generate' command for CLI.
func newGenerateCommand(root *rootOptions) *cobra.Command {
	opts := &generateOptions{root: root}

	cmd := &cobra.Command{
		Use:                   "generate [FLAGS] PATH",
		Short:                 "Generates a dataset from the given generation config",
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath = args[0]

			return runGenerate(cmd, opts)
		},
	}

	setupFlags(cmd.Flags(), opts)
	cmd.MarkFlagsMutuallyExclusive("stream", "batch")

	return cmd
}

func setupFlags(flags *pflag.FlagSet, opts *generateOptions) {
	flags.StringVar(&opts.streamPath, "stream", "", "Path to a stream config replacing the config's delivery target")
	flags.StringVar(&opts.batchPath, "batch", "", "Path to a batch config replacing the config's delivery target")
	flags.BoolVar(&opts.perfReport, "perf-report", false, "Include the performance report in the result")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "Disable progress reporting")
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	log := opts.root.log

	cfg := &models.GenerationConfig{}
	if err := cfg.ParseFromFile(opts.configPath); err != nil {
		return err
	}

	if opts.streamPath != "" {
		if err := cfg.AttachStreamFile(opts.streamPath); err != nil {
			return err
		}
	}

	if opts.batchPath != "" {
		if err := cfg.AttachBatchFile(opts.batchPath); err != nil {
			return err
		}
	}

	proc := processor.New(cfg, log, afero.NewOsFs())

	if !opts.noProgress {
		tracker := newTracker(cmd, log)
		report := func(done, total int) {
			tracker.Start(cfg.Name(), total)
			tracker.Update(done)
		}

		switch p := proc.(type) {
		case *processor.StreamingProcessor:
			p.OnProgress = report
		case *processor.NormalProcessor:
			p.OnProgress = report
		}

		defer tracker.Wait()
	}

	result, err := proc.Run(cmd.Context())
	if err != nil {
		return errors.WithMessage(err, "generation failed")
	}

	if !opts.perfReport {
		result.Performance = nil
	}

	rendered, err := yaml.Marshal(result)
	if err != nil {
		return errors.New(err.Error())
	}

	cmd.Print(string(rendered))

	return nil
}

// newTracker picks a live bar on a terminal and log lines otherwise.
func newTracker(cmd *cobra.Command, log *slog.Logger) progress.Tracker {
	if term.IsTerminal(os.Stdout.Fd()) {
		return bar.New(cmd.Context())
	}

	return progresslog.New(log)
}
