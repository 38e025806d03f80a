// Package commands assembles the genxdata command tree.
package commands

import (
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/genxdata/genxdata/internal/generator/logger"
	"github.com/genxdata/genxdata/internal/generator/models"
)

// rootOptions type is used to describe 'genxdata' command options.
type rootOptions struct {
	appConfigPath string
	logFormat     string
	logLevel      string
	cpuProfile    string
	memProfile    string

	log         *slog.Logger
	cpuProfileF *os.File
}

// NewRootCommand creates the 'genxdata' command for CLI.
func NewRootCommand(version string) *cobra.Command {
	cobra.EnableCommandSorting = false

	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:                   "genxdata [FLAGS] [COMMAND]",
		Short:                 "Declarative synthetic tabular data generator",
		Version:               version,
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
			HiddenDefaultCmd:  true,
		},
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := opts.setupLogger(); err != nil {
				return err
			}

			return opts.startProfiling()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			opts.stopProfiling()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.appConfigPath, "config", "c", "", "Path to application config file")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format (text or json)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.cpuProfile, "cpu-profile", "", "Write a CPU profile to the given file")
	flags.StringVar(&opts.memProfile, "memory-profile", "", "Write a heap profile to the given file")

	cmd.AddCommand(
		newGenerateCommand(opts),
		newValidateCommand(opts),
		newStrategiesCommand(),
	)

	return cmd
}

// setupLogger builds the process logger from the app config file, the
// environment and the CLI flags, in that order of precedence.
func (o *rootOptions) setupLogger() error {
	cfg := &models.AppConfig{}
	if err := cfg.ParseFromFile(o.appConfigPath); err != nil {
		return errors.WithMessage(err, "failed to load app config")
	}

	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}

	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	log, err := logger.Setup(cfg, os.Stderr)
	if err != nil {
		return err
	}

	o.log = log

	return nil
}

func (o *rootOptions) startProfiling() error {
	if o.cpuProfile == "" {
		return nil
	}

	file, err := os.Create(o.cpuProfile)
	if err != nil {
		return errors.WithMessagef(err, "failed to create CPU profile file %q", o.cpuProfile)
	}

	if err := pprof.StartCPUProfile(file); err != nil {
		_ = file.Close()

		return errors.WithMessage(err, "failed to start CPU profiling")
	}

	o.cpuProfileF = file

	return nil
}

func (o *rootOptions) stopProfiling() {
	if o.cpuProfileF != nil {
		pprof.StopCPUProfile()

		if err := o.cpuProfileF.Close(); err != nil {
			o.log.Error("failed to close CPU profile file", slog.Any("error", err))
		}
	}

	if o.memProfile != "" {
		file, err := os.Create(o.memProfile)
		if err != nil {
			o.log.Error("failed to create memory profile file", slog.Any("error", err))

			return
		}
		defer file.Close()

		if err := pprof.WriteHeapProfile(file); err != nil {
			o.log.Error("failed to write memory profile", slog.Any("error", err))
		}
	}
}
