package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/genxdata/genxdata/internal/generator/models"
)

// newValidateCommand creates the 'validate' command for CLI.
func newValidateCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:                   "validate PATH",
		Short:                 "Validates a generation config without generating data",
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &models.GenerationConfig{}
			if err := cfg.ParseFromFile(args[0]); err != nil {
				return err
			}

			root.log.Info("generation config is valid",
				slog.String("config", cfg.Name()),
				slog.Int("rows", cfg.RowsCount),
				slog.Int("configs", len(cfg.Configs)))

			return nil
		},
	}
}
