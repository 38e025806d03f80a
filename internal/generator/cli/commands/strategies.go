package commands

import (
	"github.com/spf13/cobra"

	"github.com/genxdata/genxdata/internal/generator/strategy"
)

// newStrategiesCommand creates the 'strategies' command for CLI.
func newStrategiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:                   "strategies",
		Short:                 "Lists the available column strategies",
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range strategy.Kinds() {
				cmd.Println(name)
			}
		},
	}
}
