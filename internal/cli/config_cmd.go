package cli

import (
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration as YAML",
		Long: `Print the configuration after applying defaults, the config file,
PLAYLIST_MAKER_* environment variables and flags, in that order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.Config.WriteYAML(cmd.OutOrStdout())
		},
	})

	return cmd
}
