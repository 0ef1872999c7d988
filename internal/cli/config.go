package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/somniflow/somniflow/internal/config"
)

// configCmd groups config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

// configShowCmd prints the effective configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c := Config()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Home:        %s\n", c.Home)
		fmt.Fprintf(out, "Chain:       %s (%d)\n", c.Chain.Name, c.Chain.ID)
		fmt.Fprintf(out, "RPC:         %s\n", c.Chain.RPC)
		fmt.Fprintf(out, "Explorer:    %s\n", c.Chain.Explorer)
		fmt.Fprintf(out, "Streaming:   %s\n", c.Contracts.Streaming)
		fmt.Fprintf(out, "Marketplace: %s\n", c.Contracts.Marketplace)
		fmt.Fprintf(out, "Collection:  %s\n", c.Contracts.Collection)
		fmt.Fprintf(out, "Log level:   %s\n", c.Logging.Level)
		return nil
	},
}

// configInitCmd writes the default configuration file.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c := Config()
		path := config.Path(c.Home)

		if err := config.Save(c, path); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
