package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/somniflow/somniflow/internal/version"
)

// versionCmd prints the build identity.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "somniflow %s\n", version.String())
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(versionCmd)
}
