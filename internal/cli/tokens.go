package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// tokensCmd prints the configured token table.
var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List the tokens the product knows about",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%-8s %-10s %-44s %s\n", "SYMBOL", "DECIMALS", "ADDRESS", "NAME")
		native := Config().Chain.Native
		fmt.Fprintf(out, "%-8s %-10d %-44s %s (native)\n", native.Symbol, native.Decimals, "-", native.Name)
		for _, t := range Config().Tokens {
			fmt.Fprintf(out, "%-8s %-10d %-44s %s\n", t.Symbol, t.Decimals, t.Address, t.Name)
		}
		return nil
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(tokensCmd)
}
