package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// walletCmd groups wallet subcommands.
var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Inspect the wallet session",
}

// walletStatusCmd prints the current session state. In a CLI process no
// injected provider exists, so the live session is normally disconnected; the
// persisted connector choice from the application is still shown.
var walletStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the wallet session state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s := Core().Wallet()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Status:    %s\n", s.Status)
		if s.Address != "" {
			fmt.Fprintf(out, "Address:   %s\n", s.Address)
		}
		if s.ChainID != nil {
			fmt.Fprintf(out, "Chain:     %s\n", s.ChainID.String())
		}
		if s.ChainMismatch {
			fmt.Fprintln(out, "Mismatch:  wallet is on the wrong network")
		}
		if s.ErrorCode != "" {
			fmt.Fprintf(out, "Error:     %s (%s)\n", s.ErrorMessage, s.ErrorCode)
		}

		if persisted, err := connectorStore.Load(); err == nil && persisted != "" {
			fmt.Fprintf(out, "Connector: %s (persisted)\n", persisted)
		}
		return nil
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	walletCmd.AddCommand(walletStatusCmd)
	rootCmd.AddCommand(walletCmd)
}
