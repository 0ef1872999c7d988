package cli

import (
	"fmt"
	"math/big"
	"time"

	"github.com/spf13/cobra"

	coreerr "github.com/somniflow/somniflow/pkg/errors"
)

// streamCmd groups stream subcommands.
var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Inspect payment streams",
}

// streamGetCmd fetches a stream by id.
var streamGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a stream's on-chain state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, ok := new(big.Int).SetString(args[0], 10)
		if !ok || id.Sign() < 0 {
			return coreerr.WithDetails(coreerr.ErrInvalidInput, map[string]string{
				"reason": "stream id must be a non-negative integer",
				"id":     args[0],
			})
		}

		desc, err := Core().FetchStreamData(cmd.Context(), id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Stream:    %s\n", desc.StreamID.String())
		fmt.Fprintf(out, "Payer:     %s\n", desc.Payer)
		fmt.Fprintf(out, "Recipient: %s\n", desc.Recipient)
		fmt.Fprintf(out, "Token:     %s\n", desc.Token)
		fmt.Fprintf(out, "Deposit:   %s\n", desc.Deposit.String())
		fmt.Fprintf(out, "Remaining: %s\n", desc.RemainingBalance.String())
		fmt.Fprintf(out, "Withdrawn: %s\n", desc.WithdrawnAmount.String())
		fmt.Fprintf(out, "Start:     %s\n", unixTime(desc.StartTime))
		fmt.Fprintf(out, "Stop:      %s\n", unixTime(desc.StopTime))
		return nil
	},
}

// streamNextIDCmd reads the contract's next-id counter.
var streamNextIDCmd = &cobra.Command{
	Use:   "next-id",
	Short: "Show the streaming contract's next stream id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		next, err := Core().GetNextStreamID(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), next.String())
		return nil
	},
}

func unixTime(ts *big.Int) string {
	if ts == nil || !ts.IsInt64() {
		return "-"
	}
	return time.Unix(ts.Int64(), 0).UTC().Format(time.RFC3339)
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	streamCmd.AddCommand(streamGetCmd)
	streamCmd.AddCommand(streamNextIDCmd)
	rootCmd.AddCommand(streamCmd)
}
