package cli

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	coreerr "github.com/somniflow/somniflow/pkg/errors"
)

// listingCmd groups marketplace subcommands.
var listingCmd = &cobra.Command{
	Use:   "listing",
	Short: "Inspect marketplace listings",
}

// listingGetCmd fetches a listing by token id.
var listingGetCmd = &cobra.Command{
	Use:   "get <tokenId>",
	Short: "Show the listing for a token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenID, ok := new(big.Int).SetString(args[0], 10)
		if !ok || tokenID.Sign() < 0 {
			return coreerr.WithDetails(coreerr.ErrInvalidInput, map[string]string{
				"reason":  "token id must be a non-negative integer",
				"tokenId": args[0],
			})
		}

		listing, err := Core().FetchListing(cmd.Context(), tokenID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if listing == nil {
			fmt.Fprintf(out, "Token %s is not listed\n", tokenID.String())
			return nil
		}

		fmt.Fprintf(out, "Token:  %s\n", tokenID.String())
		fmt.Fprintf(out, "Seller: %s\n", listing.Seller)
		fmt.Fprintf(out, "Price:  %s wei\n", listing.PriceWei.String())
		return nil
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	listingCmd.AddCommand(listingGetCmd)
	rootCmd.AddCommand(listingCmd)
}
