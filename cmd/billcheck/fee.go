package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/bill-dispute-analyzer/service"
)

func feeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "fee <savings>",
		Short: "Show the fee charged on a recovered amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			savings, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}

			fee := service.CalculateSmartFee(savings)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), fee)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: $%.2f on $%.2f, you keep $%.2f\n",
				fee.FeeLabel, fee.Fee, fee.GrossSavings, fee.NetSavings)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
