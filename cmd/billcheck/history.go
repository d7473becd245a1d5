package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/bill-dispute-analyzer/storage"
)

func historyCmd() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List analyses saved with --save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := storage.Open(cmd.Context(), currentConfig().DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()

			summaries, err := store.ListAnalyses(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), summaries)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tCATEGORY\tPROVIDER\tBILLED\tSAVINGS\tFEE")
			for _, s := range summaries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%.2f\t%.2f\n",
					s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.Category, s.ProviderName,
					s.TotalBilled, s.PotentialSavings, s.Fee)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", storage.DefaultListLimit, "number of analyses to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
