package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/bill-dispute-analyzer/dto"
	"github.com/Aashish23092/bill-dispute-analyzer/service"
)

func statementCmd() *cobra.Command {
	var (
		asJSON   bool
		xlsxPath string
	)

	cmd := &cobra.Command{
		Use:   "statement <csv|->",
		Short: "Find recurring charges that went up in a bank or card CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(filepath.Clean(args[0]))
			}
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			if strings.TrimSpace(string(data)) == "" {
				return dto.ErrEmptyInput
			}

			analysis := service.AnalyzeStatement(string(data))

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, analysis); err != nil {
					return err
				}
			} else {
				printStatement(out, analysis)
			}

			if xlsxPath != "" {
				workbook, err := service.NewExportService(nil).StatementXLSX(analysis)
				if err != nil {
					return err
				}
				if err := os.WriteFile(xlsxPath, workbook, 0o600); err != nil {
					return fmt.Errorf("failed to write %s: %w", xlsxPath, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", xlsxPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write an XLSX report to this path")
	return cmd
}

func printStatement(w io.Writer, a dto.StatementAnalysis) {
	fmt.Fprintf(w, "Transactions: %d, recurring: %d, flagged: %d\n", a.TotalTransactions, a.RecurringCount, a.FlaggedCount)
	fmt.Fprintf(w, "Monthly recurring total: $%.2f\n", a.MonthlyRecurringTotal)
	for _, c := range a.RecurringCharges {
		mark := " "
		if c.IsFlagged {
			mark = "!"
		}
		fmt.Fprintf(w, " %s %-28s x%-3d latest $%.2f (prev $%.2f, %+.1f%%)\n",
			mark, c.Merchant, c.Occurrences, c.LatestAmount, c.PreviousAmount, c.ChangePercent)
	}
	fmt.Fprintf(w, "\n%s\n", a.AnalysisNotes)
}
