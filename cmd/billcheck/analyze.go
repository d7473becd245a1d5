package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/bill-dispute-analyzer/client"
	"github.com/Aashish23092/bill-dispute-analyzer/dto"
	"github.com/Aashish23092/bill-dispute-analyzer/service"
	"github.com/Aashish23092/bill-dispute-analyzer/storage"
)

func analyzeCmd() *cobra.Command {
	var (
		category string
		password string
		asJSON   bool
		xlsxPath string
		letter   bool
		sender   string
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <file|->",
		Short: "Analyze a bill for overcharges",
		Long: fmt.Sprintf(`Analyze a bill. The input may be a text file, a PDF, a PNG/JPEG photo, or "-" for stdin.

Categories: %s`, strings.Join(categoryNames(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := dto.Category(category)
			if !cat.IsValid() {
				return fmt.Errorf("%w: %q", dto.ErrUnknownCategory, category)
			}

			cfg := currentConfig()
			text, err := readBillText(cmd, args[0], password, cfg.TesseractDataPath)
			if err != nil {
				return err
			}

			var repo service.AnalysisRepository
			if save {
				store, err := storage.Open(cmd.Context(), cfg.DatabasePath)
				if err != nil {
					return err
				}
				defer store.Close()
				repo = store
			}

			record, err := service.NewAnalysisService(repo).Analyze(cmd.Context(), cat, text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, record); err != nil {
					return err
				}
			} else {
				printAnalysis(out, record)
			}

			if letter {
				rendered, err := service.GenerateDisputeLetter(record.Result, dto.LetterOptions{
					SenderName: sender,
					Date:       time.Now(),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nSubject: %s\n\n%s\n", rendered.Subject, rendered.Body)
				fmt.Fprintln(out, "How to submit:")
				for i, step := range rendered.Instructions {
					fmt.Fprintf(out, "  %d. %s\n", i+1, step)
				}
			}

			if xlsxPath != "" {
				data, err := service.NewExportService(nil).AnalysisXLSX(record)
				if err != nil {
					return err
				}
				if err := os.WriteFile(xlsxPath, data, 0o600); err != nil {
					return fmt.Errorf("failed to write %s: %w", xlsxPath, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", xlsxPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "bill category (required)")
	cmd.Flags().StringVar(&password, "password", "", "password for protected PDFs")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write an XLSX report to this path")
	cmd.Flags().BoolVar(&letter, "letter", false, "print a dispute letter after the analysis")
	cmd.Flags().StringVar(&sender, "sender", "", "name to sign the dispute letter with")
	cmd.Flags().BoolVar(&save, "save", false, "store the analysis in the history database")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

// readBillText loads path (or stdin for "-") and extracts its text.
func readBillText(cmd *cobra.Command, path, password, tessdata string) (string, error) {
	var (
		data []byte
		err  error
		name = path
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
		name = "stdin.txt"
	} else {
		data, err = os.ReadFile(filepath.Clean(path))
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	docs := service.NewDocumentService(
		client.NewTesseractClient(tessdata),
		client.NewQRClient(),
		service.NewPDFProcessor(),
	)
	return docs.ExtractText(cmd.Context(), name, data, password)
}

func printAnalysis(w io.Writer, record *dto.AnalysisRecord) {
	r := record.Result
	fmt.Fprintf(w, "Category:   %s (%s)\n", r.Category, r.DisputeType)
	if r.ProviderName != nil {
		fmt.Fprintf(w, "Provider:   %s\n", *r.ProviderName)
	}
	fmt.Fprintf(w, "Billed:     $%.2f\n", r.TotalBilled)
	fmt.Fprintf(w, "Fair price: $%.2f\n", r.TotalFairPrice)
	fmt.Fprintf(w, "Savings:    $%.2f\n", r.PotentialSavings)
	fmt.Fprintf(w, "Fee:        $%.2f (%s), you keep $%.2f\n", record.Fee.Fee, record.Fee.FeeLabel, record.Fee.NetSavings)

	if len(r.LineItems) > 0 {
		fmt.Fprintln(w, "\nFlagged items:")
		for _, item := range r.LineItems {
			if item.IsRate() {
				fmt.Fprintf(w, "  [%s] %s: $%.4f/unit vs $%.4f/unit (%.0f%% confidence)\n",
					item.Code, item.Description, item.BilledAmount, item.FairPrice, item.Confidence)
				continue
			}
			fmt.Fprintf(w, "  [%s] %s: billed $%.2f, fair $%.2f, save $%.2f (%.0f%% confidence)\n",
				item.Code, item.Description, item.BilledAmount, item.FairPrice, item.Savings, item.Confidence)
		}
	}
	fmt.Fprintf(w, "\n%s\n", r.AnalysisNotes)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func categoryNames() []string {
	names := make([]string, len(dto.Categories))
	for i, c := range dto.Categories {
		names[i] = string(c)
	}
	return names
}
