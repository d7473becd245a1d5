package service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/bill-dispute-analyzer/dto"
)

const (
	sheetFlaggedItems = "Flagged Items"
	sheetSummary      = "Summary"
	sheetRecurring    = "Recurring Charges"
)

// ExportService renders analysis results as XLSX workbooks.
type ExportService struct {
	logger *slog.Logger
}

func NewExportService(logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{logger: logger}
}

// AnalysisXLSX returns a workbook with a "Flagged Items" sheet and a "Summary" sheet.
func (s *ExportService) AnalysisXLSX(record *dto.AnalysisRecord) ([]byte, error) {
	if record == nil {
		return nil, fmt.Errorf("analysis record is required")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := useSheet(f, sheetFlaggedItems); err != nil {
		return nil, err
	}
	writeRow(f, sheetFlaggedItems, 1, "Code", "Description", "Billed", "Fair Price", "Savings", "Confidence", "Unit")
	for i, item := range record.Result.LineItems {
		unit := "usd"
		if item.IsRate() {
			unit = item.Unit
		}
		writeRow(f, sheetFlaggedItems, i+2,
			item.Code,
			truncate(item.Description, 200),
			item.BilledAmount,
			item.FairPrice,
			item.Savings,
			item.Confidence,
			unit,
		)
	}
	_ = f.SetColWidth(sheetFlaggedItems, "A", "A", 22)
	_ = f.SetColWidth(sheetFlaggedItems, "B", "B", 60)
	_ = f.SetColWidth(sheetFlaggedItems, "C", "F", 14)

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}
	provider := ""
	if record.Result.ProviderName != nil {
		provider = *record.Result.ProviderName
	}
	summary := [][]any{
		{"Analysis ID", record.ID},
		{"Created", record.CreatedAt.Format("2006-01-02 15:04:05")},
		{"Category", string(record.Result.Category)},
		{"Dispute Type", string(record.Result.DisputeType)},
		{"Provider", provider},
		{"Total Billed", record.Result.TotalBilled},
		{"Total Fair Price", record.Result.TotalFairPrice},
		{"Potential Savings", record.Result.PotentialSavings},
		{"Fee", record.Fee.Fee},
		{"Fee Type", record.Fee.FeeLabel},
		{"Net Savings", record.Fee.NetSavings},
		{"Notes", record.Result.AnalysisNotes},
	}
	for i, pair := range summary {
		writeRow(f, sheetSummary, i+1, pair...)
	}
	_ = f.SetColWidth(sheetSummary, "A", "A", 20)
	_ = f.SetColWidth(sheetSummary, "B", "B", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.analysis.ok", "id", record.ID, "rows", len(record.Result.LineItems))
	return buf.Bytes(), nil
}

// StatementXLSX returns a workbook with one row per recurring charge.
func (s *ExportService) StatementXLSX(analysis dto.StatementAnalysis) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := useSheet(f, sheetRecurring); err != nil {
		return nil, err
	}
	writeRow(f, sheetRecurring, 1,
		"Merchant", "Category", "Occurrences", "Latest", "Previous", "Average",
		"Change %", "Flagged", "Overcharge", "First Seen", "Last Seen", "Amounts")
	for i, charge := range analysis.RecurringCharges {
		amounts := make([]string, len(charge.Amounts))
		for j, a := range charge.Amounts {
			amounts[j] = fmt.Sprintf("%.2f", a)
		}
		flagged := "no"
		if charge.IsFlagged {
			flagged = "yes"
		}
		writeRow(f, sheetRecurring, i+2,
			charge.Merchant,
			charge.Category,
			charge.Occurrences,
			charge.LatestAmount,
			charge.PreviousAmount,
			charge.AverageAmount,
			charge.ChangePercent,
			flagged,
			charge.Overcharge,
			charge.FirstSeen,
			charge.LastSeen,
			strings.Join(amounts, ", "),
		)
	}
	_ = f.SetColWidth(sheetRecurring, "A", "A", 28)
	_ = f.SetColWidth(sheetRecurring, "B", "B", 18)
	_ = f.SetColWidth(sheetRecurring, "L", "L", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.statement.ok", "rows", len(analysis.RecurringCharges), "flagged", analysis.FlaggedCount)
	return buf.Bytes(), nil
}

// useSheet renames the default sheet to name and makes it active.
func useSheet(f *excelize.File, name string) error {
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("create %s sheet: %w", name, err)
	}
	index, err := f.GetSheetIndex(name)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) {
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
