package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/bill-dispute-analyzer/dto"
)

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFeeCommand(t *testing.T) {
	out, err := execute(t, feeCmd(), "", "40")
	require.NoError(t, err)
	assert.Contains(t, out, "$10.00 on $40.00, you keep $30.00")

	out, err = execute(t, feeCmd(), "", "--json", "200")
	require.NoError(t, err)
	var fee dto.SmartFeeCalculation
	require.NoError(t, json.Unmarshal([]byte(out), &fee))
	assert.Equal(t, 40.0, fee.Fee)
	assert.Equal(t, dto.FeeTypeSuccessFee, fee.FeeType)

	_, err = execute(t, feeCmd(), "", "abc")
	assert.Error(t, err)
}

func TestAnalyzeCommand_Stdin(t *testing.T) {
	out, err := execute(t, analyzeCmd(), "99285 Emergency Room Visit Level 5 $2,450.00\n",
		"-c", "medical", "--letter", "--sender", "Jordan Lee", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Savings:    $1740.00")
	assert.Contains(t, out, "[99285]")
	assert.Contains(t, out, "Jordan Lee")
	assert.Contains(t, out, "How to submit:")
}

func TestAnalyzeCommand_JSONAndXLSX(t *testing.T) {
	xlsxPath := filepath.Join(t.TempDir(), "report.xlsx")
	out, err := execute(t, analyzeCmd(), "Parkview Apartments LLC\nAdmin Fee $35.00\n",
		"--category", "rent", "--json", "--xlsx", xlsxPath, "-")
	require.NoError(t, err)

	// the JSON document ends before the "Wrote" notice
	jsonPart := out[:strings.LastIndex(out, "}")+1]
	var record dto.AnalysisRecord
	require.NoError(t, json.Unmarshal([]byte(jsonPart), &record))
	assert.Equal(t, 35.0, record.Result.PotentialSavings)

	info, err := os.Stat(xlsxPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	_, err := execute(t, analyzeCmd(), "x $1.00", "-c", "dental", "-")
	assert.ErrorIs(t, err, dto.ErrUnknownCategory)

	_, err = execute(t, analyzeCmd(), "x $1.00", "-")
	assert.Error(t, err, "category is required")

	_, err = execute(t, analyzeCmd(), "", "-c", "medical", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestStatementCommand(t *testing.T) {
	csv := "Date,Description,Amount\n" +
		"2024-01-05,NETFLIX.COM,-15.49\n" +
		"2024-02-05,NETFLIX.COM,-15.49\n" +
		"2024-03-05,NETFLIX.COM,-22.99\n"

	out, err := execute(t, statementCmd(), csv, "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Transactions: 3, recurring: 1, flagged: 1")

	_, err = execute(t, statementCmd(), "  \n", "-")
	assert.ErrorIs(t, err, dto.ErrEmptyInput)
}

func TestHistoryCommand(t *testing.T) {
	viper.Set("database.path", filepath.Join(t.TempDir(), "history.db"))
	t.Cleanup(viper.Reset)

	out, err := execute(t, historyCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "CATEGORY")

	_, err = execute(t, analyzeCmd(), "99285 Emergency Room Visit Level 5 $2,450.00\n", "-c", "medical", "--save", "-")
	require.NoError(t, err)
	_, err = execute(t, analyzeCmd(), "Parkview Apartments LLC\nAdmin Fee $35.00\n", "-c", "rent", "--save", "-")
	require.NoError(t, err)

	out, err = execute(t, historyCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "medical")
	assert.Contains(t, out, "Parkview Apartments LLC")
	assert.Contains(t, out, "1740.00")

	out, err = execute(t, historyCmd(), "", "--json", "--limit", "1")
	require.NoError(t, err)
	var summaries []dto.AnalysisSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, dto.CategoryRent, summaries[0].Category)
}
