package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMedicalBill = `
St. Mary's Regional Hospital
Patient Account 448120
Statement Date 04/02/2024

CODE   DESCRIPTION                      CHARGE
99285  Emergency Room Visit Level 5     $2,450.00
85025  Complete Blood Count             $25.00
80053  Comprehensive Metabolic Panel    $180.00
J1885  Ketorolac injection 15mg         $95.00
Total Charges                           $2,750.00
`

func TestExtractMedicalCharges(t *testing.T) {
	charges := ExtractMedicalCharges(sampleMedicalBill)

	require.Len(t, charges, 4)
	assert.Equal(t, "99285", charges[0].Code)
	assert.Equal(t, 2450.0, charges[0].BilledAmount)
	assert.Equal(t, "85025", charges[1].Code)
	assert.Equal(t, 25.0, charges[1].BilledAmount)
	assert.Equal(t, "J1885", charges[3].Code)
}

func TestExtractMedicalCharges_CodeIsNotAnAmount(t *testing.T) {
	// no amount besides the code itself
	assert.Empty(t, ExtractMedicalCharges("99213 Office visit"))

	charges := ExtractMedicalCharges("99213 Office visit billed 150.00 allowed 98.40")
	require.Len(t, charges, 1)
	assert.Equal(t, 150.0, charges[0].BilledAmount)
}

func TestExtractMedicalCharges_BareAmounts(t *testing.T) {
	charges := ExtractMedicalCharges("99285 Emergency Room Visit Level 5   2,450\n85025 Complete Blood Count 25")
	require.Len(t, charges, 2)
	assert.Equal(t, 2450.0, charges[0].BilledAmount)
	assert.Equal(t, 25.0, charges[1].BilledAmount)

	assert.Empty(t, ExtractMedicalCharges("99285 Emergency Room Visit Level 5"))
}

func TestExtractMedicalProvider(t *testing.T) {
	name := ExtractMedicalProvider(sampleMedicalBill)
	require.NotNil(t, name)
	assert.Equal(t, "St. Mary's Regional Hospital", *name)

	assert.Nil(t, ExtractMedicalProvider("99213 Office visit $150.00"))
}

func TestExtractProviderName_Truncates(t *testing.T) {
	long := "Clinic " + strings.Repeat("x", 200)
	name := ExtractProviderName(long, []string{"clinic"})
	require.NotNil(t, name)
	assert.Len(t, *name, 100)
}

func TestExtractProviderName_TruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("a", 99) + "é Hospital"
	name := ExtractProviderName(long, []string{"hospital"})
	require.NotNil(t, name)
	assert.True(t, utf8.ValidString(*name))
	assert.Equal(t, 100, utf8.RuneCountInString(*name))
	assert.True(t, strings.HasSuffix(*name, "é"))
}

func TestExtractProviderName_OnlyLeadingLines(t *testing.T) {
	text := strings.Repeat("line\n", 10) + "General Hospital"
	assert.Nil(t, ExtractProviderName(text, []string{"hospital"}))
}
