package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/bill-dispute-analyzer/dto"
)

func TestGenerateDisputeLetter_Medical(t *testing.T) {
	result, err := AnalyzeByCategory(medicalBill, dto.CategoryMedical)
	require.NoError(t, err)

	letter, err := GenerateDisputeLetter(result, dto.LetterOptions{
		SenderName:    "Jordan Lee",
		SenderAddress: "12 Elm St, Springfield",
		AccountNumber: "448120",
		Date:          time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, dto.CategoryMedical, letter.Category)
	assert.NotEmpty(t, letter.Subject)
	assert.Contains(t, letter.Body, "May 1, 2024")
	assert.Contains(t, letter.Body, "St. Mary's Regional Hospital")
	assert.Contains(t, letter.Body, "Re: Account 448120")
	assert.Contains(t, letter.Body, "1. 99285:")
	assert.Contains(t, letter.Body, "Disputed: $1740.00")
	assert.Contains(t, letter.Body, "Amount in dispute: $1970.00")
	assert.Contains(t, letter.Body, "Jordan Lee\n12 Elm St, Springfield")
	assert.NotEmpty(t, letter.Instructions)
}

func TestGenerateDisputeLetter_AllCategories(t *testing.T) {
	for _, category := range dto.Categories {
		t.Run(string(category), func(t *testing.T) {
			letter, err := GenerateDisputeLetter(dto.UnifiedAnalysisResult{Category: category}, dto.LetterOptions{})
			require.NoError(t, err)
			assert.Contains(t, letter.Body, "Account Holder")
			assert.NotContains(t, letter.Body, "<no value>")

			steps, err := SubmissionInstructions(category)
			require.NoError(t, err)
			assert.Equal(t, steps, letter.Instructions)
		})
	}
}

func TestGenerateDisputeLetter_RateItemsRenderPerUnit(t *testing.T) {
	result := AnalyzeUtilityBill("Jan 2024  700  0.10  $70.00\nFeb 2024  700  0.13  $91.00\n")
	require.Len(t, result.LineItems, 1)

	letter, err := GenerateDisputeLetter(result, dto.LetterOptions{SenderName: "Sam"})
	require.NoError(t, err)
	assert.Contains(t, letter.Body, "$0.1300 per unit")
	assert.Contains(t, letter.Body, "To: Customer Service, Billing Department")
}

func TestGenerateDisputeLetter_UnknownCategory(t *testing.T) {
	_, err := GenerateDisputeLetter(dto.UnifiedAnalysisResult{Category: "dental"}, dto.LetterOptions{})
	assert.ErrorIs(t, err, dto.ErrUnknownCategory)

	_, err = SubmissionInstructions("dental")
	assert.ErrorIs(t, err, dto.ErrUnknownCategory)
}

func TestSubmissionInstructions_ReturnsCopy(t *testing.T) {
	steps, err := SubmissionInstructions(dto.CategoryRent)
	require.NoError(t, err)
	steps[0] = "changed"

	again, err := SubmissionInstructions(dto.CategoryRent)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again[0])
}
