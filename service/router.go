package service

import (
	"fmt"

	"github.com/Aashish23092/bill-dispute-analyzer/dto"
)

// AnalyzeByCategory dispatches statement text to the analyzer for its category.
// An unsupported category is a programmer error and is never defaulted.
func AnalyzeByCategory(text string, category dto.Category) (dto.UnifiedAnalysisResult, error) {
	switch category {
	case dto.CategoryMedical:
		return wrapMedical(AnalyzeMedicalBill(text)), nil
	case dto.CategoryAutoInsurance:
		return AnalyzeAutoInsurance(text), nil
	case dto.CategoryRent:
		return AnalyzeRentStatement(text), nil
	case dto.CategoryUtility:
		return AnalyzeUtilityBill(text), nil
	default:
		return dto.UnifiedAnalysisResult{}, fmt.Errorf("%w: %q", dto.ErrUnknownCategory, category)
	}
}

func wrapMedical(r dto.MedicalAnalysisResult) dto.UnifiedAnalysisResult {
	return dto.UnifiedAnalysisResult{
		Category:         dto.CategoryMedical,
		DisputeType:      dto.DisputeMedicalBilling,
		LineItems:        r.LineItems,
		TotalBilled:      r.TotalBilled,
		TotalFairPrice:   r.TotalFairPrice,
		PotentialSavings: r.PotentialSavings,
		ProviderName:     r.ProviderName,
		AnalysisNotes:    r.AnalysisNotes,
	}
}
