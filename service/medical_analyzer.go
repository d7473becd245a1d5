package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/Aashish23092/bill-dispute-analyzer/dto"
	"github.com/Aashish23092/bill-dispute-analyzer/reference"
	"github.com/Aashish23092/bill-dispute-analyzer/utils"
)

const (
	// MedicalOverchargeMultiplier is how far above the fair price a charge may go before it is flagged.
	MedicalOverchargeMultiplier = 1.3
	// MedicalConfidenceCap bounds the confidence of a medical overcharge.
	MedicalConfidenceCap   = 95.0
	medicalConfidenceBase  = 50.0
	medicalConfidenceSlope = 30.0
)

// AnalyzeMedicalBill compares each procedure-coded charge with its fair price.
// Codes without a benchmark are counted in the totals but never flagged.
func AnalyzeMedicalBill(text string) dto.MedicalAnalysisResult {
	charges := utils.ExtractMedicalCharges(text)

	items := []dto.FlaggedItem{}
	var billed, fair []float64

	for _, charge := range charges {
		billed = append(billed, charge.BilledAmount)

		proc, ok := reference.LookupProcedure(charge.Code)
		if !ok || charge.BilledAmount <= proc.FairPrice*MedicalOverchargeMultiplier {
			fair = append(fair, charge.BilledAmount)
			continue
		}

		ratio := charge.BilledAmount / proc.FairPrice
		confidence := math.Min(MedicalConfidenceCap, medicalConfidenceBase+(ratio-1)*medicalConfidenceSlope)

		fair = append(fair, proc.FairPrice)
		items = append(items, dto.FlaggedItem{
			Code: charge.Code,
			Description: fmt.Sprintf("%s: billed $%.2f against a fair price of $%.2f (%.1fx the benchmark rate)",
				proc.Description, charge.BilledAmount, proc.FairPrice, ratio),
			BilledAmount: charge.BilledAmount,
			FairPrice:    proc.FairPrice,
			Savings:      utils.Sub(charge.BilledAmount, proc.FairPrice),
			Confidence:   utils.Round2(confidence),
		})
	}

	// Largest win first.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Savings > items[j].Savings
	})

	savings := totalSavings(items)
	return dto.MedicalAnalysisResult{
		LineItems:        items,
		TotalBilled:      utils.Sum(billed...),
		TotalFairPrice:   utils.Sum(fair...),
		PotentialSavings: savings,
		ProviderName:     utils.ExtractMedicalProvider(text),
		AnalysisNotes:    medicalNotes(len(charges), len(items), savings),
	}
}

func medicalNotes(scanned, flagged int, savings float64) string {
	if flagged == 0 {
		return fmt.Sprintf("Scanned %d line items. No billing errors detected.", scanned)
	}
	return fmt.Sprintf("Scanned %d line items. Found %d charges above fair market rates with $%.2f in potential savings.",
		scanned, flagged, savings)
}

func totalSavings(items []dto.FlaggedItem) float64 {
	values := make([]float64, 0, len(items))
	for _, item := range items {
		values = append(values, item.Savings)
	}
	return utils.Sum(values...)
}
