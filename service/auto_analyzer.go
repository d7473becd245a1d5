package service

import (
	"fmt"
	"math"

	"github.com/Aashish23092/bill-dispute-analyzer/dto"
	"github.com/Aashish23092/bill-dispute-analyzer/reference"
	"github.com/Aashish23092/bill-dispute-analyzer/utils"
)

const (
	// AutoBenchmarkTolerance is how far above the state average a renewed premium may go before it is flagged.
	AutoBenchmarkTolerance = 1.15
	autoConfidenceCap      = 95.0
)

// AnalyzeAutoInsurance benchmarks each increased coverage premium against the state average.
// Coverage without a published average is benchmarked against its own previous premium.
func AnalyzeAutoInsurance(text string) dto.UnifiedAnalysisResult {
	changes := utils.ExtractPremiumChanges(text)

	items := []dto.FlaggedItem{}
	var billed, fair []float64

	for _, change := range changes {
		benchmark, ok := reference.StateAveragePremium(change.Coverage)
		source := "state average"
		if !ok {
			benchmark = change.PreviousPremium
			source = "prior-term premium"
		}

		billed = append(billed, change.NewPremium)
		fair = append(fair, benchmark)

		if benchmark <= 0 || change.NewPremium <= benchmark*AutoBenchmarkTolerance {
			continue
		}

		overPct := (change.NewPremium - benchmark) / benchmark * 100
		items = append(items, dto.FlaggedItem{
			Code: string(change.Coverage),
			Description: fmt.Sprintf("%s premium rose from $%.2f to $%.2f, %.0f%% above the %s of $%.2f",
				reference.CoverageLabel(change.Coverage), change.PreviousPremium, change.NewPremium,
				overPct, source, benchmark),
			BilledAmount: change.NewPremium,
			FairPrice:    benchmark,
			Savings:      utils.Sub(change.NewPremium, benchmark),
			Confidence:   math.Min(autoConfidenceCap, math.Round(overPct)),
		})
	}

	savings := totalSavings(items)
	return dto.UnifiedAnalysisResult{
		Category:         dto.CategoryAutoInsurance,
		DisputeType:      dto.DisputePremiumIncrease,
		LineItems:        items,
		TotalBilled:      utils.Sum(billed...),
		TotalFairPrice:   utils.Sum(fair...),
		PotentialSavings: savings,
		ProviderName:     utils.ExtractInsurerName(text),
		AnalysisNotes:    autoNotes(len(changes), len(items), savings),
	}
}

func autoNotes(reviewed, flagged int, savings float64) string {
	if reviewed == 0 {
		return "Scanned 0 coverage lines. No premium increases detected."
	}
	if flagged == 0 {
		return fmt.Sprintf("Reviewed %d coverage increases. All renewed premiums are within %.0f%% of benchmark rates.",
			reviewed, (AutoBenchmarkTolerance-1)*100)
	}
	return fmt.Sprintf("Reviewed %d coverage increases. %d exceed benchmark rates with $%.2f in potential savings.",
		reviewed, flagged, savings)
}
