package service

import (
	"fmt"

	"github.com/Aashish23092/bill-dispute-analyzer/dto"
	"github.com/Aashish23092/bill-dispute-analyzer/utils"
)

const (
	// UtilityBackBillMonthLimit is the number of estimated months past which a back-bill is fully disputable.
	UtilityBackBillMonthLimit = 12
	// UtilityMinEstimatedPeriods must be exceeded before estimated readings are compared with actuals.
	UtilityMinEstimatedPeriods = 3
	// UtilityEstimatedUsageTolerance is how far estimated usage may run above actual usage.
	UtilityEstimatedUsageTolerance = 0.15
	// UtilityRateHikeMultiplier is how far the highest unit rate may exceed the lowest.
	UtilityRateHikeMultiplier = 1.1

	utilityBackBillConfidence        = 92.0
	utilityPartialBackBillConfidence = 65.0
	utilityPartialBackBillShare      = 0.5
	utilityEstimatedConfidence       = 78.0
	utilityRateHikeConfidence        = 60.0
)

// Codes for utility findings.
const (
	CodeBackBill            = "BACK_BILL"
	CodeEstimatedOvercharge = "ESTIMATED_OVERCHARGE"
	CodeRateHike            = "RATE_HIKE"
)

// AnalyzeUtilityBill applies the back-billing, estimated-reading and rate-hike rules.
// Fairness is judged against the statement's own history.
func AnalyzeUtilityBill(text string) dto.UnifiedAnalysisResult {
	st := utils.ExtractUtilityStatement(text)
	estimated := st.EstimatedPeriods()
	actual := st.ActualPeriods()

	items := []dto.FlaggedItem{}

	if st.BackBillAmount > 0 {
		items = append(items, backBillItem(st.BackBillAmount, len(estimated)))
	}

	if item, ok := estimatedReadingItem(estimated, actual); ok {
		items = append(items, item)
	}

	if item, ok := rateHikeItem(st.Periods); ok {
		items = append(items, item)
	}

	amounts := make([]float64, 0, len(st.Periods)+2)
	for _, p := range st.Periods {
		amounts = append(amounts, p.Amount)
	}
	amounts = append(amounts, st.BackBillAmount, st.ServiceFee)

	totalBilled := utils.Sum(amounts...)
	savings := totalSavings(items)
	return dto.UnifiedAnalysisResult{
		Category:         dto.CategoryUtility,
		DisputeType:      dto.DisputeUtilityOvercharge,
		LineItems:        items,
		TotalBilled:      totalBilled,
		TotalFairPrice:   utils.Sub(totalBilled, savings),
		PotentialSavings: savings,
		ProviderName:     utils.ExtractUtilityProvider(text),
		AnalysisNotes:    utilityNotes(len(st.Periods), len(estimated), len(items), savings),
	}
}

func backBillItem(amount float64, estimatedMonths int) dto.FlaggedItem {
	if estimatedMonths > UtilityBackBillMonthLimit {
		return dto.FlaggedItem{
			Code: CodeBackBill,
			Description: fmt.Sprintf("Back-bill of $%.2f covers %d months of estimated readings; charges older than %d months of estimates are not recoverable from the customer",
				amount, estimatedMonths, UtilityBackBillMonthLimit),
			BilledAmount: amount,
			FairPrice:    0,
			Savings:      amount,
			Confidence:   utilityBackBillConfidence,
		}
	}

	fair := utils.Round2(amount * utilityPartialBackBillShare)
	return dto.FlaggedItem{
		Code: CodeBackBill,
		Description: fmt.Sprintf("Back-bill of $%.2f after %d estimated months; the utility's estimating error makes part of the catch-up charge contestable",
			amount, estimatedMonths),
		BilledAmount: amount,
		FairPrice:    fair,
		Savings:      utils.Sub(amount, fair),
		Confidence:   utilityPartialBackBillConfidence,
	}
}

func estimatedReadingItem(estimated, actual []utils.BillingPeriod) (dto.FlaggedItem, bool) {
	if len(estimated) <= UtilityMinEstimatedPeriods {
		return dto.FlaggedItem{}, false
	}

	avgEst := averageUsage(estimated)
	avgActual := avgEst
	if len(actual) > 0 {
		avgActual = averageUsage(actual)
	}
	if avgEst <= 0 || avgActual <= 0 || avgEst <= avgActual*(1+UtilityEstimatedUsageTolerance) {
		return dto.FlaggedItem{}, false
	}

	var estAmounts []float64
	for _, p := range estimated {
		estAmounts = append(estAmounts, p.Amount)
	}
	estTotal := utils.Sum(estAmounts...)
	fair := utils.Round2(estTotal * avgActual / avgEst)

	return dto.FlaggedItem{
		Code: CodeEstimatedOvercharge,
		Description: fmt.Sprintf("%d estimated readings averaged %.1f units against %.1f units on actual readings (%.0f%% higher)",
			len(estimated), avgEst, avgActual, (avgEst/avgActual-1)*100),
		BilledAmount: estTotal,
		FairPrice:    fair,
		Savings:      utils.Sub(estTotal, fair),
		Confidence:   utilityEstimatedConfidence,
	}, true
}

// rateHikeItem flags a unit-rate differential, not a dollar total.
func rateHikeItem(periods []utils.BillingPeriod) (dto.FlaggedItem, bool) {
	minRate, maxRate := 0.0, 0.0
	seen := false
	for _, p := range periods {
		if p.Rate <= 0 {
			continue
		}
		if !seen {
			minRate, maxRate, seen = p.Rate, p.Rate, true
			continue
		}
		if p.Rate < minRate {
			minRate = p.Rate
		}
		if p.Rate > maxRate {
			maxRate = p.Rate
		}
	}
	if !seen || maxRate <= minRate*UtilityRateHikeMultiplier {
		return dto.FlaggedItem{}, false
	}

	return dto.FlaggedItem{
		Code: CodeRateHike,
		Description: fmt.Sprintf("Unit rate rose from $%.4f to $%.4f per unit (%.0f%% increase) within the statement history",
			minRate, maxRate, (maxRate/minRate-1)*100),
		BilledAmount: maxRate,
		FairPrice:    minRate,
		Savings:      utils.Sub(maxRate, minRate),
		Confidence:   utilityRateHikeConfidence,
		Unit:         dto.UnitPerRate,
	}, true
}

func averageUsage(periods []utils.BillingPeriod) float64 {
	if len(periods) == 0 {
		return 0
	}
	var total float64
	for _, p := range periods {
		total += p.Usage
	}
	return total / float64(len(periods))
}

func utilityNotes(periods, estimated, flagged int, savings float64) string {
	if flagged == 0 {
		return fmt.Sprintf("Scanned %d billing periods (%d estimated). No billing errors detected.", periods, estimated)
	}
	return fmt.Sprintf("Scanned %d billing periods (%d estimated). Found %d issues with $%.2f in potential savings.",
		periods, estimated, flagged, savings)
}
