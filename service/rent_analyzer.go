package service

import (
	"fmt"

	"github.com/Aashish23092/bill-dispute-analyzer/dto"
	"github.com/Aashish23092/bill-dispute-analyzer/reference"
	"github.com/Aashish23092/bill-dispute-analyzer/utils"
)

const (
	// RentNoticeMinimumDays is the shortest lawful notice for a rent increase.
	RentNoticeMinimumDays = 30
	// RentLateFeeCapRate caps a late fee as a share of base rent.
	RentLateFeeCapRate = 0.05
	// RentMinimumGraceDays is the shortest lawful grace period before a late fee applies.
	RentMinimumGraceDays = 3

	rentProhibitedFeeConfidence = 90.0
	rentExcessFeeConfidence     = 75.0
	rentNoticeConfidence        = 92.0
	rentNoticeInfoConfidence    = 90.0
	rentLateFeeConfidence       = 88.0
	rentGraceConfidence         = 85.0
)

// Codes for rent findings that are not fee-table keys.
const (
	CodeNoticeViolation = "NOTICE_VIOLATION"
	CodeLateFeeExcess   = "LATE_FEE_EXCESS"
	CodeNoGracePeriod   = "NO_GRACE_PERIOD"
)

// AnalyzeRentStatement applies the fee-ceiling, notice, late-fee and grace-period rules.
// The rules are independent and their findings are additive.
func AnalyzeRentStatement(text string) dto.UnifiedAnalysisResult {
	st := utils.ExtractRentStatement(text)

	items := []dto.FlaggedItem{}
	billed := []float64{st.BaseRent}
	fair := []float64{st.BaseRent}

	for _, fee := range st.Fees {
		rule, ok := reference.LookupFeeRule(fee.Key)
		if !ok {
			continue
		}
		billed = append(billed, fee.Amount)

		if fee.Amount <= rule.MaxReasonable {
			fair = append(fair, fee.Amount)
			continue
		}

		fair = append(fair, rule.MaxReasonable)
		confidence := rentExcessFeeConfidence
		if rule.Prohibited() {
			confidence = rentProhibitedFeeConfidence
		}
		items = append(items, dto.FlaggedItem{
			Code:         rule.Key,
			Description:  feeDescription(rule, fee.Amount),
			BilledAmount: fee.Amount,
			FairPrice:    rule.MaxReasonable,
			Savings:      utils.Sub(fee.Amount, rule.MaxReasonable),
			Confidence:   confidence,
		})
	}

	noticeShort := st.NoticeKnown && st.NoticeDays < RentNoticeMinimumDays
	if st.Increase != nil {
		delta := st.Increase.Delta()
		billed = append(billed, delta)
		if noticeShort {
			items = append(items, dto.FlaggedItem{
				Code: CodeNoticeViolation,
				Description: fmt.Sprintf("Rent increased from $%.2f to $%.2f with only %d days notice; at least %d days written notice is required before an increase takes effect",
					st.Increase.Previous, st.Increase.Current, st.NoticeDays, RentNoticeMinimumDays),
				BilledAmount: delta,
				FairPrice:    0,
				Savings:      delta,
				Confidence:   rentNoticeConfidence,
			})
		} else {
			fair = append(fair, delta)
		}
	} else if noticeShort && st.BaseRent > 0 {
		items = append(items, dto.FlaggedItem{
			Code: CodeNoticeViolation,
			Description: fmt.Sprintf("Notice period of %d days is shorter than the %d days required for a rent change; the increase amount could not be determined from the statement",
				st.NoticeDays, RentNoticeMinimumDays),
			Confidence: rentNoticeInfoConfidence,
		})
	}

	if st.LateFee > 0 {
		billed = append(billed, st.LateFee)
		maxLateFee := utils.Round2(st.BaseRent * RentLateFeeCapRate)

		if st.BaseRent > 0 && st.LateFee > maxLateFee {
			fair = append(fair, maxLateFee)
			items = append(items, dto.FlaggedItem{
				Code: CodeLateFeeExcess,
				Description: fmt.Sprintf("Late fee of $%.2f exceeds the %.0f%% cap of $%.2f on base rent of $%.2f",
					st.LateFee, RentLateFeeCapRate*100, maxLateFee, st.BaseRent),
				BilledAmount: st.LateFee,
				FairPrice:    maxLateFee,
				Savings:      utils.Sub(st.LateFee, maxLateFee),
				Confidence:   rentLateFeeConfidence,
			})
		} else {
			fair = append(fair, st.LateFee)
		}

		if st.GracePeriodKnown && st.GracePeriodDays < RentMinimumGraceDays {
			items = append(items, dto.FlaggedItem{
				Code: CodeNoGracePeriod,
				Description: fmt.Sprintf("Late fee charged with a %d-day grace period; a grace period of at least %d days is required before any late fee applies",
					st.GracePeriodDays, RentMinimumGraceDays),
				BilledAmount: st.LateFee,
				FairPrice:    0,
				Savings:      st.LateFee,
				Confidence:   rentGraceConfidence,
			})
		}
	}

	savings := totalSavings(items)
	return dto.UnifiedAnalysisResult{
		Category:         dto.CategoryRent,
		DisputeType:      dto.DisputeLeaseViolation,
		LineItems:        items,
		TotalBilled:      utils.Sum(billed...),
		TotalFairPrice:   utils.Sum(fair...),
		PotentialSavings: savings,
		ProviderName:     utils.ExtractLandlordName(text),
		AnalysisNotes:    rentNotes(st, len(items), savings),
	}
}

func feeDescription(rule reference.FeeRule, amount float64) string {
	if rule.Prohibited() {
		return fmt.Sprintf("%s of $%.2f may not be charged. %s", rule.Label, amount, rule.LegalNote)
	}
	return fmt.Sprintf("%s of $%.2f exceeds the reasonable maximum of $%.2f. %s",
		rule.Label, amount, rule.MaxReasonable, rule.LegalNote)
}

func rentNotes(st utils.RentStatement, flagged int, savings float64) string {
	checked := len(st.Fees)
	if st.LateFee > 0 {
		checked++
	}
	if st.Increase != nil {
		checked++
	}
	if flagged == 0 {
		return fmt.Sprintf("Scanned %d charges. No lease violations detected.", checked)
	}
	return fmt.Sprintf("Scanned %d charges. Found %d potential lease violations with $%.2f in disputable charges.",
		checked, flagged, savings)
}
