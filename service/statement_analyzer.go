package service

import (
	"fmt"
	"sort"

	"github.com/Aashish23092/bill-dispute-analyzer/dto"
	"github.com/Aashish23092/bill-dispute-analyzer/utils"
)

// StatementIncreaseThreshold is the month-over-month increase, in percent, that flags a recurring charge.
const StatementIncreaseThreshold = 10.0

const minRecurringOccurrences = 2

// AnalyzeStatement detects recurring charges in a CSV statement and flags the ones
// whose latest amount jumped against the previous one.
func AnalyzeStatement(csvText string) dto.StatementAnalysis {
	txns := utils.ParseStatementCSV(csvText)

	groups := make(map[string][]dto.StatementTransaction)
	var order []string
	for _, txn := range txns {
		key := utils.NormalizeMerchant(txn.Description)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], txn)
	}

	charges := []dto.RecurringCharge{}
	var latestTotal, overcharges []float64
	flagged := 0

	for _, key := range order {
		group := groups[key]
		if len(group) < minRecurringOccurrences {
			continue
		}

		charge := summarizeRecurring(key, group)
		latestTotal = append(latestTotal, charge.LatestAmount)
		if charge.IsFlagged {
			flagged++
			overcharges = append(overcharges, charge.Overcharge)
		}
		charges = append(charges, charge)
	}

	sort.SliceStable(charges, func(i, j int) bool {
		if charges[i].IsFlagged != charges[j].IsFlagged {
			return charges[i].IsFlagged
		}
		if charges[i].LatestAmount != charges[j].LatestAmount {
			return charges[i].LatestAmount > charges[j].LatestAmount
		}
		return charges[i].NormalizedName < charges[j].NormalizedName
	})

	potential := utils.Sum(overcharges...)
	return dto.StatementAnalysis{
		RecurringCharges:      charges,
		TotalTransactions:     len(txns),
		RecurringCount:        len(charges),
		FlaggedCount:          flagged,
		MonthlyRecurringTotal: utils.Sum(latestTotal...),
		PotentialOvercharges:  potential,
		AnalysisNotes:         statementNotes(len(txns), len(charges), flagged, potential),
	}
}

func summarizeRecurring(key string, group []dto.StatementTransaction) dto.RecurringCharge {
	sorted := make([]dto.StatementTransaction, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	amounts := make([]float64, len(sorted))
	for i, txn := range sorted {
		amounts[i] = txn.Amount
	}

	latest := amounts[len(amounts)-1]
	previous := amounts[len(amounts)-2]
	average := utils.Round2(utils.Sum(amounts...) / float64(len(amounts)))

	var change float64
	if previous > 0 {
		change = utils.Round2((latest - previous) / previous * 100)
	}
	isFlagged := change > StatementIncreaseThreshold

	var overcharge float64
	if isFlagged && latest > average {
		overcharge = utils.Sub(latest, average)
	}

	category := ""
	for _, txn := range sorted {
		if txn.Category != "" {
			category = txn.Category
		}
	}

	return dto.RecurringCharge{
		Merchant:       utils.DisplayMerchant(key),
		NormalizedName: key,
		Category:       category,
		Occurrences:    len(sorted),
		Amounts:        amounts,
		LatestAmount:   latest,
		PreviousAmount: previous,
		AverageAmount:  average,
		ChangePercent:  change,
		IsFlagged:      isFlagged,
		Overcharge:     overcharge,
		FirstSeen:      sorted[0].RawDate,
		LastSeen:       sorted[len(sorted)-1].RawDate,
	}
}

func statementNotes(txns, recurring, flagged int, potential float64) string {
	if recurring == 0 {
		return fmt.Sprintf("Scanned %d transactions. No recurring charges detected.", txns)
	}
	if flagged == 0 {
		return fmt.Sprintf("Scanned %d transactions. Found %d recurring charges with no unusual increases.", txns, recurring)
	}
	return fmt.Sprintf("Scanned %d transactions. Found %d recurring charges; %d increased more than %.0f%% with $%.2f in potential overcharges.",
		txns, recurring, flagged, StatementIncreaseThreshold, potential)
}
