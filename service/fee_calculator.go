package service

import (
	"fmt"

	"github.com/Aashish23092/bill-dispute-analyzer/dto"
	"github.com/Aashish23092/bill-dispute-analyzer/utils"
)

const (
	// QuickWinThreshold is the largest recovery (inclusive) billed at the flat fee.
	QuickWinThreshold = 50.0
	// QuickWinFlatFee is charged on recoveries up to the threshold.
	QuickWinFlatFee = 10.0
	// SuccessFeeRate is the share taken on recoveries above the threshold.
	SuccessFeeRate = 0.20
)

// CalculateSmartFee converts gross savings into the platform fee. Recoveries up to the
// threshold pay a flat fee; larger ones pay a percentage.
func CalculateSmartFee(grossSavings float64) dto.SmartFeeCalculation {
	switch {
	case grossSavings <= 0:
		return dto.SmartFeeCalculation{
			GrossSavings: grossSavings,
			FeeRate:      0,
			Fee:          0,
			NetSavings:   grossSavings,
			FeeType:      dto.FeeTypeQuickWin,
			FeeLabel:     "No fee",
		}
	case grossSavings <= QuickWinThreshold:
		return dto.SmartFeeCalculation{
			GrossSavings: grossSavings,
			FeeRate:      QuickWinFlatFee / grossSavings,
			Fee:          QuickWinFlatFee,
			NetSavings:   utils.Sub(grossSavings, QuickWinFlatFee),
			FeeType:      dto.FeeTypeQuickWin,
			FeeLabel:     fmt.Sprintf("Quick Win flat fee ($%.0f)", QuickWinFlatFee),
		}
	default:
		fee := utils.Round2(grossSavings * SuccessFeeRate)
		return dto.SmartFeeCalculation{
			GrossSavings: grossSavings,
			FeeRate:      SuccessFeeRate,
			Fee:          fee,
			NetSavings:   utils.Sub(grossSavings, fee),
			FeeType:      dto.FeeTypeSuccessFee,
			FeeLabel:     fmt.Sprintf("Success fee (%.0f%% of savings)", SuccessFeeRate*100),
		}
	}
}
