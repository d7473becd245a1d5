package dto

// FeeType distinguishes the flat small-recovery fee from the percentage success fee.
type FeeType string

const (
	FeeTypeQuickWin   FeeType = "quick_win"
	FeeTypeSuccessFee FeeType = "success_fee"
)

// SmartFeeCalculation is derived from a potential savings figure every time it is needed.
type SmartFeeCalculation struct {
	GrossSavings float64 `json:"gross_savings"`
	FeeRate      float64 `json:"fee_rate"`
	Fee          float64 `json:"fee"`
	NetSavings   float64 `json:"net_savings"`
	FeeType      FeeType `json:"fee_type"`
	FeeLabel     string  `json:"fee_label"`
}
