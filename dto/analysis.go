package dto

import "time"

// UnitPerRate marks a flagged item whose amounts are a unit rate rather than a dollar total.
const UnitPerRate = "usd_per_unit"

// FlaggedItem is a single detected overcharge or violation.
type FlaggedItem struct {
	Code         string  `json:"code"`
	Description  string  `json:"description"`
	BilledAmount float64 `json:"billed_amount"`
	FairPrice    float64 `json:"fair_price"`
	Savings      float64 `json:"savings"`
	Confidence   float64 `json:"confidence"`
	Unit         string  `json:"unit,omitempty"`
}

// IsRate reports whether the item carries a per-unit rate instead of currency totals.
func (f FlaggedItem) IsRate() bool {
	return f.Unit == UnitPerRate
}

// UnifiedAnalysisResult is the category-independent output of one analysis run.
type UnifiedAnalysisResult struct {
	Category         Category      `json:"category"`
	DisputeType      DisputeType   `json:"dispute_type"`
	LineItems        []FlaggedItem `json:"line_items"`
	TotalBilled      float64       `json:"total_billed"`
	TotalFairPrice   float64       `json:"total_fair_price"`
	PotentialSavings float64       `json:"potential_savings"`
	ProviderName     *string       `json:"provider_name"`
	AnalysisNotes    string        `json:"analysis_notes"`
}

// MedicalAnalysisResult is the native medical analyzer output; it has no category
// or dispute type until the router wraps it.
type MedicalAnalysisResult struct {
	LineItems        []FlaggedItem `json:"line_items"`
	TotalBilled      float64       `json:"total_billed"`
	TotalFairPrice   float64       `json:"total_fair_price"`
	PotentialSavings float64       `json:"potential_savings"`
	ProviderName     *string       `json:"provider_name"`
	AnalysisNotes    string        `json:"analysis_notes"`
}

// AnalysisRecord is a persisted analysis run together with its fee breakdown.
type AnalysisRecord struct {
	ID        string                `json:"id"`
	Result    UnifiedAnalysisResult `json:"result"`
	Fee       SmartFeeCalculation   `json:"fee"`
	CreatedAt time.Time             `json:"created_at"`
}

// AnalysisSummary is the list view of a stored analysis.
type AnalysisSummary struct {
	ID               string      `json:"id"`
	Category         Category    `json:"category"`
	DisputeType      DisputeType `json:"dispute_type"`
	ProviderName     string      `json:"provider_name,omitempty"`
	TotalBilled      float64     `json:"total_billed"`
	PotentialSavings float64     `json:"potential_savings"`
	Fee              float64     `json:"fee"`
	FeeType          FeeType     `json:"fee_type"`
	CreatedAt        time.Time   `json:"created_at"`
}
