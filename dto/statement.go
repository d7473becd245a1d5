package dto

import "time"

// StatementTransaction is one row of an uploaded CSV statement.
type StatementTransaction struct {
	Date        time.Time `json:"date"`
	RawDate     string    `json:"raw_date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category,omitempty"`
}

// RecurringCharge groups transactions that share a normalized merchant name.
type RecurringCharge struct {
	Merchant       string    `json:"merchant"`
	NormalizedName string    `json:"normalized_name"`
	Category       string    `json:"category,omitempty"`
	Occurrences    int       `json:"occurrences"`
	Amounts        []float64 `json:"amounts"`
	LatestAmount   float64   `json:"latest_amount"`
	PreviousAmount float64   `json:"previous_amount"`
	AverageAmount  float64   `json:"average_amount"`
	ChangePercent  float64   `json:"change_percent"`
	IsFlagged      bool      `json:"is_flagged"`
	Overcharge     float64   `json:"overcharge"`
	FirstSeen      string    `json:"first_seen,omitempty"`
	LastSeen       string    `json:"last_seen,omitempty"`
}

// StatementAnalysis is the result of recurring-charge detection over a CSV statement.
type StatementAnalysis struct {
	RecurringCharges      []RecurringCharge `json:"recurring_charges"`
	TotalTransactions     int               `json:"total_transactions"`
	RecurringCount        int               `json:"recurring_count"`
	FlaggedCount          int               `json:"flagged_count"`
	MonthlyRecurringTotal float64           `json:"monthly_recurring_total"`
	PotentialOvercharges  float64           `json:"potential_overcharges"`
	AnalysisNotes         string            `json:"analysis_notes"`
}
