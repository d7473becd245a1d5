package dto

// Category is the bill category an analysis run is routed by.
type Category string

const (
	CategoryMedical       Category = "medical"
	CategoryAutoInsurance Category = "auto_insurance"
	CategoryRent          Category = "rent"
	CategoryUtility       Category = "utility"
)

// Categories lists every category the router accepts.
var Categories = []Category{
	CategoryMedical,
	CategoryAutoInsurance,
	CategoryRent,
	CategoryUtility,
}

// DisputeType labels the kind of dispute a category produces.
type DisputeType string

const (
	DisputeMedicalBilling    DisputeType = "medical_billing_error"
	DisputePremiumIncrease   DisputeType = "premium_increase"
	DisputeLeaseViolation    DisputeType = "lease_violation"
	DisputeUtilityOvercharge DisputeType = "utility_overcharge"
)

// IsValid reports whether c is one of the supported categories.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
