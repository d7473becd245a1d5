package reference

// FeeRule is the ceiling a landlord-billed fee is judged against.
type FeeRule struct {
	Key           string
	Label         string
	MaxReasonable float64
	LegalNote     string
}

// Prohibited reports whether the fee type may not be charged at all.
func (r FeeRule) Prohibited() bool {
	return r.MaxReasonable == 0
}

var feeRules = map[string]FeeRule{
	"admin_fee": {
		Key:           "admin_fee",
		Label:         "Administrative/Processing Fee",
		MaxReasonable: 0,
		LegalNote:     "Recurring administrative or processing fees are not a recoverable cost of tenancy; routine lease administration is part of the rent.",
	},
	"amenity_fee": {
		Key:           "amenity_fee",
		Label:         "Amenity Fee",
		MaxReasonable: 25.00,
		LegalNote:     "Amenity fees must be disclosed in the lease and reflect amenities actually available to the tenant.",
	},
	"trash_fee": {
		Key:           "trash_fee",
		Label:         "Trash/Valet Waste Fee",
		MaxReasonable: 15.00,
		LegalNote:     "Waste service pass-throughs may not exceed the landlord's actual per-unit cost.",
	},
	"digital_fee": {
		Key:           "digital_fee",
		Label:         "Digital/Online Portal Fee",
		MaxReasonable: 0,
		LegalNote:     "Tenants may not be charged for paying rent through the landlord's required payment method.",
	},
	"insurance_fee": {
		Key:           "insurance_fee",
		Label:         "Insurance Requirement Fee",
		MaxReasonable: 0,
		LegalNote:     "A landlord may require renters insurance but may not charge a fee for choosing an outside policy.",
	},
	"parking_fee": {
		Key:           "parking_fee",
		Label:         "Parking Fee",
		MaxReasonable: 50.00,
		LegalNote:     "Parking charges must match the lease addendum; unassigned parking included in the lease may not be billed separately.",
	},
	"cam_fee": {
		Key:           "cam_fee",
		Label:         "Common Area Maintenance (CAM)",
		MaxReasonable: 75.00,
		LegalNote:     "CAM charges on residential leases must be itemized and proportional to the unit's share of common area.",
	},
	"cam_reconciliation": {
		Key:           "cam_reconciliation",
		Label:         "CAM Reconciliation Charge",
		MaxReasonable: 0,
		LegalNote:     "Year-end CAM reconciliations are unenforceable without an itemized statement of actual expenses.",
	},
}

// LookupFeeRule returns the ceiling and legal note for a questionable fee key.
func LookupFeeRule(key string) (FeeRule, bool) {
	r, ok := feeRules[key]
	return r, ok
}
