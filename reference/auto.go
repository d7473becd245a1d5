package reference

// CoverageType is a normalized auto-insurance coverage key.
type CoverageType string

const (
	CoverageBodilyInjury      CoverageType = "bodily_injury"
	CoveragePropertyDamage    CoverageType = "property_damage"
	CoverageCollision         CoverageType = "collision"
	CoverageComprehensive     CoverageType = "comprehensive"
	CoverageUninsuredMotorist CoverageType = "uninsured_motorist"
	CoverageMedicalPayments   CoverageType = "medical_payments"
	CoveragePIP               CoverageType = "pip"
	CoverageRental            CoverageType = "rental"
	CoverageRoadside          CoverageType = "roadside"
)

// Six-month state-average premiums. Rental and roadside are add-ons with no
// published average; callers fall back to the policy's previous premium.
var stateAveragePremiums = map[CoverageType]float64{
	CoverageBodilyInjury:      580.00,
	CoveragePropertyDamage:    420.00,
	CoverageCollision:         450.00,
	CoverageComprehensive:     180.00,
	CoverageUninsuredMotorist: 110.00,
	CoverageMedicalPayments:   70.00,
	CoveragePIP:               250.00,
}

var coverageLabels = map[CoverageType]string{
	CoverageBodilyInjury:      "Bodily Injury Liability",
	CoveragePropertyDamage:    "Property Damage Liability",
	CoverageCollision:         "Collision",
	CoverageComprehensive:     "Comprehensive",
	CoverageUninsuredMotorist: "Uninsured/Underinsured Motorist",
	CoverageMedicalPayments:   "Medical Payments",
	CoveragePIP:               "Personal Injury Protection",
	CoverageRental:            "Rental Reimbursement",
	CoverageRoadside:          "Roadside Assistance",
}

// StateAveragePremium returns the benchmark premium for a coverage type.
func StateAveragePremium(coverage CoverageType) (float64, bool) {
	p, ok := stateAveragePremiums[coverage]
	return p, ok
}

// CoverageLabel returns a human-readable coverage name.
func CoverageLabel(coverage CoverageType) string {
	if label, ok := coverageLabels[coverage]; ok {
		return label
	}
	return string(coverage)
}
