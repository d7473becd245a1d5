package utils

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/bill-dispute-analyzer/reference"
)

// PremiumChange is a coverage line whose premium went up at renewal.
type PremiumChange struct {
	Coverage        reference.CoverageType
	PreviousPremium float64
	NewPremium      float64
	Line            string
}

type coveragePattern struct {
	coverage reference.CoverageType
	re       *regexp.Regexp
}

// Checked in order; the first pattern that matches a line wins. Uninsured motorist
// lines usually also say "bodily injury" or "property damage", so they go first.
var coveragePatterns = []coveragePattern{
	{reference.CoverageUninsuredMotorist, regexp.MustCompile(`(?i)un(?:der)?insured\s*motorist|\bUM/UIM\b`)},
	{reference.CoverageBodilyInjury, regexp.MustCompile(`(?i)bodily\s*injury`)},
	{reference.CoveragePropertyDamage, regexp.MustCompile(`(?i)property\s*damage`)},
	{reference.CoverageMedicalPayments, regexp.MustCompile(`(?i)med(?:ical)?\s*pay(?:ments)?`)},
	{reference.CoveragePIP, regexp.MustCompile(`(?i)personal\s*injury\s*protection|\bPIP\b`)},
	{reference.CoverageComprehensive, regexp.MustCompile(`(?i)comprehensive|other\s*than\s*collision`)},
	{reference.CoverageCollision, regexp.MustCompile(`(?i)collision`)},
	{reference.CoverageRental, regexp.MustCompile(`(?i)rental\s*(?:reimbursement|car|coverage)?|transportation\s*expense`)},
	{reference.CoverageRoadside, regexp.MustCompile(`(?i)roadside|towing`)},
}

var insurerKeywords = []string{
	"insurance", "mutual", "assurance", "casualty", "indemnity", "underwriters",
}

// ExtractPremiumChanges reads renewal lines of the form
// "<coverage> ... $previous ... $new" and keeps the ones that increased.
func ExtractPremiumChanges(text string) []PremiumChange {
	var changes []PremiumChange

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		coverage, ok := matchCoverage(line)
		if !ok {
			continue
		}

		amounts := FindDollarAmounts(line)
		if len(amounts) < 2 {
			continue
		}

		prev, next := amounts[0], amounts[1]
		if next <= prev {
			continue
		}

		changes = append(changes, PremiumChange{
			Coverage:        coverage,
			PreviousPremium: prev,
			NewPremium:      next,
			Line:            line,
		})
	}

	return changes
}

func matchCoverage(line string) (reference.CoverageType, bool) {
	for _, p := range coveragePatterns {
		if p.re.MatchString(line) {
			return p.coverage, true
		}
	}
	return "", false
}

// ExtractInsurerName returns the insurer header line of a renewal notice.
func ExtractInsurerName(text string) *string {
	return ExtractProviderName(text, insurerKeywords)
}
