package utils

import (
	"regexp"
	"strings"
)

// MedicalCharge is one procedure-coded charge line.
type MedicalCharge struct {
	Code         string
	BilledAmount float64
	Line         string
}

var procedureCodeRegex = regexp.MustCompile(`\b(\d{5}|[A-Z]\d{4})\b`)

var medicalProviderKeywords = []string{
	"hospital", "medical", "health", "clinic", "center", "care", "physician",
}

// providerScanLines bounds how far into the statement the provider header is looked for.
const providerScanLines = 10

const maxProviderNameLength = 100

// ExtractMedicalCharges extracts procedure-coded charges from an itemized medical statement.
// The billed amount is the largest amount on the charge line.
func ExtractMedicalCharges(text string) []MedicalCharge {
	var charges []MedicalCharge

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		loc := procedureCodeRegex.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		code := line[loc[2]:loc[3]]

		// Drop the code itself so it can never be read as an amount.
		rest := line[:loc[0]] + " " + line[loc[1]:]
		amount, ok := MaxChargeAmount(rest)
		if !ok || amount <= 0 {
			continue
		}

		charges = append(charges, MedicalCharge{
			Code:         code,
			BilledAmount: amount,
			Line:         line,
		})
	}

	return charges
}

// ExtractMedicalProvider returns the provider header line of a medical statement.
func ExtractMedicalProvider(text string) *string {
	return ExtractProviderName(text, medicalProviderKeywords)
}

// ExtractProviderName returns the first of the leading lines containing one of the keywords,
// truncated to 100 characters. Nil when no line qualifies.
func ExtractProviderName(text string, keywords []string) *string {
	lines := strings.Split(text, "\n")
	if len(lines) > providerScanLines {
		lines = lines[:providerScanLines]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				if runes := []rune(line); len(runes) > maxProviderNameLength {
					line = string(runes[:maxProviderNameLength])
				}
				return &line
			}
		}
	}

	return nil
}
