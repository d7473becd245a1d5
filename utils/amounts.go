package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// An amount is either $-prefixed or carries cents. Outside itemized charge lines
// (see MaxChargeAmount) bare integers such as years and day counts are never money.
var (
	moneyRegex  = regexp.MustCompile(`\$\s?\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\$\s?\d+(?:\.\d{1,2})?|\b\d{1,3}(?:,\d{3})+\.\d{2}\b|\b\d+\.\d{2}\b`)
	dollarRegex = regexp.MustCompile(`\$\s?\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\$\s?\d+(?:\.\d{1,2})?`)
	numberRegex = regexp.MustCompile(`\$?\s?\d[\d,]*(?:\.\d+)?`)

	// Itemized charge columns are often printed without a currency sign.
	bareChargeRegex = regexp.MustCompile(`\b\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?\b|\b\d+(?:\.\d{1,2})?\b`)
	dateTokenRegex  = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b\d{4}-\d{2}-\d{2}\b`)
	countTokenRegex = regexp.MustCompile(`(?i)\b(?:level|lvl|qty|quantity|units?|x)\s*#?\d+\b`)
)

// ParseAmount converts "$1,234.56" to 1234.56. The bool is false for anything unparseable.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FindAmounts returns every money amount on a line, in order.
func FindAmounts(line string) []float64 {
	return parseAll(moneyRegex.FindAllString(line, -1))
}

// FindDollarAmounts returns only the $-prefixed amounts on a line, in order.
func FindDollarAmounts(line string) []float64 {
	return parseAll(dollarRegex.FindAllString(line, -1))
}

// FirstAmount returns the first money amount on a line.
func FirstAmount(line string) (float64, bool) {
	amounts := FindAmounts(line)
	if len(amounts) == 0 {
		return 0, false
	}
	return amounts[0], true
}

// MaxAmount returns the largest money amount on a line.
func MaxAmount(line string) (float64, bool) {
	amounts := FindAmounts(line)
	if len(amounts) == 0 {
		return 0, false
	}
	best := amounts[0]
	for _, a := range amounts[1:] {
		if a > best {
			best = a
		}
	}
	return best, true
}

// MaxChargeAmount returns the largest amount on an itemized charge line. When the line
// has no $-prefixed or cents amount, bare numbers such as "2,450" or "2450" are accepted;
// dates and counts like "Level 5" or "Qty 2" are ignored.
func MaxChargeAmount(line string) (float64, bool) {
	if v, ok := MaxAmount(line); ok {
		return v, true
	}

	line = dateTokenRegex.ReplaceAllString(line, " ")
	line = countTokenRegex.ReplaceAllString(line, " ")
	amounts := parseAll(bareChargeRegex.FindAllString(line, -1))
	if len(amounts) == 0 {
		return 0, false
	}
	best := amounts[0]
	for _, a := range amounts[1:] {
		if a > best {
			best = a
		}
	}
	return best, true
}

func parseAll(tokens []string) []float64 {
	out := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		if v, ok := ParseAmount(tok); ok {
			out = append(out, v)
		}
	}
	return out
}

// Round2 rounds to cents.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Sum adds values exactly and rounds the total to cents.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(2).InexactFloat64()
}

// Sub returns a-b rounded to cents.
func Sub(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Round(2).InexactFloat64()
}
