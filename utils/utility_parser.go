package utils

import (
	"regexp"
	"strings"
)

// BillingPeriod is one monthly usage line of a utility statement.
type BillingPeriod struct {
	Period      string
	Usage       float64
	Rate        float64
	Amount      float64
	IsEstimated bool
}

// UtilityStatement is everything the utility extractor could find.
type UtilityStatement struct {
	Periods        []BillingPeriod
	BackBillAmount float64
	ServiceFee     float64
}

// EstimatedPeriods returns the periods billed on an estimated reading.
func (u UtilityStatement) EstimatedPeriods() []BillingPeriod {
	var out []BillingPeriod
	for _, p := range u.Periods {
		if p.IsEstimated {
			out = append(out, p)
		}
	}
	return out
}

// ActualPeriods returns the periods billed on an actual meter reading.
func (u UtilityStatement) ActualPeriods() []BillingPeriod {
	var out []BillingPeriod
	for _, p := range u.Periods {
		if !p.IsEstimated {
			out = append(out, p)
		}
	}
	return out
}

var (
	periodRegex     = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?[\s,/-]*(\d{4})\b`)
	estimatedRegex  = regexp.MustCompile(`(?i)\best(?:imated|imate|\.)?\b`)
	actualRegex     = regexp.MustCompile(`(?i)\bactual\b`)
	backBillRegex   = regexp.MustCompile(`(?i)back[\s-]*bill|adjustment|correction|catch[\s-]*up`)
	serviceFeeRegex = regexp.MustCompile(`(?i)service\s*(?:fee|charge)|customer\s*charge|connection\s*fee|meter\s*fee`)
)

// ExtractUtilityStatement scans a utility statement for monthly periods, a back-bill
// adjustment and a service fee.
func ExtractUtilityStatement(text string) UtilityStatement {
	var st UtilityStatement
	backBillSeen, feeSeen := false, false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if backBillRegex.MatchString(line) {
			if amount, ok := FirstAmount(line); ok && !backBillSeen {
				st.BackBillAmount = amount
				backBillSeen = true
			}
			continue
		}

		if serviceFeeRegex.MatchString(line) {
			if amount, ok := FirstAmount(line); ok && !feeSeen {
				st.ServiceFee = amount
				feeSeen = true
			}
			continue
		}

		if p, ok := parsePeriodLine(line); ok {
			st.Periods = append(st.Periods, p)
		}
	}

	return st
}

func parsePeriodLine(line string) (BillingPeriod, bool) {
	loc := periodRegex.FindStringIndex(line)
	if loc == nil {
		return BillingPeriod{}, false
	}
	period := strings.TrimSpace(line[loc[0]:loc[1]])
	rest := line[loc[1]:]

	var tokens []float64
	lastDollar := -1
	for _, raw := range numberRegex.FindAllString(rest, -1) {
		v, ok := ParseAmount(raw)
		if !ok {
			continue
		}
		if strings.Contains(raw, "$") {
			lastDollar = len(tokens)
		}
		tokens = append(tokens, v)
	}

	// The last $ amount is the period total; the remaining leading numbers are usage and rate.
	var numbers []float64
	for i, t := range tokens {
		if i != lastDollar {
			numbers = append(numbers, t)
		}
	}
	if len(numbers) < 2 {
		return BillingPeriod{}, false
	}

	usage, rate := numbers[0], numbers[1]
	var amount float64
	switch {
	case lastDollar >= 0:
		amount = tokens[lastDollar]
	case len(numbers) >= 3:
		amount = numbers[2]
	default:
		amount = Round2(usage * rate)
	}

	lower := strings.ToLower(line)
	return BillingPeriod{
		Period:      period,
		Usage:       usage,
		Rate:        rate,
		Amount:      amount,
		IsEstimated: estimatedRegex.MatchString(lower) && !actualRegex.MatchString(lower),
	}, true
}

var utilityKeywords = []string{
	"electric", "gas", "water", "power", "energy", "utilit", "sewer",
}

// ExtractUtilityProvider returns the utility company header line.
func ExtractUtilityProvider(text string) *string {
	return ExtractProviderName(text, utilityKeywords)
}
