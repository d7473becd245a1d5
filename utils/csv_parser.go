package utils

import (
	"encoding/csv"
	"io"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/Aashish23092/bill-dispute-analyzer/dto"
)

// StatementColumns holds the detected column indexes of a CSV statement; -1 when absent.
type StatementColumns struct {
	Date        int
	Description int
	Amount      int
	Category    int
}

var (
	dateColumnRegex        = regexp.MustCompile(`(?i)date|posted|time`)
	descriptionColumnRegex = regexp.MustCompile(`(?i)desc|merchant|payee|name|memo|details|narrative`)
	amountColumnRegex      = regexp.MustCompile(`(?i)amount|debit|charge|withdrawal|value|total`)
	categoryColumnRegex    = regexp.MustCompile(`(?i)categor|\btype\b`)
)

// DetectColumns matches header names against keyword patterns. Missing date,
// description or amount columns fall back to positions 0, 1 and the last column.
func DetectColumns(header []string) StatementColumns {
	cols := StatementColumns{Date: -1, Description: -1, Amount: -1, Category: -1}

	for i, name := range header {
		name = strings.TrimSpace(name)
		switch {
		case cols.Date == -1 && dateColumnRegex.MatchString(name):
			cols.Date = i
		case cols.Description == -1 && descriptionColumnRegex.MatchString(name):
			cols.Description = i
		case cols.Amount == -1 && amountColumnRegex.MatchString(name):
			cols.Amount = i
		case cols.Category == -1 && categoryColumnRegex.MatchString(name):
			cols.Category = i
		}
	}

	if cols.Date == -1 && len(header) > 0 {
		cols.Date = 0
	}
	if cols.Description == -1 && len(header) > 1 {
		cols.Description = 1
	}
	if cols.Amount == -1 && len(header) > 2 {
		cols.Amount = len(header) - 1
	}
	return cols
}

// ParseStatementCSV reads a CSV statement with a header row. Rows without a
// usable description or a non-zero amount are skipped.
func ParseStatementCSV(csvText string) []dto.StatementTransaction {
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(csvText, "\ufeff")))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil
	}
	cols := DetectColumns(header)
	if cols.Description == -1 || cols.Amount == -1 {
		return nil
	}

	var txns []dto.StatementTransaction
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		desc := field(record, cols.Description)
		if desc == "" {
			continue
		}
		amount, ok := parseSignedAmount(field(record, cols.Amount))
		if !ok || amount == 0 {
			continue
		}
		if amount < 0 {
			amount = -amount
		}

		rawDate := field(record, cols.Date)
		date, _ := ParseStatementDate(rawDate)

		txns = append(txns, dto.StatementTransaction{
			Date:        date,
			RawDate:     rawDate,
			Description: desc,
			Amount:      amount,
			Category:    field(record, cols.Category),
		})
	}

	return txns
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseSignedAmount handles "-12.50", "(12.50)" and "$1,200.00".
func parseSignedAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.Trim(s, "()")
	}
	v, ok := ParseAmount(s)
	if !ok {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

var statementDateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"01-02-2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2006-01-02T15:04:05Z07:00",
}

// ParseStatementDate tries the common export date layouts.
func ParseStatementDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range statementDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var (
	processorPrefixRegex = regexp.MustCompile(`^(?:sq|tst|pp|paypal|sp|py|ext|dd|ach)\s*\*\s*`)
	boilerplateRegex     = regexp.MustCompile(`\b(?:pos|debit|credit|card|purchase|recurring|autopay|auto\s*pay|ach|online|payment|pmt|web|checkcard|bill\s*pay|preauthorized|pre-?auth)\b`)
	trailingRefRegex     = regexp.MustCompile(`(?:\s+[#*]?[a-z]*\d[\w#*/.-]*)+$`)
	legalSuffixRegex     = regexp.MustCompile(`(?:[\s,]+(?:inc|llc|ltd|corp|co|corporation|company|limited|plc|l\.l\.c)\.?)+$`)
	nonNameCharsRegex    = regexp.MustCompile(`[^a-z0-9&' ]+`)
	spaceRegex           = regexp.MustCompile(`\s+`)
)

// NormalizeMerchant reduces a raw transaction description to a grouping key:
// trailing reference numbers, processor boilerplate and legal-entity suffixes are removed.
func NormalizeMerchant(description string) string {
	s := strings.ToLower(norm.NFKC.String(description))
	s = strings.TrimSpace(s)
	original := spaceRegex.ReplaceAllString(s, " ")

	s = processorPrefixRegex.ReplaceAllString(s, "")
	s = trailingRefRegex.ReplaceAllString(s, "")
	s = boilerplateRegex.ReplaceAllString(s, " ")
	s = nonNameCharsRegex.ReplaceAllString(s, " ")
	s = spaceRegex.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = trailingRefRegex.ReplaceAllString(s, "")
	s = legalSuffixRegex.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	if s == "" {
		return original
	}
	return s
}

var titleCaser = cases.Title(language.English)

// DisplayMerchant title-cases a normalized merchant name.
func DisplayMerchant(normalized string) string {
	return titleCaser.String(normalized)
}
