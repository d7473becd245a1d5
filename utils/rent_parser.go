package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// RentFee is a questionable landlord fee found on a statement line.
type RentFee struct {
	Key    string
	Amount float64
	Line   string
}

// RentIncrease is a previous/current rent pair found on one line.
type RentIncrease struct {
	Previous float64
	Current  float64
}

// Delta is the size of the increase.
func (r RentIncrease) Delta() float64 {
	return Sub(r.Current, r.Previous)
}

// RentStatement is everything the rent extractor could find.
type RentStatement struct {
	BaseRent         float64
	LateFee          float64
	GracePeriodDays  int
	GracePeriodKnown bool
	NoticeDays       int
	NoticeKnown      bool
	Increase         *RentIncrease
	Fees             []RentFee
}

type feePattern struct {
	key string
	re  *regexp.Regexp
}

// CAM reconciliation must be tested before plain CAM.
var rentFeePatterns = []feePattern{
	{"admin_fee", regexp.MustCompile(`(?i)admin(?:istrative|istration)?(?:\s*/\s*processing)?\s*fee|processing\s*fee`)},
	{"amenity_fee", regexp.MustCompile(`(?i)amenit(?:y|ies)\s*fee`)},
	{"trash_fee", regexp.MustCompile(`(?i)(?:valet\s*)?(?:trash|waste|garbage)\s*(?:fee|charge|service)?`)},
	{"digital_fee", regexp.MustCompile(`(?i)(?:digital|online|portal|technology|tech|e-?payment)\s*(?:payment\s*|service\s*|portal\s*)?fee|convenience\s*fee`)},
	{"insurance_fee", regexp.MustCompile(`(?i)insurance\s*(?:requirement|waiver|compliance|admin(?:istration)?)?\s*fee|liability\s*waiver`)},
	{"parking_fee", regexp.MustCompile(`(?i)parking\s*(?:fee|charge|space)?`)},
	{"cam_reconciliation", regexp.MustCompile(`(?i)(?:\bCAM\b|common\s*area(?:\s*maintenance)?)[^\n]*reconcil`)},
	{"cam_fee", regexp.MustCompile(`(?i)\bCAM\b|common\s*area\s*maint`)},
}

var (
	baseRentRegex    = regexp.MustCompile(`(?i)base\s*rent`)
	lateKeywordRegex = regexp.MustCompile(`(?i)\blate\b|\bfee\b`)
	lateFeeRegex     = regexp.MustCompile(`(?i)late\s*(?:fee|charge|payment\s*(?:fee|charge|penalty))`)
	graceRegex       = regexp.MustCompile(`(?i)grace`)
	graceNoneRegex   = regexp.MustCompile(`(?i)\bnone\b|no\s*grace|\bn/a\b|not\s*provided`)
	noticeRegex      = regexp.MustCompile(`(?i)notice`)
	noticeNoneRegex  = regexp.MustCompile(`(?i)no\s*(?:advance\s*|prior\s*|written\s*)?notice|without\s*(?:\w+\s*)?notice|\bnone\b|not\s*provided`)
	dayCountRegex    = regexp.MustCompile(`(?i)(\d+)[\s-]*(?:calendar\s*|business\s*)?days?`)
	rentWordRegex    = regexp.MustCompile(`(?i)\brent\b`)
	increaseRegex    = regexp.MustCompile(`(?i)increas|previous|prior|\bold\b|\bfrom\b|\bwas\b|\bnew\b`)
)

func (st *RentStatement) readGrace(line string) {
	if days, ok := extractDayCount(line, graceNoneRegex); ok && !st.GracePeriodKnown {
		st.GracePeriodDays = days
		st.GracePeriodKnown = true
	}
}

// ExtractRentStatement scans a rent statement or lease notice line by line.
func ExtractRentStatement(text string) RentStatement {
	var st RentStatement

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if inc, ok := extractIncrease(line); ok && st.Increase == nil {
			st.Increase = &inc
			if baseRentRegex.MatchString(line) && st.BaseRent == 0 {
				st.BaseRent = inc.Current
			}
			// Increase notices often state the notice period on the same line.
			if noticeRegex.MatchString(line) && !st.NoticeKnown {
				st.NoticeDays, st.NoticeKnown = extractDayCount(line, noticeNoneRegex)
			}
			continue
		}

		if baseRentRegex.MatchString(line) && !lateKeywordRegex.MatchString(line) {
			if amount, ok := FirstAmount(line); ok && st.BaseRent == 0 {
				st.BaseRent = amount
			}
			continue
		}

		// A late-fee line may also state the grace period, e.g. "Late Fee (no grace period) $150.00".
		if lateFeeRegex.MatchString(line) {
			if amount, ok := FirstAmount(line); ok && st.LateFee == 0 {
				st.LateFee = amount
			}
			if graceRegex.MatchString(line) {
				st.readGrace(line)
			}
			continue
		}

		if graceRegex.MatchString(line) {
			st.readGrace(line)
			continue
		}

		if noticeRegex.MatchString(line) {
			if days, ok := extractDayCount(line, noticeNoneRegex); ok && !st.NoticeKnown {
				st.NoticeDays = days
				st.NoticeKnown = true
			}
			continue
		}

		if key, ok := matchRentFee(line); ok {
			if amount, ok := FirstAmount(line); ok && amount > 0 {
				st.Fees = append(st.Fees, RentFee{Key: key, Amount: amount, Line: line})
			}
		}
	}

	return st
}

func matchRentFee(line string) (string, bool) {
	for _, p := range rentFeePatterns {
		if p.re.MatchString(line) {
			return p.key, true
		}
	}
	return "", false
}

func extractIncrease(line string) (RentIncrease, bool) {
	if !rentWordRegex.MatchString(line) || !increaseRegex.MatchString(line) {
		return RentIncrease{}, false
	}
	if lateKeywordRegex.MatchString(line) {
		return RentIncrease{}, false
	}

	amounts := FindAmounts(line)
	if len(amounts) < 2 {
		return RentIncrease{}, false
	}

	prev, cur := amounts[0], amounts[1]
	if prev > cur {
		prev, cur = cur, prev
	}
	if cur <= prev {
		return RentIncrease{}, false
	}
	return RentIncrease{Previous: prev, Current: cur}, true
}

// extractDayCount returns 0 for an explicit "none" and the first "N days" otherwise.
func extractDayCount(line string, none *regexp.Regexp) (int, bool) {
	if m := dayCountRegex.FindStringSubmatch(line); len(m) > 1 {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	if none.MatchString(line) {
		return 0, true
	}
	return 0, false
}

var landlordKeywords = []string{
	"property management", "properties", "apartments", "realty", "residential", "management", "landlord", "llc",
}

// ExtractLandlordName returns the landlord or management company header line.
func ExtractLandlordName(text string) *string {
	return ExtractProviderName(text, landlordKeywords)
}
