package service

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Aashish23092/bill-dispute-analyzer/dto"
)

type letterTemplate struct {
	subject      string
	body         *template.Template
	instructions []string
}

// letterData is what the templates render from.
type letterData struct {
	Result   dto.UnifiedAnalysisResult
	Options  dto.LetterOptions
	Provider string
	Date     string
}

var letterFuncs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"amount": func(item dto.FlaggedItem, v float64) string {
		if item.IsRate() {
			return fmt.Sprintf("$%.4f per unit", v)
		}
		return fmt.Sprintf("$%.2f", v)
	},
	"inc": func(i int) int { return i + 1 },
}

const itemsBlock = `{{range $i, $item := .Result.LineItems}}
{{inc $i}}. {{$item.Code}}: {{$item.Description}}
   Billed: {{amount $item $item.BilledAmount}}  Fair: {{amount $item $item.FairPrice}}  Disputed: {{amount $item $item.Savings}}
{{end}}`

const signature = `
Sincerely,

{{.Options.SenderName}}
{{if .Options.SenderAddress}}{{.Options.SenderAddress}}
{{end}}`

var letterTemplates = map[dto.Category]letterTemplate{
	dto.CategoryMedical: {
		subject: "Request for Itemized Bill Review and Billing Correction",
		body: mustLetter("medical", `{{.Date}}

To: Billing Department, {{.Provider}}
{{if .Options.AccountNumber}}Re: Account {{.Options.AccountNumber}}
{{end}}
To whom it may concern,

I am writing to dispute charges on my itemized statement. After comparing each billed procedure code
against published fair market rates, the following charges appear to be billed well above reasonable
amounts:
`+itemsBlock+`
Total billed: {{money .Result.TotalBilled}}
Total at fair market rates: {{money .Result.TotalFairPrice}}
Amount in dispute: {{money .Result.PotentialSavings}}

Please review these charges, provide documentation supporting each amount, and issue a corrected
statement. I ask that this account not be referred to collections while the dispute is under review.
`+signature),
		instructions: []string{
			"Request a fully itemized statement with CPT/HCPCS codes if you have not already received one.",
			"Send this letter to the provider's billing department by certified mail and keep the receipt.",
			"Ask the provider in writing to pause collections while the dispute is open.",
			"If the provider is out of network, also file an appeal with your insurer citing the same codes.",
			"Follow up in 30 days; escalate to your state's consumer protection office if there is no response.",
		},
	},
	dto.CategoryAutoInsurance: {
		subject: "Request for Premium Review at Policy Renewal",
		body: mustLetter("auto", `{{.Date}}

To: Underwriting Department, {{.Provider}}
{{if .Options.AccountNumber}}Re: Policy {{.Options.AccountNumber}}
{{end}}
To whom it may concern,

My renewal notice shows premium increases that are well above the state-average rates for the same
coverage. I request a written explanation of the rating factors behind each increase and a re-rating
of the following coverages:
`+itemsBlock+`
Renewal premium for reviewed coverages: {{money .Result.TotalBilled}}
Benchmark premium for the same coverages: {{money .Result.TotalFairPrice}}
Difference in question: {{money .Result.PotentialSavings}}

Please confirm whether any discounts were removed and whether my driving and claims record was
correctly applied.
`+signature),
		instructions: []string{
			"Send the request before the renewal effective date so the policy does not lapse.",
			"Ask the insurer to list every rating factor and discount applied at renewal.",
			"Collect at least two competing quotes for identical coverage limits.",
			"If the insurer cannot justify the increase, file a complaint with your state insurance department.",
		},
	},
	dto.CategoryRent: {
		subject: "Notice of Disputed Charges Under Lease",
		body: mustLetter("rent", `{{.Date}}

To: {{.Provider}}
{{if .Options.AccountNumber}}Re: Unit/Lease {{.Options.AccountNumber}}
{{end}}
Dear Landlord/Property Manager,

I am writing regarding charges on my rent statement that are not permitted under my lease or
applicable landlord-tenant law:
`+itemsBlock+`
Total billed: {{money .Result.TotalBilled}}
Amount I am disputing: {{money .Result.PotentialSavings}}

I will continue to pay undisputed rent on time. Please remove or refund the charges listed above and
provide a corrected ledger within 14 days.
`+signature),
		instructions: []string{
			"Pay the undisputed base rent on time so the dispute cannot be treated as non-payment.",
			"Deliver this letter in the way your lease requires for notices and keep proof of delivery.",
			"Attach a copy of the lease sections and the rent ledger showing each disputed charge.",
			"If the charges are not corrected, contact your local tenant rights organization or housing authority.",
		},
	},
	dto.CategoryUtility: {
		subject: "Formal Billing Dispute",
		body: mustLetter("utility", `{{.Date}}

To: Customer Service, {{.Provider}}
{{if .Options.AccountNumber}}Re: Account {{.Options.AccountNumber}}
{{end}}
To whom it may concern,

I am formally disputing charges on my utility account. A review of my billing history shows the
following problems:
`+itemsBlock+`
Total billed: {{money .Result.TotalBilled}}
Amount in dispute: {{money .Result.PotentialSavings}}

Please provide actual meter readings for every estimated period, the rate schedule applied to each
bill, and a corrected statement. Service must not be disconnected while this dispute is pending.
`+signature),
		instructions: []string{
			"Submit the dispute to the utility in writing and request a case number.",
			"Ask for an actual meter reading and photos of the meter if readings were estimated.",
			"Request that disconnection be suspended while the dispute is under review.",
			"If unresolved after 30 days, file a complaint with your state public utility commission.",
		},
	},
}

func mustLetter(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(letterFuncs).Parse(text))
}

// GenerateDisputeLetter renders the category's dispute letter from an analysis result.
func GenerateDisputeLetter(result dto.UnifiedAnalysisResult, opts dto.LetterOptions) (*dto.DisputeLetter, error) {
	tmpl, ok := letterTemplates[result.Category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", dto.ErrUnknownCategory, result.Category)
	}

	provider := "Billing Department"
	if result.ProviderName != nil && strings.TrimSpace(*result.ProviderName) != "" {
		provider = strings.TrimSpace(*result.ProviderName)
	}
	if strings.TrimSpace(opts.SenderName) == "" {
		opts.SenderName = "Account Holder"
	}
	date := ""
	if !opts.Date.IsZero() {
		date = opts.Date.Format("January 2, 2006")
	}

	var buf bytes.Buffer
	data := letterData{Result: result, Options: opts, Provider: provider, Date: date}
	if err := tmpl.body.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render %s letter: %w", result.Category, err)
	}

	return &dto.DisputeLetter{
		Category:     result.Category,
		Subject:      tmpl.subject,
		Body:         strings.TrimSpace(buf.String()) + "\n",
		Instructions: append([]string(nil), tmpl.instructions...),
	}, nil
}

// SubmissionInstructions returns the filing steps for a category.
func SubmissionInstructions(category dto.Category) ([]string, error) {
	tmpl, ok := letterTemplates[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", dto.ErrUnknownCategory, category)
	}
	return append([]string(nil), tmpl.instructions...), nil
}
