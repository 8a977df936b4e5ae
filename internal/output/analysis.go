package output

import (
	"fmt"

	"github.com/expenso/itr/internal/domain"
	"github.com/shopspring/decimal"
)

// Disclaimer is printed at the foot of every human-readable report
const Disclaimer = "This tool provides a basic estimation for informational purposes only. " +
	"For official filing, consult a Chartered Accountant or use the Income Tax Department's e-filing portal."

// CessPercent is the cess rate shown in labels
var CessPercent = decimal.NewFromInt(4)

// BetterRegimeHeadline is the callout title for a comparison
func BetterRegimeHeadline(c *domain.RegimeComparison) string {
	if c == nil {
		return ""
	}
	switch c.Better {
	case domain.BetterOld:
		return "Old Regime is Better for You"
	case domain.BetterNew:
		return "New Regime is Better for You"
	default:
		return "Both Regimes Result in the Same Tax"
	}
}

// SavingsMessage explains how much the cheaper regime saves
func SavingsMessage(c *domain.RegimeComparison) string {
	if c == nil {
		return ""
	}
	switch c.Better {
	case domain.BetterOld:
		return fmt.Sprintf("You save %s by choosing the Old Tax Regime.", FormatINR(c.Savings))
	case domain.BetterNew:
		return fmt.Sprintf("You save %s by choosing the New Tax Regime.", FormatINR(c.Savings))
	default:
		return "Both regimes result in the same tax liability. You may choose either."
	}
}

// Suggestions lists the unused deduction headroom of an old regime result
func Suggestions(res *domain.TaxResult) []string {
	if res == nil || res.PotentialSavings == nil {
		return nil
	}
	var out []string
	if res.PotentialSavings.Section80C.IsPositive() {
		out = append(out, fmt.Sprintf("You can save up to %s more under Section 80C investments.",
			FormatINR(res.PotentialSavings.Section80C)))
	}
	if res.PotentialSavings.Section80D.IsPositive() {
		out = append(out, fmt.Sprintf("You can save up to %s more under Section 80D health insurance.",
			FormatINR(res.PotentialSavings.Section80D)))
	}
	return out
}

// RegimeFeatures returns the short feature list shown under a regime's result
func RegimeFeatures(r domain.Regime) []string {
	if r == domain.RegimeNew {
		return []string{
			"Simplified tax structure with more slabs",
			"Limited deductions and exemptions",
			"Higher rebate limit of ₹7,00,000",
		}
	}
	return []string{
		"Fewer slabs, with age-based exemption limits",
		"Section 80C, 80D, HRA and other deductions available",
		"Rebate limit of ₹5,00,000",
	}
}

// RegimeDifference is one row of the old vs new comparison table
type RegimeDifference struct {
	Feature string
	Old     string
	New     string
}

// RegimeDifferences returns the key differences between the regimes
func RegimeDifferences() []RegimeDifference {
	return []RegimeDifference{
		{"Tax Slabs", "Fewer slabs", "More slabs"},
		{"Deductions", "All available", "Limited"},
		{"HRA Exemption", "Available", "Not available"},
		{"Rebate Limit", "₹5,00,000", "₹7,00,000"},
	}
}

// SlabRange describes slab i of a table, e.g. "₹2,50,000 - ₹5,00,000"
func SlabRange(table domain.SlabTable, i int) string {
	lower := table.LowerBound(i)
	s := table.Slabs[i]
	if s.Unbounded {
		return "Above " + FormatINR(lower)
	}
	return FormatINR(lower) + " - " + FormatINR(s.UpperBound)
}

// Report is the presentation model shared by the JSON and HTML formatters
type Report struct {
	Input           domain.TaxInput   `json:"input"`
	TotalIncome     decimal.Decimal   `json:"totalIncome"`
	TotalDeductions decimal.Decimal   `json:"totalDeductions"`
	Old             *domain.TaxResult `json:"old,omitempty"`
	New             *domain.TaxResult `json:"new,omitempty"`
	Comparison      *ComparisonView   `json:"comparison,omitempty"`
	Suggestions     []string          `json:"suggestions,omitempty"`
}

// ComparisonView is a regime comparison with its display text
type ComparisonView struct {
	Better   domain.BetterRegime `json:"better"`
	Savings  decimal.Decimal     `json:"savings"`
	Headline string              `json:"headline"`
	Message  string              `json:"message"`
}

// BuildReport rounds every figure to paise and attaches the display text
func BuildReport(est *domain.Estimate) Report {
	r := Report{
		Input:           est.Input,
		TotalIncome:     est.TotalIncome.Round(2),
		TotalDeductions: est.TotalDeductions.Round(2),
		Old:             roundResult(est.Old),
		New:             roundResult(est.New),
		Suggestions:     Suggestions(est.Old),
	}
	if c := est.Comparison; c != nil {
		r.Comparison = &ComparisonView{
			Better:   c.Better,
			Savings:  c.Savings.Round(2),
			Headline: BetterRegimeHeadline(c),
			Message:  SavingsMessage(c),
		}
	}
	return r
}

func roundResult(res *domain.TaxResult) *domain.TaxResult {
	if res == nil {
		return nil
	}
	out := *res
	out.TaxableIncome = res.TaxableIncome.Round(2)
	out.BasicTax = res.BasicTax.Round(2)
	out.Cess = res.Cess.Round(2)
	out.Rebate = res.Rebate.Round(2)
	out.TotalTax = res.TotalTax.Round(2)
	if res.PotentialSavings != nil {
		ps := *res.PotentialSavings
		out.PotentialSavings = &ps
	}
	return &out
}

// deductionsFor is the deduction total a regime actually allowed
func deductionsFor(est *domain.Estimate, r domain.Regime) decimal.Decimal {
	if r == domain.RegimeOld {
		return est.TotalDeductions
	}
	return decimal.Zero
}

func isRecommended(c *domain.RegimeComparison, r domain.Regime) bool {
	if c == nil {
		return false
	}
	return string(c.Better) == string(r)
}
