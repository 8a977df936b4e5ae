package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/expenso/itr/internal/domain"
)

// ConsoleFormatter renders the estimate the way the results page lays it out:
// one block per regime, then the comparison callout.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(est *domain.Estimate) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "INCOME TAX ESTIMATE")
	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "%-28s %s\n", "Age Category:", est.Input.AgeBracket.Label())
	fmt.Fprintf(&buf, "%-28s %s\n", "Regime:", est.Input.RegimePreference.Label())
	fmt.Fprintf(&buf, "%-28s %s\n", "Total Income:", FormatINR(est.TotalIncome))
	if est.Input.CapitalGains.IsPositive() {
		fmt.Fprintf(&buf, "%-28s %s (not included in taxable income)\n", "Capital Gains:", FormatINR(est.Input.CapitalGains))
	}

	for _, res := range est.Results() {
		fmt.Fprintln(&buf)
		writeRegimeBlock(&buf, est, res)
	}

	if cmp := est.Comparison; cmp != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "REGIME COMPARISON")
		fmt.Fprintln(&buf, strings.Repeat("-", 60))
		fmt.Fprintln(&buf, BetterRegimeHeadline(cmp))
		fmt.Fprintln(&buf, SavingsMessage(cmp))
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "%-16s %-16s %-16s\n", "Feature", "Old Regime", "New Regime")
		for _, d := range RegimeDifferences() {
			fmt.Fprintf(&buf, "%-16s %-16s %-16s\n", d.Feature, d.Old, d.New)
		}
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, Disclaimer)
	return buf.Bytes(), nil
}

func writeRegimeBlock(buf *bytes.Buffer, est *domain.Estimate, res domain.TaxResult) {
	title := strings.ToUpper(res.Regime.Title())
	if isRecommended(est.Comparison, res.Regime) {
		title += "  (recommended)"
	}
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("-", 60))
	fmt.Fprintf(buf, "%-32s %15s\n", "Total Income:", FormatINR(est.TotalIncome))
	if res.Regime == domain.RegimeOld {
		fmt.Fprintf(buf, "%-32s %15s\n", "Total Deductions:", FormatINR(est.TotalDeductions))
	} else {
		fmt.Fprintf(buf, "%-32s %15s\n", "Available Deductions:", "Limited")
	}
	fmt.Fprintf(buf, "%-32s %15s\n", "Taxable Income:", FormatINR(res.TaxableIncome))
	fmt.Fprintf(buf, "%-32s %15s\n", "Basic Tax:", FormatINR(res.BasicTax))
	fmt.Fprintf(buf, "%-32s %15s\n", "Health & Education Cess ("+FormatPercent(CessPercent)+"):", FormatINR(res.Cess))
	if res.Rebate.IsPositive() {
		fmt.Fprintf(buf, "%-32s %15s\n", "Rebate (Section 87A):", "-"+FormatINR(res.Rebate))
	}
	fmt.Fprintf(buf, "%-32s %15s\n", "Total Tax Payable:", FormatINR(res.TotalTax))

	if tips := Suggestions(&res); len(tips) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "Tax Saving Suggestions:")
		for _, s := range tips {
			fmt.Fprintf(buf, "  • %s\n", s)
		}
	}
	if res.Regime == domain.RegimeNew {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "New Regime Features:")
		for _, f := range RegimeFeatures(domain.RegimeNew) {
			fmt.Fprintf(buf, "  • %s\n", f)
		}
	}
}
