package compare

import (
	"fmt"
	"strings"

	"github.com/expenso/itr/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing both regimes
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("TAX REGIME COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Age Category: %s\n", compSet.AgeBracket.Label()))
	if compSet.InputPath != "" {
		sb.WriteString(fmt.Sprintf("Input:        %s\n", compSet.InputPath))
	}
	sb.WriteString(fmt.Sprintf("Total Income: %s\n", output.FormatINR(compSet.TotalIncome)))
	sb.WriteString("\n")

	labelWidth := 28
	numWidth := 20

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
		labelWidth, "",
		numWidth, tf.columnTitle(compSet.Old),
		numWidth, tf.columnTitle(compSet.New)))
	sb.WriteString(strings.Repeat("-", 72) + "\n")

	rows := []struct {
		label    string
		old, new decimal.Decimal
	}{
		{"Deductions", compSet.Old.Deductions, compSet.New.Deductions},
		{"Taxable Income", compSet.Old.TaxableIncome, compSet.New.TaxableIncome},
		{"Basic Tax", compSet.Old.BasicTax, compSet.New.BasicTax},
		{"Cess (4%)", compSet.Old.Cess, compSet.New.Cess},
		{"Rebate (87A)", compSet.Old.Rebate.Neg(), compSet.New.Rebate.Neg()},
	}
	for _, r := range rows {
		sb.WriteString(tf.formatRow(r.label, r.old, r.new, labelWidth, numWidth))
	}
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(tf.formatRow("Total Tax", compSet.Old.TotalTax, compSet.New.TotalTax, labelWidth, numWidth))
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
		labelWidth, "Effective Rate",
		numWidth, compSet.Old.EffectiveRate.StringFixed(2)+"%",
		numWidth, compSet.New.EffectiveRate.StringFixed(2)+"%"))
	sb.WriteString(strings.Repeat("=", 72) + "\n")

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) columnTitle(r ComparisonResult) string {
	if r.Recommended {
		return "* " + r.Title
	}
	return r.Title
}

// formatRow formats a single metric row
func (tf *TableFormatter) formatRow(label string, oldVal, newVal decimal.Decimal, labelWidth, numWidth int) string {
	return fmt.Sprintf("%-*s %*s %*s\n",
		labelWidth, label,
		numWidth, output.FormatINR(oldVal),
		numWidth, output.FormatINR(newVal))
}

// FormatCompact creates a one-line summary of the comparison
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	return fmt.Sprintf("Old: %s | New: %s | Better: %s (saves %s)",
		output.FormatINR(compSet.Old.TotalTax),
		output.FormatINR(compSet.New.TotalTax),
		compSet.Better,
		output.FormatINR(compSet.Savings))
}
