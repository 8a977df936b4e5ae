package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Regime",
		"Deductions",
		"Taxable Income",
		"Basic Tax",
		"Cess",
		"Rebate",
		"Total Tax",
		"Effective Rate %",
		"Diff From Best",
		"Recommended",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, r := range compSet.Results() {
		if err := writer.Write(cf.formatRow(r)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result ComparisonResult) []string {
	return []string{
		string(result.Regime),
		result.Deductions.StringFixed(2),
		result.TaxableIncome.StringFixed(2),
		result.BasicTax.StringFixed(2),
		result.Cess.StringFixed(2),
		result.Rebate.StringFixed(2),
		result.TotalTax.StringFixed(2),
		result.EffectiveRate.StringFixed(2),
		result.DiffFromBest.StringFixed(2),
		strconv.FormatBool(result.Recommended),
	}
}
