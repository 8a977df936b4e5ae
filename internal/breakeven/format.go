package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/expenso/itr/internal/output"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a break-even result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("DEDUCTION BREAK-EVEN\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("CURRENT POSITION\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Total Income:        %s\n", output.FormatINR(result.TotalIncome)))
	sb.WriteString(fmt.Sprintf("Current Deductions:  %s\n", output.FormatINR(result.CurrentDeductions)))
	sb.WriteString(fmt.Sprintf("Old Regime Tax:      %s\n", output.FormatINR(result.CurrentOldTax)))
	sb.WriteString(fmt.Sprintf("New Regime Tax:      %s\n", output.FormatINR(result.NewTax)))
	sb.WriteString("\n")

	sb.WriteString("BREAK-EVEN POINT\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	if result.AlreadyBetter() {
		sb.WriteString("The Old Regime already costs no more than the New Regime.\n")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("Required Deductions: %s\n", output.FormatINR(result.RequiredDeductions)))
	sb.WriteString(fmt.Sprintf("Additional Needed:   %s\n", output.FormatINR(result.AdditionalDeductions)))
	sb.WriteString(fmt.Sprintf("Old Regime Tax Then: %s\n", output.FormatINR(result.OldTaxAtBreakEven)))

	return sb.String()
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
