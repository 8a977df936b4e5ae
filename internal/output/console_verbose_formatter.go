package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/expenso/itr/internal/calculation"
	"github.com/expenso/itr/internal/domain"
)

// ConsoleVerboseFormatter adds the assumptions and a slab-by-slab breakdown of
// each regime to the console report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string      { return "console-verbose" }
func (c ConsoleVerboseFormatter) Extension() string { return "txt" }

func (c ConsoleVerboseFormatter) Format(est *domain.Estimate) ([]byte, error) {
	summary, err := ConsoleFormatter{}.Format(est)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)
	buf.Write(summary)

	for _, res := range est.Results() {
		table := calculation.NewRegime()
		if res.Regime == domain.RegimeOld {
			table = calculation.OldRegimeTable(est.Input.AgeBracket)
		}
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "SLAB BREAKDOWN: %s\n", table.Name)
		fmt.Fprintln(&buf, strings.Repeat("-", 60))
		fmt.Fprintf(&buf, "%-28s %6s %12s %12s\n", "Slab", "Rate", "Income", "Tax")
		for i, p := range calculation.BreakdownSlabs(res.TaxableIncome, table) {
			fmt.Fprintf(&buf, "%-28s %6s %12s %12s\n",
				SlabRange(table, i), FormatPercent(p.RatePercent), FormatINR(p.Amount), FormatINR(p.Tax))
		}
		fmt.Fprintf(&buf, "%-28s %6s %12s %12s\n", "Basic Tax", "", "", FormatINR(res.BasicTax))
	}
	return buf.Bytes(), nil
}
