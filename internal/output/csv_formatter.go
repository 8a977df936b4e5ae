package output

import (
	"bytes"
	"encoding/csv"

	"github.com/expenso/itr/internal/domain"
)

// CSVFormatter writes one row per computed regime.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

func (c CSVFormatter) Format(est *domain.Estimate) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Regime", "TotalIncome", "TotalDeductions", "TaxableIncome", "BasicTax", "Cess", "Rebate", "TotalTax", "Potential80C", "Potential80D", "Recommended"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, res := range est.Results() {
		p80c, p80d := "", ""
		if res.PotentialSavings != nil {
			p80c = res.PotentialSavings.Section80C.StringFixed(2)
			p80d = res.PotentialSavings.Section80D.StringFixed(2)
		}
		row := []string{
			string(res.Regime),
			est.TotalIncome.StringFixed(2),
			deductionsFor(est, res.Regime).StringFixed(2),
			res.TaxableIncome.StringFixed(2),
			res.BasicTax.StringFixed(2),
			res.Cess.StringFixed(2),
			res.Rebate.StringFixed(2),
			res.TotalTax.StringFixed(2),
			p80c,
			p80d,
			boolString(isRecommended(est.Comparison, res.Regime)),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
