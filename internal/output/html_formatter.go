package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/expenso/itr/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML page with both regime cards and the comparison.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/estimate.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("estimate").Funcs(template.FuncMap{
	"inr":         FormatINR,
	"pct":         FormatPercent,
	"positive":    func(d decimal.Decimal) bool { return d.IsPositive() },
	"suggestions": Suggestions,
	"features":    RegimeFeatures,
}).Parse(htmlTemplateSource))

type htmlCard struct {
	Result      *domain.TaxResult
	Deductions  decimal.Decimal
	Recommended bool
}

func (h HTMLFormatter) Format(est *domain.Estimate) ([]byte, error) {
	var cards []htmlCard
	for _, res := range est.Results() {
		res := res
		cards = append(cards, htmlCard{
			Result:      &res,
			Deductions:  deductionsFor(est, res.Regime),
			Recommended: isRecommended(est.Comparison, res.Regime),
		})
	}

	data := struct {
		*domain.Estimate
		Cards       []htmlCard
		Headline    string
		Message     string
		Differences []RegimeDifference
		CessPercent decimal.Decimal
		Assumptions []string
		Disclaimer  string
	}{
		Estimate:    est,
		Cards:       cards,
		Headline:    BetterRegimeHeadline(est.Comparison),
		Message:     SavingsMessage(est.Comparison),
		Differences: RegimeDifferences(),
		CessPercent: CessPercent,
		Assumptions: DefaultAssumptions,
		Disclaimer:  Disclaimer,
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
