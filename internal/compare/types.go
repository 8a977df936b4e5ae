package compare

import (
	"errors"

	"github.com/expenso/itr/internal/breakeven"
	"github.com/expenso/itr/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrIncompleteEstimate is returned when an estimate lacks one of the regimes
var ErrIncompleteEstimate = errors.New("comparison needs both regimes computed")

// ComparisonResult is one regime's side of the comparison
type ComparisonResult struct {
	Regime domain.Regime `json:"regime"`
	Title  string        `json:"title"`

	TaxableIncome decimal.Decimal `json:"taxableIncome"`
	Deductions    decimal.Decimal `json:"deductions"`
	BasicTax      decimal.Decimal `json:"basicTax"`
	Cess          decimal.Decimal `json:"cess"`
	Rebate        decimal.Decimal `json:"rebate"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"` // percent of total income

	// Comparison to the cheaper regime
	DiffFromBest decimal.Decimal `json:"diffFromBest"`
	Recommended  bool            `json:"recommended"`
}

// ComparisonSet is the side-by-side comparison of both regimes
type ComparisonSet struct {
	InputPath       string              `json:"inputPath,omitempty"`
	AgeBracket      domain.AgeBracket   `json:"age"`
	TotalIncome     decimal.Decimal     `json:"totalIncome"`
	Old             ComparisonResult    `json:"old"`
	New             ComparisonResult    `json:"new"`
	Better          domain.BetterRegime `json:"better"`
	Savings         decimal.Decimal     `json:"savings"`
	BreakEven       *breakeven.Result   `json:"breakEven,omitempty"`
	Recommendations []string            `json:"recommendations"`
}

// Results returns both sides in display order
func (cs *ComparisonSet) Results() []ComparisonResult {
	return []ComparisonResult{cs.Old, cs.New}
}

var hundred = decimal.NewFromInt(100)

// newComparisonResult extracts the comparison metrics from one regime result
func newComparisonResult(res *domain.TaxResult, totalIncome, deductions, best decimal.Decimal, recommended bool) ComparisonResult {
	rate := decimal.Zero
	if totalIncome.IsPositive() {
		rate = res.TotalTax.Div(totalIncome).Mul(hundred)
	}
	return ComparisonResult{
		Regime:        res.Regime,
		Title:         res.Regime.Title(),
		TaxableIncome: res.TaxableIncome,
		Deductions:    deductions,
		BasicTax:      res.BasicTax,
		Cess:          res.Cess,
		Rebate:        res.Rebate,
		TotalTax:      res.TotalTax,
		EffectiveRate: rate,
		DiffFromBest:  res.TotalTax.Sub(best),
		Recommended:   recommended,
	}
}
