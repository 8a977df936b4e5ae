package domain

import "github.com/shopspring/decimal"

// PotentialSavings is the unused headroom under the 80C and 80D ceilings.
// It is advisory and never enters the tax figure.
type PotentialSavings struct {
	Section80C decimal.Decimal `json:"section80C"`
	Section80D decimal.Decimal `json:"section80D"`
}

// Any reports whether either section still has headroom
func (p PotentialSavings) Any() bool {
	return p.Section80C.IsPositive() || p.Section80D.IsPositive()
}

// TaxResult is the computed liability under one regime
type TaxResult struct {
	Regime           Regime            `json:"regime"`
	TaxableIncome    decimal.Decimal   `json:"taxableIncome"`
	BasicTax         decimal.Decimal   `json:"basicTax"`
	Cess             decimal.Decimal   `json:"cess"`
	Rebate           decimal.Decimal   `json:"rebate"`
	TotalTax         decimal.Decimal   `json:"totalTax"`
	PotentialSavings *PotentialSavings `json:"potentialSavings,omitempty"`
}

// BetterRegime names the cheaper regime, or equal when both cost the same
type BetterRegime string

const (
	BetterOld   BetterRegime = "old"
	BetterNew   BetterRegime = "new"
	BetterEqual BetterRegime = "equal"
)

// RegimeComparison is only present when both regimes were computed
type RegimeComparison struct {
	Better  BetterRegime    `json:"better"`
	Savings decimal.Decimal `json:"savings"` // absolute difference in total tax
}

// Estimate is the outcome of one estimator run
type Estimate struct {
	Input           TaxInput          `json:"input"`
	TotalIncome     decimal.Decimal   `json:"totalIncome"`
	TotalDeductions decimal.Decimal   `json:"totalDeductions"`
	Old             *TaxResult        `json:"old,omitempty"`
	New             *TaxResult        `json:"new,omitempty"`
	Comparison      *RegimeComparison `json:"comparison,omitempty"`
}

// Results returns the computed results in display order (old first)
func (e Estimate) Results() []TaxResult {
	var out []TaxResult
	if e.Old != nil {
		out = append(out, *e.Old)
	}
	if e.New != nil {
		out = append(out, *e.New)
	}
	return out
}
