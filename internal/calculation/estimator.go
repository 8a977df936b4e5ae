package calculation

import (
	"github.com/expenso/itr/internal/domain"
	"github.com/shopspring/decimal"
)

// Rules holds the fixed constants the estimator applies around the slab tables
type Rules struct {
	CessRate decimal.Decimal // fraction of basic tax

	OldRebateThreshold decimal.Decimal // Section 87A, old regime
	OldRebateCap       decimal.Decimal
	NewRebateThreshold decimal.Decimal // Section 87A, new regime
	NewRebateCap       decimal.Decimal

	Section80CCeiling       decimal.Decimal
	Section80DCeiling       decimal.Decimal // below 60
	Section80DCeilingSenior decimal.Decimal // 60 and above
}

// DefaultRules returns the rule constants for the current slab tables
func DefaultRules() Rules {
	return Rules{
		CessRate:                decimal.New(4, -2),
		OldRebateThreshold:      decimal.NewFromInt(500000),
		OldRebateCap:            decimal.NewFromInt(12500),
		NewRebateThreshold:      decimal.NewFromInt(700000),
		NewRebateCap:            decimal.NewFromInt(25000),
		Section80CCeiling:       decimal.NewFromInt(150000),
		Section80DCeiling:       decimal.NewFromInt(25000),
		Section80DCeilingSenior: decimal.NewFromInt(50000),
	}
}

// Estimator computes old and new regime liabilities for a TaxInput.
// It holds no per-call state and is safe for concurrent use.
type Estimator struct {
	Rules  Rules
	logger Logger
}

// NewEstimator creates an estimator with the default rules
func NewEstimator() *Estimator {
	return &Estimator{Rules: DefaultRules(), logger: NopLogger{}}
}

// SetLogger sets the logger used for slab tracing; nil restores the no-op logger
func (e *Estimator) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.logger = l
}

// EstimateTax runs the default estimator
func EstimateTax(input domain.TaxInput) domain.Estimate {
	return NewEstimator().Estimate(input)
}

// Estimate computes the regimes selected by input.RegimePreference. When both
// are selected it also compares them. Negative amounts are treated as zero.
func (e *Estimator) Estimate(input domain.TaxInput) domain.Estimate {
	in := input.Sanitized()

	// capital gains stay out of both regimes
	totalIncome := in.Income.Total()
	totalDeductions := in.Deductions.Total()

	est := domain.Estimate{
		Input:           in,
		TotalIncome:     totalIncome,
		TotalDeductions: totalDeductions,
	}

	if in.RegimePreference.IncludesOld() {
		oldTaxable := domain.NonNegative(totalIncome.Sub(totalDeductions))
		res := e.regimeResult(domain.RegimeOld, oldTaxable, OldRegimeTable(in.AgeBracket),
			e.Rules.OldRebateThreshold, e.Rules.OldRebateCap)
		res.PotentialSavings = e.potentialSavings(in)
		est.Old = &res
	}

	if in.RegimePreference.IncludesNew() {
		res := e.regimeResult(domain.RegimeNew, totalIncome, NewRegime(),
			e.Rules.NewRebateThreshold, e.Rules.NewRebateCap)
		est.New = &res
	}

	if est.Old != nil && est.New != nil {
		est.Comparison = CompareRegimes(est.Old, est.New)
	}

	e.logger.Infof("estimate: income=%s deductions=%s age=%s regime=%s",
		totalIncome, totalDeductions, in.AgeBracket, in.RegimePreference)

	return est
}

func (e *Estimator) regimeResult(regime domain.Regime, taxable decimal.Decimal, table domain.SlabTable, rebateThreshold, rebateCap decimal.Decimal) domain.TaxResult {
	basic := applySlabs(taxable, table, e.logger)
	cess := basic.Mul(e.Rules.CessRate)

	rebate := decimal.Zero
	if taxable.LessThanOrEqual(rebateThreshold) {
		rebate = decimal.Min(basic, rebateCap)
	}

	total := domain.NonNegative(basic.Add(cess).Sub(rebate))

	e.logger.Debugf("%s regime: taxable=%s basic=%s cess=%s rebate=%s total=%s",
		regime, taxable, basic, cess, rebate, total)

	return domain.TaxResult{
		Regime:        regime,
		TaxableIncome: taxable,
		BasicTax:      basic,
		Cess:          cess,
		Rebate:        rebate,
		TotalTax:      total,
	}
}

func (e *Estimator) potentialSavings(in domain.TaxInput) *domain.PotentialSavings {
	ceiling80D := e.Rules.Section80DCeilingSenior
	if in.AgeBracket == domain.AgeGeneral {
		ceiling80D = e.Rules.Section80DCeiling
	}
	return &domain.PotentialSavings{
		Section80C: domain.NonNegative(e.Rules.Section80CCeiling.Sub(in.Deductions.Section80C)),
		Section80D: domain.NonNegative(ceiling80D.Sub(in.Deductions.Section80D)),
	}
}

// CompareRegimes picks the regime with the lower total tax and the absolute
// difference between them. Either side being nil yields nil.
func CompareRegimes(oldRes, newRes *domain.TaxResult) *domain.RegimeComparison {
	if oldRes == nil || newRes == nil {
		return nil
	}
	better := domain.BetterEqual
	switch {
	case oldRes.TotalTax.LessThan(newRes.TotalTax):
		better = domain.BetterOld
	case newRes.TotalTax.LessThan(oldRes.TotalTax):
		better = domain.BetterNew
	}
	return &domain.RegimeComparison{
		Better:  better,
		Savings: oldRes.TotalTax.Sub(newRes.TotalTax).Abs(),
	}
}
