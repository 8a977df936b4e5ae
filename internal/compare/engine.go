package compare

import (
	"context"
	"fmt"

	"github.com/expenso/itr/internal/breakeven"
	"github.com/expenso/itr/internal/calculation"
	"github.com/expenso/itr/internal/domain"
	"github.com/expenso/itr/internal/output"
	"github.com/shopspring/decimal"
)

// CompareEngine orchestrates regime comparison
type CompareEngine struct {
	Estimator *calculation.Estimator
	Solver    *breakeven.Solver
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(estimator *calculation.Estimator) *CompareEngine {
	return &CompareEngine{
		Estimator: estimator,
		Solver:    breakeven.NewDefaultSolver(estimator),
	}
}

// Compare estimates both regimes for input, whatever its regime preference,
// and adds the deduction break-even point when the new regime is cheaper.
func (ce *CompareEngine) Compare(ctx context.Context, input domain.TaxInput, inputPath string) (*ComparisonSet, error) {
	input.RegimePreference = domain.PreferBoth
	est := ce.Estimator.Estimate(input)

	compSet, err := Build(&est)
	if err != nil {
		return nil, err
	}
	compSet.InputPath = inputPath

	if compSet.Better == domain.BetterNew {
		be, err := ce.Solver.Solve(ctx, breakeven.Request{Input: input})
		if err != nil {
			return nil, fmt.Errorf("failed to solve deduction break-even: %w", err)
		}
		compSet.BreakEven = be
	}

	compSet.Recommendations = GenerateRecommendations(compSet, &est)
	return compSet, nil
}

// Build turns an estimate with both regimes into a ComparisonSet
func Build(est *domain.Estimate) (*ComparisonSet, error) {
	if est == nil || est.Old == nil || est.New == nil || est.Comparison == nil {
		return nil, ErrIncompleteEstimate
	}

	best := decimal.Min(est.Old.TotalTax, est.New.TotalTax)
	c := est.Comparison

	compSet := &ComparisonSet{
		AgeBracket:  est.Input.AgeBracket,
		TotalIncome: est.TotalIncome,
		Old:         newComparisonResult(est.Old, est.TotalIncome, est.TotalDeductions, best, c.Better == domain.BetterOld),
		New:         newComparisonResult(est.New, est.TotalIncome, decimal.Zero, best, c.Better == domain.BetterNew),
		Better:      c.Better,
		Savings:     c.Savings,
	}
	compSet.Recommendations = GenerateRecommendations(compSet, est)
	return compSet, nil
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet, est *domain.Estimate) []string {
	recommendations := []string{
		output.SavingsMessage(&domain.RegimeComparison{Better: compSet.Better, Savings: compSet.Savings}),
	}

	recommendations = append(recommendations, output.Suggestions(est.Old)...)

	if be := compSet.BreakEven; be != nil && be.Success && !be.AlreadyBetter() {
		recommendations = append(recommendations,
			"Claiming "+output.FormatINR(be.AdditionalDeductions)+
				" more in deductions would make the Old Regime no costlier than the New Regime.")
	}

	if hra := est.Input.Deductions.HRA; hra.IsPositive() && compSet.Better != domain.BetterOld {
		recommendations = append(recommendations,
			"Your HRA exemption of "+output.FormatINR(hra)+" is not available under the New Regime.")
	}

	return recommendations
}
