package breakeven

import (
	"context"
	"fmt"

	"github.com/expenso/itr/internal/calculation"
	"github.com/expenso/itr/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds the old regime deduction total at which the old regime stops
// costing more than the new regime.
type Solver struct {
	Estimator *calculation.Estimator
	Options   SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(estimator *calculation.Estimator, options SolverOptions) *Solver {
	return &Solver{
		Estimator: estimator,
		Options:   options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(estimator *calculation.Estimator) *Solver {
	return NewSolver(estimator, DefaultSolverOptions())
}

// Solve binary searches the deduction total. Old regime tax never increases as
// deductions grow and reaches zero once taxable income does, so a break-even
// point always exists somewhere between the current deductions and total income.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	in := req.Input.Sanitized()
	in.RegimePreference = domain.PreferBoth
	est := s.Estimator.Estimate(in)

	result := &Result{
		Request:           req,
		TotalIncome:       est.TotalIncome,
		CurrentDeductions: est.TotalDeductions,
		CurrentOldTax:     est.Old.TotalTax,
		NewTax:            est.New.TotalTax,
	}

	if est.Old.TotalTax.LessThanOrEqual(est.New.TotalTax) {
		result.Success = true
		result.RequiredDeductions = est.TotalDeductions
		result.OldTaxAtBreakEven = est.Old.TotalTax
		result.ConvergenceInfo = "old regime already costs no more than the new regime"
		return result, nil
	}

	// old(lo) > new and old(hi) <= new hold throughout
	lo := est.TotalDeductions
	hi := est.TotalIncome
	oldAtHi := s.oldTaxWith(in, hi)

	converged := false
	for {
		if hi.Sub(lo).LessThanOrEqual(req.Tolerance) {
			converged = true
			break
		}
		if result.Iterations >= req.MaxIterations {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// search in whole rupees
		mid := lo.Add(hi).Div(two).Floor()
		if !mid.GreaterThan(lo) || !mid.LessThan(hi) {
			converged = true
			break
		}
		result.Iterations++

		oldTax := s.oldTaxWith(in, mid)
		if oldTax.LessThanOrEqual(est.New.TotalTax) {
			hi, oldAtHi = mid, oldTax
		} else {
			lo = mid
		}
	}

	result.Success = converged
	result.RequiredDeductions = hi
	result.AdditionalDeductions = hi.Sub(est.TotalDeductions)
	result.OldTaxAtBreakEven = oldAtHi
	if converged {
		result.ConvergenceInfo = fmt.Sprintf("converged after %d iterations", result.Iterations)
	} else {
		result.ConvergenceInfo = fmt.Sprintf("stopped after %d iterations with a %s rupee window",
			result.Iterations, hi.Sub(lo).StringFixed(0))
	}
	return result, nil
}

// oldTaxWith is the old regime total tax when deductions add up to total;
// the extra amount lands in Others.
func (s *Solver) oldTaxWith(in domain.TaxInput, total decimal.Decimal) decimal.Decimal {
	extra := total.Sub(in.Deductions.Total())
	in.Deductions.Others = in.Deductions.Others.Add(extra)
	in.RegimePreference = domain.PreferOld
	return s.Estimator.Estimate(in).Old.TotalTax
}
