package breakeven

import (
	"github.com/expenso/itr/internal/domain"
	"github.com/shopspring/decimal"
)

// Request defines the parameters for a deduction break-even search
type Request struct {
	Input         domain.TaxInput
	MaxIterations int             // Maximum solver iterations
	Tolerance     decimal.Decimal // Width in rupees at which the search stops
}

// Result contains the outcome of a break-even search
type Result struct {
	Request         Request `json:"-"`
	Success         bool    `json:"success"`
	Iterations      int     `json:"iterations"`
	ConvergenceInfo string  `json:"convergenceInfo"`

	TotalIncome          decimal.Decimal `json:"totalIncome"`
	CurrentDeductions    decimal.Decimal `json:"currentDeductions"`
	RequiredDeductions   decimal.Decimal `json:"requiredDeductions"`
	AdditionalDeductions decimal.Decimal `json:"additionalDeductions"`

	CurrentOldTax     decimal.Decimal `json:"currentOldTax"`
	OldTaxAtBreakEven decimal.Decimal `json:"oldTaxAtBreakEven"`
	NewTax            decimal.Decimal `json:"newTax"`
}

// AlreadyBetter reports whether the old regime needed no extra deductions
func (r *Result) AlreadyBetter() bool {
	return r.AdditionalDeductions.IsZero()
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance
	MaxIterations int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1), // one rupee
		MaxIterations: 64,
	}
}

// Validate checks the request's solver settings
func (r *Request) Validate() error {
	if r.MaxIterations < 0 {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "max_iterations cannot be negative",
		}
	}
	if r.Tolerance.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "tolerance cannot be negative",
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
