package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expenso/itr/internal/calculation"
	"github.com/expenso/itr/internal/domain"
	"github.com/expenso/itr/internal/output"
	"github.com/shopspring/decimal"
)

// Deduction sections a transform can target
const (
	Section80C    = "80c"
	Section80D    = "80d"
	SectionHRA    = "hra"
	SectionOthers = "others"
)

var errNegativeAmount = errors.New("amount cannot be negative")

// deductionField returns the input field for a section name
func deductionField(in *domain.TaxInput, section string) (*decimal.Decimal, error) {
	switch strings.ToLower(strings.TrimSpace(section)) {
	case Section80C:
		return &in.Deductions.Section80C, nil
	case Section80D:
		return &in.Deductions.Section80D, nil
	case SectionHRA:
		return &in.Deductions.HRA, nil
	case SectionOthers, "other":
		return &in.Deductions.Others, nil
	}
	return nil, fmt.Errorf("unknown deduction section %q (valid: 80c, 80d, hra, others)", section)
}

// SetDeduction replaces the claimed amount under one section
type SetDeduction struct {
	Section string
	Amount  decimal.Decimal
}

func (t *SetDeduction) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	out := base
	field, err := deductionField(&out, t.Section)
	if err != nil {
		return base, err
	}
	*field = t.Amount
	return out, nil
}

func (t *SetDeduction) Name() string { return "set_deduction" }

func (t *SetDeduction) Description() string {
	return fmt.Sprintf("Set %s deduction to %s", strings.ToUpper(t.Section), output.FormatINR(t.Amount))
}

func (t *SetDeduction) Validate(base domain.TaxInput) error {
	if _, err := deductionField(&base, t.Section); err != nil {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: "bad section", Err: err}
	}
	if t.Amount.IsNegative() {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: t.Amount.String(), Err: errNegativeAmount}
	}
	return nil
}

// AddDeduction increases the claimed amount under one section
type AddDeduction struct {
	Section string
	Amount  decimal.Decimal
}

func (t *AddDeduction) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	out := base
	field, err := deductionField(&out, t.Section)
	if err != nil {
		return base, err
	}
	*field = field.Add(t.Amount)
	return out, nil
}

func (t *AddDeduction) Name() string { return "add_deduction" }

func (t *AddDeduction) Description() string {
	return fmt.Sprintf("Claim %s more under %s", output.FormatINR(t.Amount), strings.ToUpper(t.Section))
}

func (t *AddDeduction) Validate(base domain.TaxInput) error {
	if _, err := deductionField(&base, t.Section); err != nil {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: "bad section", Err: err}
	}
	if t.Amount.IsNegative() {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: t.Amount.String(), Err: errNegativeAmount}
	}
	return nil
}

// MaxSection raises 80C or 80D to its ceiling. The 80D ceiling depends on
// the age bracket of the input it is applied to.
type MaxSection struct {
	Section string
	Rules   calculation.Rules
}

// ceiling returns the section ceiling for in
func (t *MaxSection) ceiling(in domain.TaxInput) (decimal.Decimal, error) {
	switch strings.ToLower(t.Section) {
	case Section80C:
		return t.Rules.Section80CCeiling, nil
	case Section80D:
		if in.AgeBracket == domain.AgeGeneral {
			return t.Rules.Section80DCeiling, nil
		}
		return t.Rules.Section80DCeilingSenior, nil
	}
	return decimal.Zero, fmt.Errorf("section %q has no ceiling (valid: 80c, 80d)", t.Section)
}

func (t *MaxSection) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	ceiling, err := t.ceiling(base)
	if err != nil {
		return base, err
	}
	out := base
	field, _ := deductionField(&out, t.Section)
	*field = decimal.Max(*field, ceiling)
	return out, nil
}

func (t *MaxSection) Name() string { return "max_section" }

func (t *MaxSection) Description() string {
	return fmt.Sprintf("Claim the full %s ceiling", strings.ToUpper(t.Section))
}

func (t *MaxSection) Validate(base domain.TaxInput) error {
	if _, err := t.ceiling(base); err != nil {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: "bad section", Err: err}
	}
	return nil
}
