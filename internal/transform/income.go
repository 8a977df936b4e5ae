package transform

import (
	"fmt"
	"strings"

	"github.com/expenso/itr/internal/domain"
	"github.com/expenso/itr/internal/output"
	"github.com/shopspring/decimal"
)

// Income sources a transform can target
const (
	SourceSalary   = "salary"
	SourceBusiness = "business"
	SourceOther    = "other"
)

func incomeField(in *domain.TaxInput, source string) (*decimal.Decimal, error) {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case SourceSalary:
		return &in.Income.Salary, nil
	case SourceBusiness:
		return &in.Income.Business, nil
	case SourceOther:
		return &in.Income.Other, nil
	}
	return nil, fmt.Errorf("unknown income source %q (valid: salary, business, other)", source)
}

// SetIncome replaces one income component
type SetIncome struct {
	Source string
	Amount decimal.Decimal
}

func (t *SetIncome) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	out := base
	field, err := incomeField(&out, t.Source)
	if err != nil {
		return base, err
	}
	*field = t.Amount
	return out, nil
}

func (t *SetIncome) Name() string { return "set_income" }

func (t *SetIncome) Description() string {
	return fmt.Sprintf("Set %s income to %s", t.Source, output.FormatINR(t.Amount))
}

func (t *SetIncome) Validate(base domain.TaxInput) error {
	if _, err := incomeField(&base, t.Source); err != nil {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: "bad source", Err: err}
	}
	if t.Amount.IsNegative() {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: t.Amount.String(), Err: errNegativeAmount}
	}
	return nil
}

// RaiseIncome changes one income component by a percentage; negative
// percentages model a pay cut
type RaiseIncome struct {
	Source  string
	Percent decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

func (t *RaiseIncome) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	out := base
	field, err := incomeField(&out, t.Source)
	if err != nil {
		return base, err
	}
	factor := hundred.Add(t.Percent).Div(hundred)
	*field = field.Mul(factor)
	return out, nil
}

func (t *RaiseIncome) Name() string { return "raise_income" }

func (t *RaiseIncome) Description() string {
	if t.Percent.IsNegative() {
		return fmt.Sprintf("Cut %s income by %s", t.Source, output.FormatPercent(t.Percent.Neg()))
	}
	return fmt.Sprintf("Raise %s income by %s", t.Source, output.FormatPercent(t.Percent))
}

func (t *RaiseIncome) Validate(base domain.TaxInput) error {
	if _, err := incomeField(&base, t.Source); err != nil {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: "bad source", Err: err}
	}
	if t.Percent.LessThan(hundred.Neg()) {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: fmt.Sprintf("percent %s is below -100", t.Percent)}
	}
	return nil
}

// SetAge changes the age bracket
type SetAge struct {
	Bracket domain.AgeBracket
}

func (t *SetAge) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	out := base
	out.AgeBracket = t.Bracket
	return out, nil
}

func (t *SetAge) Name() string { return "set_age" }

func (t *SetAge) Description() string {
	return "Treat the taxpayer as " + t.Bracket.Label()
}

func (t *SetAge) Validate(base domain.TaxInput) error {
	if t.Bracket < domain.AgeGeneral || t.Bracket > domain.AgeSuperSenior {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: "bad bracket", Err: domain.ErrInvalidAgeBracket}
	}
	return nil
}
