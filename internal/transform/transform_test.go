package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/expenso/itr/internal/calculation"
	"github.com/expenso/itr/internal/domain"
	"github.com/shopspring/decimal"
)

func createTestInput() domain.TaxInput {
	return domain.TaxInput{
		Income: domain.Income{
			Salary: decimal.NewFromInt(1200000),
			Other:  decimal.NewFromInt(50000),
		},
		Deductions: domain.Deductions{
			Section80C: decimal.NewFromInt(100000),
			Section80D: decimal.NewFromInt(10000),
			HRA:        decimal.NewFromInt(120000),
		},
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestInput()

	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}
	if !result.Income.Salary.Equal(base.Income.Salary) {
		t.Errorf("Expected salary unchanged, got %s", result.Income.Salary)
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(createTestInput(), []InputTransform{nil})
	if err == nil || !strings.Contains(err.Error(), "index 0 is nil") {
		t.Errorf("Expected nil transform error, got %v", err)
	}
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := createTestInput()
	transforms := []InputTransform{
		&AddDeduction{Section: Section80C, Amount: decimal.NewFromInt(30000)},
		&AddDeduction{Section: Section80C, Amount: decimal.NewFromInt(20000)},
		&RaiseIncome{Source: SourceSalary, Percent: decimal.NewFromInt(10)},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("ApplyTransforms failed: %v", err)
	}

	if want := decimal.NewFromInt(150000); !result.Deductions.Section80C.Equal(want) {
		t.Errorf("Expected 80C %s, got %s", want, result.Deductions.Section80C)
	}
	if want := decimal.NewFromInt(1320000); !result.Income.Salary.Equal(want) {
		t.Errorf("Expected salary %s, got %s", want, result.Income.Salary)
	}

	// base is untouched
	if !base.Deductions.Section80C.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("Base input was modified: 80C = %s", base.Deductions.Section80C)
	}
}

func TestApplyTransforms_ValidationStopsChain(t *testing.T) {
	base := createTestInput()
	transforms := []InputTransform{
		&SetDeduction{Section: SectionHRA, Amount: decimal.Zero},
		&SetDeduction{Section: "80g", Amount: decimal.NewFromInt(1)},
	}

	result, err := ApplyTransforms(base, transforms)
	if err == nil {
		t.Fatal("Expected validation error")
	}
	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("Expected TransformError in chain, got %T", err)
	}
	if te.TransformName != "set_deduction" {
		t.Errorf("Expected set_deduction, got %s", te.TransformName)
	}
	if !result.Deductions.HRA.Equal(base.Deductions.HRA) {
		t.Error("Expected base returned on failure")
	}
}

func TestSetDeduction(t *testing.T) {
	tests := []struct {
		section string
		get     func(domain.TaxInput) decimal.Decimal
	}{
		{Section80C, func(in domain.TaxInput) decimal.Decimal { return in.Deductions.Section80C }},
		{Section80D, func(in domain.TaxInput) decimal.Decimal { return in.Deductions.Section80D }},
		{SectionHRA, func(in domain.TaxInput) decimal.Decimal { return in.Deductions.HRA }},
		{"OTHERS", func(in domain.TaxInput) decimal.Decimal { return in.Deductions.Others }},
	}

	for _, tt := range tests {
		t.Run(tt.section, func(t *testing.T) {
			tr := &SetDeduction{Section: tt.section, Amount: decimal.NewFromInt(42)}
			if err := tr.Validate(createTestInput()); err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			out, err := tr.Apply(createTestInput())
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if got := tt.get(out); !got.Equal(decimal.NewFromInt(42)) {
				t.Errorf("Expected 42, got %s", got)
			}
		})
	}
}

func TestSetDeduction_RejectsNegative(t *testing.T) {
	tr := &SetDeduction{Section: Section80C, Amount: decimal.NewFromInt(-1)}
	err := tr.Validate(createTestInput())
	if !errors.Is(err, errNegativeAmount) {
		t.Errorf("Expected negative amount error, got %v", err)
	}
}

func TestMaxSection(t *testing.T) {
	rules := calculation.DefaultRules()
	base := createTestInput()

	out, err := (&MaxSection{Section: Section80C, Rules: rules}).Apply(base)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !out.Deductions.Section80C.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("Expected 80C at 150000, got %s", out.Deductions.Section80C)
	}

	out, _ = (&MaxSection{Section: Section80D, Rules: rules}).Apply(base)
	if !out.Deductions.Section80D.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("Expected 80D at 25000, got %s", out.Deductions.Section80D)
	}

	base.AgeBracket = domain.AgeSuperSenior
	out, _ = (&MaxSection{Section: Section80D, Rules: rules}).Apply(base)
	if !out.Deductions.Section80D.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("Expected senior 80D at 50000, got %s", out.Deductions.Section80D)
	}
}

func TestMaxSection_KeepsHigherClaim(t *testing.T) {
	base := createTestInput()
	base.Deductions.Section80C = decimal.NewFromInt(200000)

	out, err := (&MaxSection{Section: Section80C, Rules: calculation.DefaultRules()}).Apply(base)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !out.Deductions.Section80C.Equal(decimal.NewFromInt(200000)) {
		t.Errorf("Expected claim left at 200000, got %s", out.Deductions.Section80C)
	}
}

func TestMaxSection_NoCeiling(t *testing.T) {
	err := (&MaxSection{Section: SectionHRA}).Validate(createTestInput())
	if err == nil {
		t.Error("Expected error for a section without a ceiling")
	}
}

func TestRaiseIncome(t *testing.T) {
	base := createTestInput()

	out, err := (&RaiseIncome{Source: SourceOther, Percent: decimal.NewFromInt(-20)}).Apply(base)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !out.Income.Other.Equal(decimal.NewFromInt(40000)) {
		t.Errorf("Expected 40000, got %s", out.Income.Other)
	}

	cut := &RaiseIncome{Source: SourceOther, Percent: decimal.NewFromInt(-20)}
	if got := cut.Description(); got != "Cut other income by 20%" {
		t.Errorf("Unexpected description: %s", got)
	}

	if err := (&RaiseIncome{Source: SourceSalary, Percent: decimal.NewFromInt(-101)}).Validate(base); err == nil {
		t.Error("Expected error for a cut beyond 100%")
	}
	if err := (&RaiseIncome{Source: "pension", Percent: decimal.NewFromInt(5)}).Validate(base); err == nil {
		t.Error("Expected error for unknown source")
	}
}

func TestSetIncome(t *testing.T) {
	out, err := (&SetIncome{Source: SourceBusiness, Amount: decimal.NewFromInt(300000)}).Apply(createTestInput())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !out.Income.Business.Equal(decimal.NewFromInt(300000)) {
		t.Errorf("Expected 300000, got %s", out.Income.Business)
	}
	if got := (&SetIncome{Source: SourceBusiness, Amount: decimal.NewFromInt(300000)}).Description(); got != "Set business income to ₹3,00,000" {
		t.Errorf("Unexpected description: %s", got)
	}
}

func TestSetAge(t *testing.T) {
	out, err := (&SetAge{Bracket: domain.AgeSenior}).Apply(createTestInput())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if out.AgeBracket != domain.AgeSenior {
		t.Errorf("Expected senior, got %s", out.AgeBracket)
	}
	if err := (&SetAge{Bracket: domain.AgeBracket(9)}).Validate(createTestInput()); !errors.Is(err, domain.ErrInvalidAgeBracket) {
		t.Errorf("Expected invalid bracket error, got %v", err)
	}
}

func TestTransformError(t *testing.T) {
	inner := errors.New("boom")
	err := &TransformError{TransformName: "x", Operation: "apply", Reason: "failed", Err: inner}
	if err.Error() != "transform x (apply): failed: boom" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("Expected Unwrap to expose the inner error")
	}

	bare := &TransformError{TransformName: "x", Operation: "validate", Reason: "bad"}
	if bare.Error() != "transform x (validate): bad" {
		t.Errorf("Unexpected message: %s", bare.Error())
	}
}
