package transform

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tr, err := registry.ParseTransformSpec("add_deduction:section=80C,amount=1,50,000")
	if err != nil {
		t.Fatalf("ParseTransformSpec failed: %v", err)
	}
	add, ok := tr.(*AddDeduction)
	if !ok {
		t.Fatalf("Expected *AddDeduction, got %T", tr)
	}
	if add.Section != Section80C || !add.Amount.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("Unexpected transform: %+v", add)
	}
}

func TestParseTransformSpec_Variants(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec     string
		wantName string
		wantErr  string
	}{
		{"set_deduction:section=hra,amount=0", "set_deduction", ""},
		{"max_section:section=80d", "max_section", ""},
		{"set_income:source=business,amount=₹4,00,000", "set_income", ""},
		{"raise_income:percent=15%", "raise_income", ""},
		{"set_age:bracket=super_senior", "set_age", ""},
		{"max_section", "", "requires 'section'"},
		{"postpone:x=1", "", "unknown transform"},
		{"add_deduction:section=80c,amount=lots", "", "invalid amount"},
		{"add_deduction:section", "", "expected 'key=value'"},
		{"set_age:bracket=teen", "", "invalid age bracket"},
		{"add_deduction:section=80c,amount=0.5e-4000000", "", "decimal places"},
		{"set_income:source=other,amount=1e400", "", "integer digits"},
		{"raise_income:percent=1e-4000000", "", "invalid percent"},
		{":section=80c", "", "invalid transform spec"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tr, err := registry.ParseTransformSpec(tt.spec)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tr.Name() != tt.wantName {
				t.Errorf("Expected %s, got %s", tt.wantName, tr.Name())
			}
		})
	}
}

func TestRegistryList(t *testing.T) {
	names := NewTransformRegistry().List()
	want := []string{"add_deduction", "max_section", "raise_income", "set_age", "set_deduction", "set_income"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Expected %v, got %v", want, names)
	}
}

func TestBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	for _, name := range []string{"max_80c", "max_80d", "max_deductions", "raise_10pct", "no_deductions", "senior"} {
		tmpl, ok := registry.Get(name)
		if !ok {
			t.Errorf("Template %s not registered", name)
			continue
		}
		if len(tmpl.Transforms) == 0 {
			t.Errorf("Template %s has no transforms", name)
		}
	}

	if _, ok := registry.Get("MAX_80C"); !ok {
		t.Error("Expected case-insensitive lookup")
	}
}

func TestApplyTemplate(t *testing.T) {
	tmpl, _ := CreateBuiltInTemplates().Get("max_deductions")

	out, err := ApplyTemplate(createTestInput(), tmpl)
	if err != nil {
		t.Fatalf("ApplyTemplate failed: %v", err)
	}
	if !out.Deductions.Section80C.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("Expected 80C 150000, got %s", out.Deductions.Section80C)
	}
	if !out.Deductions.Section80D.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("Expected 80D 25000, got %s", out.Deductions.Section80D)
	}
}

func TestParseTemplateList(t *testing.T) {
	got := ParseTemplateList(" max_80c, ,senior ")
	if len(got) != 2 || got[0] != "max_80c" || got[1] != "senior" {
		t.Errorf("Unexpected list: %v", got)
	}
	if ParseTemplateList("") != nil {
		t.Error("Expected nil for empty list")
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())
	if !strings.Contains(help, "Available Templates:") || !strings.Contains(help, "max_80c") {
		t.Errorf("Unexpected help text:\n%s", help)
	}
	if GetTemplateHelp(NewTemplateRegistry()) != "No templates registered" {
		t.Error("Expected empty registry message")
	}
}
