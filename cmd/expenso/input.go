package main

import (
	"fmt"
	"io"

	"github.com/expenso/itr/internal/config"
	"github.com/expenso/itr/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// amountFlags maps each amount flag to the input field it sets
var amountFlags = []struct {
	name  string
	usage string
	field func(*domain.TaxInput) *decimal.Decimal
}{
	{"salary", "Annual salary income", func(in *domain.TaxInput) *decimal.Decimal { return &in.Income.Salary }},
	{"business", "Annual business income", func(in *domain.TaxInput) *decimal.Decimal { return &in.Income.Business }},
	{"other", "Other annual income", func(in *domain.TaxInput) *decimal.Decimal { return &in.Income.Other }},
	{"80c", "Section 80C investments", func(in *domain.TaxInput) *decimal.Decimal { return &in.Deductions.Section80C }},
	{"80d", "Section 80D health insurance premium", func(in *domain.TaxInput) *decimal.Decimal { return &in.Deductions.Section80D }},
	{"hra", "HRA exemption", func(in *domain.TaxInput) *decimal.Decimal { return &in.Deductions.HRA }},
	{"other-deductions", "Other deductions", func(in *domain.TaxInput) *decimal.Decimal { return &in.Deductions.Others }},
	{"capital-gains", "Capital gains (reported, not taxed)", func(in *domain.TaxInput) *decimal.Decimal { return &in.CapitalGains }},
}

// addInputFlags registers the tax form flags on cmd
func addInputFlags(cmd *cobra.Command) {
	for _, f := range amountFlags {
		cmd.Flags().String(f.name, "", f.usage)
	}
	cmd.Flags().String("age", "", "Age bracket (general, senior, super_senior)")
	cmd.Flags().String("regime", "", "Regime preference (both, old, new)")
}

// loadInput reads the optional input file, then applies any flags that were
// set on top of it. Coerced amounts are reported as warnings.
func loadInput(cmd *cobra.Command, args []string) (domain.TaxInput, []string, error) {
	var (
		input    domain.TaxInput
		warnings []string
	)

	if len(args) > 0 {
		loaded, w, err := config.NewInputParser().LoadWithWarnings(args[0])
		if err != nil {
			return input, nil, err
		}
		input, warnings = *loaded, w
	}

	for _, f := range amountFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		raw, _ := cmd.Flags().GetString(f.name)
		v, note := config.CoerceAmount(raw)
		if note != "" {
			warnings = append(warnings, fmt.Sprintf("--%s: %s", f.name, note))
		}
		*f.field(&input) = v
	}

	if cmd.Flags().Changed("age") {
		raw, _ := cmd.Flags().GetString("age")
		age, err := domain.ParseAgeBracket(raw)
		if err != nil {
			return input, nil, fmt.Errorf("--age: %w", err)
		}
		input.AgeBracket = age
	}
	if cmd.Flags().Changed("regime") {
		raw, _ := cmd.Flags().GetString("regime")
		pref, err := domain.ParseRegimePreference(raw)
		if err != nil {
			return input, nil, fmt.Errorf("--regime: %w", err)
		}
		input.RegimePreference = pref
	}

	return input, warnings, nil
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
}
