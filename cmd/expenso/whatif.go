package main

import (
	"fmt"
	"strings"

	"github.com/expenso/itr/internal/compare"
	"github.com/expenso/itr/internal/transform"
	"github.com/spf13/cobra"
)

var whatIfCmd = &cobra.Command{
	Use:   "what-if [input-file]",
	Short: "Show how a change to income or deductions moves your tax",
	Long: `Estimate both regimes for an input and for a modified copy of it, and
show the difference. Changes come from built-in templates, transform specs,
or both; templates are applied first.

Examples:
  expenso what-if income.yaml --with max_80c
  expenso what-if --salary 1200000 --with max_deductions,raise_10pct
  expenso what-if income.yaml --transform add_deduction:section=80d,amount=15000
  expenso what-if --list-templates`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		templates := transform.CreateBuiltInTemplates()
		if list, _ := cmd.Flags().GetBool("list-templates"); list {
			fmt.Fprint(out, transform.GetTemplateHelp(templates))
			fmt.Fprintf(out, "\nTransforms: %s\n", strings.Join(transform.NewTransformRegistry().List(), ", "))
			return nil
		}

		var transforms []transform.InputTransform

		with, _ := cmd.Flags().GetString("with")
		for _, name := range transform.ParseTemplateList(with) {
			tmpl, ok := templates.Get(name)
			if !ok {
				return fmt.Errorf("unknown template: %s (use --list-templates)", name)
			}
			transforms = append(transforms, tmpl.Transforms...)
		}

		specs, _ := cmd.Flags().GetStringArray("transform")
		registry := transform.NewTransformRegistry()
		for _, spec := range specs {
			t, err := registry.ParseTransformSpec(spec)
			if err != nil {
				return fmt.Errorf("--transform %s: %w", spec, err)
			}
			transforms = append(transforms, t)
		}

		if len(transforms) == 0 {
			return fmt.Errorf("--with or --transform is required (use --list-templates)")
		}

		input, warnings, err := loadInput(cmd, args)
		if err != nil {
			return err
		}
		printWarnings(cmd.ErrOrStderr(), warnings)

		result, err := compare.NewCompareEngine(newEstimator(cmd)).WhatIf(commandContext(cmd), input, transforms)
		if err != nil {
			return fmt.Errorf("what-if failed: %w", err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(outputFormat) {
		case "json":
			s, err := (&compare.JSONFormatter{Pretty: true}).FormatWhatIf(result)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprintln(out, s)
		case "table", "console", "":
			fmt.Fprint(out, (&compare.TableFormatter{}).FormatWhatIf(result))
		default:
			return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
		}
		return nil
	},
}

func init() {
	addInputFlags(whatIfCmd)
	whatIfCmd.Flags().String("with", "", "Comma-separated built-in templates to apply")
	whatIfCmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,... (repeatable)")
	whatIfCmd.Flags().Bool("list-templates", false, "List the built-in templates and transforms")
	whatIfCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	whatIfCmd.Flags().Bool("debug", false, "Trace slab-by-slab calculations to stderr")
}
