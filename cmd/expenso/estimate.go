package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/expenso/itr/internal/breakeven"
	"github.com/expenso/itr/internal/calculation"
	"github.com/expenso/itr/internal/compare"
	"github.com/expenso/itr/internal/config"
	"github.com/expenso/itr/internal/log"
	"github.com/expenso/itr/internal/output"
	"github.com/spf13/cobra"
)

// newEstimator returns an estimator that traces slab walking when --debug is set
func newEstimator(cmd *cobra.Command) *calculation.Estimator {
	estimator := calculation.NewEstimator()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		cfg := log.DefaultConfig()
		cfg.Level = slog.LevelDebug
		cfg.Component = "calc"
		cfg.Output = cmd.ErrOrStderr()
		estimator.SetLogger(log.CalcLogger{L: log.New(cfg)})
	}
	return estimator
}

var estimateCmd = &cobra.Command{
	Use:   "estimate [input-file]",
	Short: "Estimate income tax under the old and new regimes",
	Long: `Estimate income tax from a YAML input file, from flags, or both
(flags override the file).

Examples:
  expenso estimate --salary 1200000 --80c 150000 --age senior
  expenso estimate income.yaml --regime new --format json
  expenso estimate income.yaml --format html --output report.html --save=FY24`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, warnings, err := loadInput(cmd, args)
		if err != nil {
			return err
		}
		printWarnings(cmd.ErrOrStderr(), warnings)

		est := newEstimator(cmd).Estimate(input)
		logger.Debug("estimate computed",
			"total_income", est.TotalIncome.String(),
			"regime", input.RegimePreference.String())

		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = settings.Format
		}
		f := output.GetFormatterByName(format)
		if f == nil {
			return fmt.Errorf("unknown output format: %s (valid: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
		}

		if path, _ := cmd.Flags().GetString("output"); path != "" {
			if path == "auto" {
				path = ""
			}
			written, err := output.WriteFormatted(f, &est, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", written)
		} else {
			data, err := f.Format(&est)
			if err != nil {
				return fmt.Errorf("%s formatter: %w", f.Name(), err)
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
		}

		if cmd.Flags().Changed("save") {
			label, _ := cmd.Flags().GetString("save")
			repo, err := openStore()
			if err != nil {
				return err
			}
			defer repo.Close()

			saved, err := repo.Save(commandContext(cmd), label, est)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved as %s (%s)\n", saved.ID, saved.Label)
		}
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare the old and new regimes side by side",
	Long: `Compare both regimes for the same income and deductions, whatever the
regime preference, and show how much more deduction the old regime would need
to catch up when the new regime is cheaper.

Examples:
  expenso compare income.yaml
  expenso compare --salary 900000 --80c 150000 --format csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, warnings, err := loadInput(cmd, args)
		if err != nil {
			return err
		}
		printWarnings(cmd.ErrOrStderr(), warnings)

		inputPath := ""
		if len(args) > 0 {
			inputPath = args[0]
		}

		compSet, err := compare.NewCompareEngine(newEstimator(cmd)).Compare(commandContext(cmd), input, inputPath)
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		out := cmd.OutOrStdout()
		switch strings.ToLower(outputFormat) {
		case "csv":
			formatter := &compare.CSVFormatter{}
			s, err := formatter.Format(compSet)
			if err != nil {
				return fmt.Errorf("failed to format CSV: %w", err)
			}
			fmt.Fprint(out, s)

		case "json":
			formatter := &compare.JSONFormatter{Pretty: true}
			s, err := formatter.Format(compSet)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprintln(out, s)

		case "compact":
			fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(compSet))

		case "table", "console", "":
			fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))

		default:
			return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
		}
		return nil
	},
}

var breakEvenCmd = &cobra.Command{
	Use:   "break-even [input-file]",
	Short: "Find the deductions at which the old regime matches the new regime",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, warnings, err := loadInput(cmd, args)
		if err != nil {
			return err
		}
		printWarnings(cmd.ErrOrStderr(), warnings)

		maxIter, _ := cmd.Flags().GetInt("max-iterations")
		solver := breakeven.NewDefaultSolver(newEstimator(cmd))
		result, err := solver.Solve(commandContext(cmd), breakeven.Request{Input: input, MaxIterations: maxIter})
		if err != nil {
			return err
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(outputFormat) {
		case "json":
			s, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
		case "table", "console", "":
			fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
		default:
			return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a tax input file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		parser := config.NewInputParser()
		_, warnings, err := parser.LoadWithWarnings(inputFile)
		if err != nil {
			return err
		}
		printWarnings(cmd.ErrOrStderr(), warnings)

		fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid\n", inputFile)
		return nil
	},
}

var slabsCmd = &cobra.Command{
	Use:   "slabs",
	Short: "Print the slab tables and the key differences between regimes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if err := output.GenerateSlabReport(out, calculation.AllTables()); err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-16s %-16s %-16s\n", "Feature", "Old Regime", "New Regime")
		for _, d := range output.RegimeDifferences() {
			fmt.Fprintf(out, "%-16s %-16s %-16s\n", d.Feature, d.Old, d.New)
		}
		return nil
	},
}

// commandContext returns the command's context, or Background outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	addInputFlags(estimateCmd)
	estimateCmd.Flags().StringP("format", "f", "", "Output format (console, console-verbose, json, csv, html); defaults to EXPENSO_FORMAT")
	estimateCmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout (\"auto\" for a timestamped name)")
	estimateCmd.Flags().Bool("debug", false, "Trace slab-by-slab calculations to stderr")
	estimateCmd.Flags().String("save", "", "Save the estimate to history, as --save or --save=LABEL")
	estimateCmd.Flags().Lookup("save").NoOptDefVal = " "

	addInputFlags(compareCmd)
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().Bool("debug", false, "Trace slab-by-slab calculations to stderr")

	addInputFlags(breakEvenCmd)
	breakEvenCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	breakEvenCmd.Flags().Int("max-iterations", 0, "Maximum solver iterations (0 for the default)")
	breakEvenCmd.Flags().Bool("debug", false, "Trace slab-by-slab calculations to stderr")
}
