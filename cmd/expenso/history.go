package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/expenso/itr/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, show and delete saved estimates",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved estimates, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openStore()
		if err != nil {
			return err
		}
		defer repo.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		summaries, err := repo.List(commandContext(cmd), limit)
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved estimates")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSAVED\tLABEL\tINCOME\tOLD\tNEW\tBETTER")
		for _, s := range summaries {
			better := string(s.Better)
			if better == "" {
				better = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				s.ID[:8],
				s.CreatedAt.Local().Format("2006-01-02 15:04"),
				s.Label,
				output.FormatINR(s.TotalIncome),
				nullINR(s.OldTotalTax),
				nullINR(s.NewTotalTax),
				better)
		}
		return tw.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a saved estimate (full ID or unique prefix)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openStore()
		if err != nil {
			return err
		}
		defer repo.Close()

		saved, err := repo.Get(commandContext(cmd), args[0])
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = settings.Format
		}
		out := cmd.OutOrStdout()
		if output.NormalizeFormatName(format) == "console" {
			fmt.Fprintf(out, "%s  %s  (saved %s)\n\n", saved.ID, saved.Label, saved.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return output.GenerateReport(out, &saved.Estimate, format)
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a saved estimate (full ID or unique prefix)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openStore()
		if err != nil {
			return err
		}
		defer repo.Close()

		if err := repo.Delete(commandContext(cmd), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", strings.TrimSpace(args[0]))
		return nil
	},
}

func nullINR(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return output.FormatINR(d.Decimal)
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Maximum number of estimates to list (0 for all)")
	historyShowCmd.Flags().StringP("format", "f", "", "Output format (console, console-verbose, json, csv, html)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}
