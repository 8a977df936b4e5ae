package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/expenso/itr/internal/config"
	"github.com/expenso/itr/internal/log"
	"github.com/expenso/itr/internal/store"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// set by the root command before any subcommand runs
var (
	settings *config.Settings
	logger   *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "expenso",
	Short: "Indian income tax estimator",
	Long: `Estimate income tax under the old and new regimes, compare them,
and keep a history of saved estimates.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		s, err := config.LoadSettings(envFile)
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			s.LogLevel = strings.ToLower(lvl)
		}
		if err := s.Validate(); err != nil {
			return err
		}

		level, err := log.ParseLevel(s.LogLevel)
		if err != nil {
			return err
		}
		cfg := log.DefaultConfig()
		cfg.Level = level
		cfg.Output = cmd.ErrOrStderr()

		settings = s
		logger = log.New(cfg)
		log.SetDefault(logger)
		return nil
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "expenso %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// openStore opens the saved-estimate database named by the settings
func openStore() (*store.SQLiteRepository, error) {
	repo, err := store.NewSQLiteRepository(settings.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("open estimate store %s: %w", settings.DBPath, err)
	}
	return repo, nil
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file to load settings from")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides EXPENSO_LOG_LEVEL")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(breakEvenCmd)
	rootCmd.AddCommand(whatIfCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(slabsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
