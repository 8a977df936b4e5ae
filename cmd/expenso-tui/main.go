package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/expenso/itr/internal/config"
	"github.com/expenso/itr/internal/log"
	"github.com/expenso/itr/internal/store"
	"github.com/expenso/itr/internal/tui"
)

func main() {
	// Optional input file to pre-fill the form
	inputPath := ""
	if len(os.Args) > 2 {
		fmt.Println("Usage: expenso-tui [input-file]")
		os.Exit(1)
	}
	if len(os.Args) == 2 {
		inputPath = os.Args[1]
		if _, err := os.Stat(inputPath); os.IsNotExist(err) {
			fmt.Printf("Error: input file not found: %s\n", inputPath)
			os.Exit(1)
		}
	}

	settings, err := config.LoadSettings()
	if err == nil {
		err = settings.Validate()
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// The screen belongs to the program, so logs only go to a file at debug level
	cfg := log.DefaultConfig()
	cfg.Output = io.Discard
	if level, _ := log.ParseLevel(settings.LogLevel); settings.LogLevel == "debug" {
		f, err := tea.LogToFile("expenso-tui.log", "")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		cfg.Output = f
		cfg.Level = level
	}
	logger := log.New(cfg)

	opts := tui.Options{InputPath: inputPath, Logger: logger}
	repo, err := store.NewSQLiteRepository(settings.DBPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: saved estimates disabled: %v\n", err)
	} else {
		defer repo.Close()
		opts.Repo = repo
	}

	p := tea.NewProgram(
		tui.NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
