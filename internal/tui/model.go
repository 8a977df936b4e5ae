package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/expenso/itr/internal/calculation"
	"github.com/expenso/itr/internal/compare"
	"github.com/expenso/itr/internal/config"
	"github.com/expenso/itr/internal/domain"
	"github.com/expenso/itr/internal/log"
	"github.com/expenso/itr/internal/store"
	"github.com/expenso/itr/internal/tui/scenes"
)

// storeTimeout bounds every store call made from the UI
const storeTimeout = 5 * time.Second

// Options configures a Model
type Options struct {
	// InputPath pre-fills the form when set
	InputPath string
	// Repo enables saving and history; nil disables both
	Repo   store.Repository
	Logger *log.Logger
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	inputPath string
	repo      store.Repository
	logger    *log.Logger

	estimator     *calculation.Estimator
	compareEngine *compare.CompareEngine

	// Current estimate
	estimate   *domain.Estimate
	comparison *compare.ComparisonSet

	formModel    *scenes.FormModel
	resultsModel *scenes.ResultsModel
	compareModel *scenes.CompareModel
	historyModel *scenes.HistoryModel

	// One-line feedback shown above the status bar
	status string

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	estimator := calculation.NewEstimator()

	return Model{
		currentScene:  SceneForm,
		inputPath:     opts.InputPath,
		repo:          opts.Repo,
		logger:        logger.WithComponent("tui"),
		estimator:     estimator,
		compareEngine: compare.NewCompareEngine(estimator),
		formModel:     scenes.NewFormModel(),
		resultsModel:  scenes.NewResultsModel(),
		compareModel:  scenes.NewCompareModel(),
		historyModel:  scenes.NewHistoryModel(),
		width:         80,
		height:        24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.inputPath == "" {
		return nil
	}
	return loadInputCmd(m.inputPath)
}

// CurrentScene returns the scene on screen
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// Estimate returns the current estimate, if any
func (m Model) Estimate() *domain.Estimate {
	return m.estimate
}

// Err returns the error on display, if any
func (m Model) Err() error {
	return m.err
}

// Status returns the feedback line
func (m Model) Status() string {
	return m.status
}

// loadInputCmd reads an input file to pre-fill the form
func loadInputCmd(path string) tea.Cmd {
	return func() tea.Msg {
		input, warnings, err := config.NewInputParser().LoadWithWarnings(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return InputLoadedMsg{Path: path, Input: input, Warnings: warnings}
	}
}

// calculateCmd estimates input and, when both regimes are wanted, builds the
// full comparison including the break-even point
func calculateCmd(estimator *calculation.Estimator, engine *compare.CompareEngine, input domain.TaxInput, warnings []string) tea.Cmd {
	return func() tea.Msg {
		est := estimator.Estimate(input)
		msg := CalculationCompleteMsg{Estimate: &est, Warnings: warnings}
		if est.Comparison == nil {
			return msg
		}

		set, err := engine.Compare(context.Background(), input, "")
		if err != nil {
			msg.Err = err
			return msg
		}
		msg.Comparison = set
		return msg
	}
}

func saveCmd(repo store.Repository, label string, est domain.Estimate) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		saved, err := repo.Save(ctx, label, est)
		return SaveCompleteMsg{Saved: saved, Err: err}
	}
}

func loadHistoryCmd(repo store.Repository) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		summaries, err := repo.List(ctx, 0)
		return HistoryLoadedMsg{Summaries: summaries, Err: err}
	}
}

func loadSavedCmd(repo store.Repository, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		saved, err := repo.Get(ctx, id)
		return SavedEstimateLoadedMsg{Saved: saved, Err: err}
	}
}

func deleteSavedCmd(repo store.Repository, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return historyDeletedMsg{ID: id, Err: repo.Delete(ctx, id)}
	}
}

func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Estimate"
	case SceneResults:
		return "Results"
	case SceneCompare:
		return "Compare"
	case SceneHistory:
		return "History"
	case SceneSlabs:
		return "Slabs"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
