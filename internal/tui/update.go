package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/expenso/itr/internal/compare"
)

var errNoStore = errors.New("saved estimates are unavailable: no estimate store is open")

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Standard tea.Msg types
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.formModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		m.historyModel.SetSize(msg.Width, msg.Height)
		return m, nil

	// Custom messages
	case NavigateMsg:
		return m.navigate(msg.Scene)

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case InputLoadedMsg:
		m.formModel.SetInput(*msg.Input)
		m.status = "Loaded " + msg.Path
		if len(msg.Warnings) > 0 {
			m.status += " (" + strings.Join(msg.Warnings, "; ") + ")"
		}
		return m, nil

	case CalculateRequestedMsg:
		m.loading = true
		m.loadingMessage = "Calculating..."
		return m, calculateCmd(m.estimator, m.compareEngine, msg.Input, msg.Warnings)

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.estimate = msg.Estimate
		m.comparison = msg.Comparison
		m.resultsModel.SetEstimate(msg.Estimate, "", msg.Warnings)
		m.compareModel.SetComparison(msg.Comparison)
		m.status = ""
		m.logger.Debug("estimate computed", "total_income", msg.Estimate.TotalIncome.String())
		return m.navigate(SceneResults)

	case SaveRequestedMsg:
		if m.estimate == nil {
			return m, nil
		}
		if m.repo == nil {
			m.err = errNoStore
			return m, nil
		}
		return m, saveCmd(m.repo, msg.Label, *m.estimate)

	case SaveCompleteMsg:
		if msg.Err != nil {
			m.err = fmt.Errorf("save estimate: %w", msg.Err)
			return m, nil
		}
		m.status = fmt.Sprintf("Saved as %s (%s)", shortID(msg.Saved.ID), msg.Saved.Label)
		m.logger.Info("estimate saved", "id", msg.Saved.ID)
		return m, nil

	case HistoryLoadedMsg:
		if msg.Err != nil {
			m.err = fmt.Errorf("list saved estimates: %w", msg.Err)
			return m, nil
		}
		m.historyModel.SetSummaries(msg.Summaries)
		return m, nil

	case HistorySelectedMsg:
		if m.repo == nil {
			m.err = errNoStore
			return m, nil
		}
		return m, loadSavedCmd(m.repo, msg.ID)

	case SavedEstimateLoadedMsg:
		if msg.Err != nil {
			m.err = fmt.Errorf("open saved estimate: %w", msg.Err)
			return m, nil
		}
		est := msg.Saved.Estimate
		// single-regime estimates have no comparison
		set, _ := compare.Build(&est)
		m.estimate = &est
		m.comparison = set
		m.formModel.SetInput(est.Input)
		m.resultsModel.SetEstimate(&est, msg.Saved.Label, nil)
		m.compareModel.SetComparison(set)
		return m.navigate(SceneResults)

	case HistoryDeleteRequestedMsg:
		if m.repo == nil {
			m.err = errNoStore
			return m, nil
		}
		return m, deleteSavedCmd(m.repo, msg.ID)

	case historyDeletedMsg:
		if msg.Err != nil {
			m.err = fmt.Errorf("delete saved estimate: %w", msg.Err)
			return m, nil
		}
		m.status = "Deleted " + shortID(msg.ID)
		return m, loadHistoryCmd(m.repo)
	}

	// Delegate to scene-specific update handlers
	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	// The form takes printable keys, so only control keys navigate away from it
	if m.currentScene == SceneForm {
		switch msg.String() {
		case "ctrl+l":
			return m.navigate(SceneHistory)
		case "esc":
			if m.estimate != nil {
				return m.navigate(SceneResults)
			}
			return m, nil
		}
		return m.updateCurrentScene(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		return m.navigate(SceneHelp)
	case "esc":
		if m.previousScene != m.currentScene {
			return m.navigate(m.previousScene)
		}
		return m.navigate(SceneForm)
	case "e":
		return m.navigate(SceneForm)
	case "r":
		return m.navigate(SceneResults)
	case "c":
		return m.navigate(SceneCompare)
	case "h":
		return m.navigate(SceneHistory)
	case "l":
		return m.navigate(SceneSlabs)
	}

	// Let the current scene handle other keys
	return m.updateCurrentScene(msg)
}

// navigate switches scene. Entering history reloads the saved list.
func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	if scene == SceneHistory && m.repo == nil {
		m.err = errNoStore
		return m, nil
	}
	if scene != m.currentScene {
		m.previousScene = m.currentScene
		m.currentScene = scene
	}
	if scene == SceneHistory {
		return m, loadHistoryCmd(m.repo)
	}
	return m, nil
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneForm:
		m.formModel, cmd = m.formModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneHistory:
		m.historyModel, cmd = m.historyModel.Update(msg)
	}
	return m, cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
