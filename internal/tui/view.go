package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/expenso/itr/internal/output"
	"github.com/expenso/itr/internal/tui/scenes"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneForm:
		content = m.formModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHistory:
		content = m.historyModel.View()
	case SceneSlabs:
		content = m.renderSlabs()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	parts := []string{m.renderTitleBar(), content}
	if m.status != "" {
		parts = append(parts, InfoStyle.Render(m.status))
	}
	parts = append(parts, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Expenso - Income Tax Estimator")
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(m.currentScene.String()))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var shortcuts []string
	if m.currentScene == SceneForm {
		shortcuts = []string{
			formatShortcut("enter", "calculate"),
			formatShortcut("ctrl+r", "reset"),
			formatShortcut("ctrl+l", "history"),
			formatShortcut("ctrl+c", "quit"),
		}
		if m.estimate != nil {
			shortcuts = append(shortcuts, formatShortcut("esc", "results"))
		}
	} else {
		shortcuts = []string{
			formatShortcut("e", "edit"),
			formatShortcut("r", "results"),
			formatShortcut("c", "compare"),
			formatShortcut("h", "history"),
			formatShortcut("l", "slabs"),
			formatShortcut("?", "help"),
			formatShortcut("q", "quit"),
		}
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders the loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return m.renderApp(BorderStyle.Render("⠋ " + message))
}

// renderError renders an error message
func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
	)
	return m.renderApp(content)
}

func (m Model) renderSlabs() string {
	in, _ := m.formModel.Input()
	age := in.AgeBracket
	if m.estimate != nil {
		age = m.estimate.Input.AgeBracket
	}
	return scenes.RenderSlabs(age)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	helpText := `
Expenso - Income Tax Estimator

FORM:
  tab / ↓       Next field
  shift+tab / ↑ Previous field
  ← / →         Change age group or regime
  enter         Calculate
  ctrl+r        Reset the form
  ctrl+l        Saved estimates
  esc           Back to results

ELSEWHERE:
  e        Edit the form
  r        Results
  c        Regime comparison
  h        Saved estimates
  l        Slab tables
  s        Save the estimate (results)
  b        Slab breakdown (results)
  x        Delete (saved estimates)
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit
`
	return BorderStyle.Render(helpText + "\n" + SubtitleStyle.Render(output.Disclaimer))
}
