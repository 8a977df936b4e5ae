package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/expenso/itr/internal/output"
	"github.com/expenso/itr/internal/store"
	"github.com/expenso/itr/internal/tui/tuimsg"
	"github.com/expenso/itr/internal/tui/tuistyles"
)

var (
	keyUp     = key.NewBinding(key.WithKeys("up", "k"))
	keyDown   = key.NewBinding(key.WithKeys("down", "j"))
	keyOpen   = key.NewBinding(key.WithKeys("enter"))
	keyDelete = key.NewBinding(key.WithKeys("x", "delete"))
	keyTop    = key.NewBinding(key.WithKeys("g"))
	keyBottom = key.NewBinding(key.WithKeys("G"))
)

// HistoryModel browses saved estimates
type HistoryModel struct {
	summaries     []store.Summary
	selectedIndex int
	loaded        bool
	width         int
	height        int
}

// NewHistoryModel creates a new history scene model
func NewHistoryModel() *HistoryModel {
	return &HistoryModel{}
}

// SetSummaries replaces the list, keeping the selection in range
func (m *HistoryModel) SetSummaries(summaries []store.Summary) {
	m.summaries = summaries
	m.loaded = true
	if m.selectedIndex >= len(summaries) {
		m.selectedIndex = max(0, len(summaries)-1)
	}
}

// Selected returns the highlighted summary
func (m *HistoryModel) Selected() (store.Summary, bool) {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.summaries) {
		return store.Summary{}, false
	}
	return m.summaries[m.selectedIndex], true
}

// SetSize updates the scene dimensions
func (m *HistoryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the history scene
func (m *HistoryModel) Update(msg tea.Msg) (*HistoryModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, keyDown):
		if m.selectedIndex < len(m.summaries)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, keyTop):
		m.selectedIndex = 0
	case key.Matches(keyMsg, keyBottom):
		m.selectedIndex = max(0, len(m.summaries)-1)

	case key.Matches(keyMsg, keyOpen):
		if s, ok := m.Selected(); ok {
			return m, func() tea.Msg { return tuimsg.HistorySelectedMsg{ID: s.ID} }
		}
	case key.Matches(keyMsg, keyDelete):
		if s, ok := m.Selected(); ok {
			return m, func() tea.Msg { return tuimsg.HistoryDeleteRequestedMsg{ID: s.ID} }
		}
	}
	return m, nil
}

// View renders the history scene
func (m *HistoryModel) View() string {
	if !m.loaded {
		return "Loading saved estimates..."
	}
	if len(m.summaries) == 0 {
		return `No saved estimates.

Press s on the results screen to save one.

Press ESC to go back.`
	}

	list := m.renderList()
	s, _ := m.Selected()
	content := lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", renderSummaryDetails(s))
	return content + "\n\n" + "↑/k up • ↓/j down • enter open • x delete • g top • G bottom • ESC back"
}

func (m *HistoryModel) renderList() string {
	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render("Saved Estimates"))
	b.WriteString("\n\n")
	for i, s := range m.summaries {
		line := fmt.Sprintf("%s  %s", s.CreatedAt.Local().Format("2006-01-02"), s.Label)
		if i == m.selectedIndex {
			b.WriteString(tuistyles.SelectedItemStyle.Render("▸ " + line))
		} else {
			b.WriteString(tuistyles.UnselectedItemStyle.Render("  " + line))
		}
		if i < len(m.summaries)-1 {
			b.WriteString("\n")
		}
	}
	return tuistyles.BorderStyle.Width(44).Render(b.String())
}

func renderSummaryDetails(s store.Summary) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(tuistyles.MetricLabelStyle.Width(16).Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	b.WriteString(tuistyles.TitleStyle.Render(s.Label))
	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render(s.ID))
	b.WriteString("\n\n")
	line("Saved", s.CreatedAt.Local().Format("2006-01-02 15:04"))
	line("Age Group", s.AgeBracket.Label())
	line("Regime", s.Preference.Label())
	line("Total Income", output.FormatINR(s.TotalIncome))
	line("Old Regime Tax", nullAmount(s.OldTotalTax))
	line("New Regime Tax", nullAmount(s.NewTotalTax))
	if s.Better != "" {
		line("Better", fmt.Sprintf("%s (saves %s)", s.Better, nullAmount(s.Savings)))
	}
	b.WriteString("\n")
	b.WriteString(tuistyles.InfoStyle.Render("Press Enter to open this estimate"))

	return tuistyles.ActiveBorderStyle.Width(50).Render(b.String())
}

func nullAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return output.FormatINR(d.Decimal)
}
