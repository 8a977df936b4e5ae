package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/expenso/itr/internal/calculation"
	"github.com/expenso/itr/internal/domain"
	"github.com/expenso/itr/internal/output"
	"github.com/expenso/itr/internal/tui/components"
	"github.com/expenso/itr/internal/tui/tuimsg"
	"github.com/expenso/itr/internal/tui/tuistyles"
)

var (
	keySave      = key.NewBinding(key.WithKeys("s"))
	keyBreakdown = key.NewBinding(key.WithKeys("b"))
)

// ResultsModel shows the outcome of an estimate
type ResultsModel struct {
	estimate      *domain.Estimate
	label         string
	warnings      []string
	showBreakdown bool
	width         int
	height        int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetEstimate replaces the estimate on display. label names a saved estimate
// and is empty for a fresh calculation.
func (m *ResultsModel) SetEstimate(est *domain.Estimate, label string, warnings []string) {
	m.estimate = est
	m.label = label
	m.warnings = warnings
}

// Estimate returns the estimate on display
func (m *ResultsModel) Estimate() *domain.Estimate {
	return m.estimate
}

// ShowingBreakdown reports whether the slab breakdown is visible
func (m *ResultsModel) ShowingBreakdown() bool {
	return m.showBreakdown
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.estimate == nil {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyBreakdown):
		m.showBreakdown = !m.showBreakdown
		return m, nil

	case key.Matches(keyMsg, keySave):
		label := m.label
		return m, func() tea.Msg {
			return tuimsg.SaveRequestedMsg{Label: label}
		}
	}
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.estimate == nil {
		return renderNoResultsState()
	}
	est := m.estimate

	sections := []string{renderResultsHeader(est, m.label)}

	if len(m.warnings) > 0 {
		var w []string
		for _, msg := range m.warnings {
			w = append(w, tuistyles.WarningStyle.Render("⚠ "+msg))
		}
		sections = append(sections, strings.Join(w, "\n"))
	}

	sections = append(sections, renderKeyMetrics(est))
	sections = append(sections, components.RegimeCards(est, m.cardWidth()))

	if callout := renderCallout(est); callout != "" {
		sections = append(sections, callout)
	}
	if tips := output.Suggestions(est.Old); len(tips) > 0 {
		var lines []string
		for _, t := range tips {
			lines = append(lines, tuistyles.InfoStyle.Render("💡 "+t))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if m.showBreakdown {
		sections = append(sections, renderBreakdown(est))
	}

	sections = append(sections, tuistyles.SubtitleStyle.Render(output.Disclaimer), renderResultsHelp())
	return lipgloss.JoinVertical(lipgloss.Left, joinWithGaps(sections)...)
}

func (m *ResultsModel) cardWidth() int {
	if m.width >= 100 {
		return (m.width - 8) / 2
	}
	return 42
}

func renderNoResultsState() string {
	return `No results to display.

Fill in the form and press Enter to calculate.

Press ESC to go back.`
}

func renderResultsHeader(est *domain.Estimate, label string) string {
	title := tuistyles.TitleStyle.Render("Income Tax Estimate")
	sub := est.Input.AgeBracket.Label() + " • " + est.Input.RegimePreference.Label()
	if label != "" {
		sub = label + " • " + sub
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(sub))
}

func renderKeyMetrics(est *domain.Estimate) string {
	cards := []*components.MetricCard{
		components.NewAmountCard("Total Income", est.TotalIncome),
		components.NewAmountCard("Total Deductions", est.TotalDeductions).WithDescription("Old regime only"),
	}
	for _, r := range est.Results() {
		card := components.NewAmountCard(r.Regime.Title(), r.TotalTax)
		if c := est.Comparison; c != nil && string(c.Better) == string(r.Regime) {
			card.WithHighlight(true).WithTrend(true, "saves "+output.FormatINR(c.Savings))
		}
		cards = append(cards, card)
	}
	return components.MetricGrid(cards, 4)
}

// renderCallout is the better-regime box, present only when both regimes ran
func renderCallout(est *domain.Estimate) string {
	if est.Comparison == nil {
		return ""
	}
	head := tuistyles.TableHighlightStyle.Render(output.BetterRegimeHeadline(est.Comparison))
	return tuistyles.CalloutStyle.Render(head + "\n" + output.SavingsMessage(est.Comparison))
}

func renderBreakdown(est *domain.Estimate) string {
	var charts []string
	for _, r := range est.Results() {
		table := calculation.NewRegime()
		color := tuistyles.ColorSecondary
		if r.Regime == domain.RegimeOld {
			table = calculation.OldRegimeTable(est.Input.AgeBracket)
			color = tuistyles.ColorAccent
		}
		chart := components.NewBarChart("Tax by slab: "+table.Name).WithSize(24, 30)
		for i, p := range calculation.BreakdownSlabs(r.TaxableIncome, table) {
			chart.AddBar(output.SlabRange(table, i)+" @"+output.FormatPercent(p.RatePercent), p.Tax, color)
		}
		charts = append(charts, tuistyles.BorderStyle.Render(chart.Render()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, charts...)
}

func renderResultsHelp() string {
	return "s save • b slab breakdown • c compare • e edit • h history • l slabs • ? help • q quit"
}

// joinWithGaps puts a blank line between sections
func joinWithGaps(sections []string) []string {
	out := make([]string, 0, len(sections)*2)
	for i, s := range sections {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, s)
	}
	return out
}
