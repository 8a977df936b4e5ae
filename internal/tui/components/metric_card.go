package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/expenso/itr/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard displays a single rupee figure with a label
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Highlight   bool
	Width       int
}

// Trend is a change against another figure. Favourable means the change
// lowers the tax bill.
type Trend struct {
	Favourable bool
	Change     string
}

// NewMetricCard creates a card for a pre-formatted value
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 24,
	}
}

// NewAmountCard creates a card for a rupee amount
func NewAmountCard(label string, amount decimal.Decimal) *MetricCard {
	return NewMetricCard(label, tuistyles.FormatCurrency(amount))
}

// WithTrend adds a change indicator
func (m *MetricCard) WithTrend(favourable bool, change string) *MetricCard {
	m.Trend = &Trend{Favourable: favourable, Change: change}
	return m
}

// WithDescription adds a subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithHighlight draws the card border in the success colour
func (m *MetricCard) WithHighlight(on bool) *MetricCard {
	m.Highlight = on
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled card
func (m *MetricCard) Render() string {
	label := tuistyles.MetricLabelStyle.Render(m.Label)
	value := tuistyles.MetricValueStyle.Render(m.Value)

	var trend string
	if m.Trend != nil {
		arrow := tuistyles.TrendIndicator(m.Trend.Favourable)
		trend = "\n" + tuistyles.MetricTrendStyle(m.Trend.Favourable).Render(fmt.Sprintf("%s %s", arrow, m.Trend.Change))
	}

	var desc string
	if m.Description != "" {
		desc = "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	border := tuistyles.ColorBorder
	if m.Highlight {
		border = tuistyles.ColorSuccess
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(m.Width)

	return cardStyle.Render(label + "\n" + value + trend + desc)
}

// RenderCompact returns a single-line version without a border
func (m *MetricCard) RenderCompact() string {
	out := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Trend != nil {
		arrow := tuistyles.TrendIndicator(m.Trend.Favourable)
		out += " " + tuistyles.MetricTrendStyle(m.Trend.Favourable).Render(fmt.Sprintf("%s %s", arrow, m.Trend.Change))
	}
	return out
}

// MetricGrid lays cards out in rows of the given number of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
