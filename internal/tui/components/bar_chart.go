package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/expenso/itr/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// Bar is one labelled value in a BarChart
type Bar struct {
	Label string
	Value decimal.Decimal
	Color lipgloss.TerminalColor
}

// BarChart draws horizontal bars scaled to the largest value
type BarChart struct {
	Title      string
	Bars       []Bar
	Width      int
	LabelWidth int
}

// NewBarChart creates an empty chart
func NewBarChart(title string) *BarChart {
	return &BarChart{
		Title:      title,
		Width:      36,
		LabelWidth: 16,
	}
}

// AddBar appends a bar
func (c *BarChart) AddBar(label string, value decimal.Decimal, color lipgloss.TerminalColor) *BarChart {
	c.Bars = append(c.Bars, Bar{Label: label, Value: value, Color: color})
	return c
}

// WithSize sets the bar area width and the label column width
func (c *BarChart) WithSize(width, labelWidth int) *BarChart {
	c.Width = width
	c.LabelWidth = labelWidth
	return c
}

// BarLength returns the number of cells bar i fills. Non-zero values always
// get at least one cell so they stay visible next to a much larger bar.
func (c *BarChart) BarLength(i int) int {
	peak := decimal.Zero
	for _, b := range c.Bars {
		if b.Value.GreaterThan(peak) {
			peak = b.Value
		}
	}
	v := c.Bars[i].Value
	if !peak.IsPositive() || !v.IsPositive() {
		return 0
	}
	n := int(v.Div(peak).Mul(decimal.NewFromInt(int64(c.Width))).Round(0).IntPart())
	if n < 1 {
		n = 1
	}
	return n
}

// Render returns the styled chart
func (c *BarChart) Render() string {
	if len(c.Bars) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(tuistyles.TableHeaderStyle.Render(c.Title))
		b.WriteString("\n")
	}

	labelStyle := tuistyles.MetricLabelStyle.Width(c.LabelWidth)
	for i, bar := range c.Bars {
		n := c.BarLength(i)
		color := bar.Color
		if color == nil {
			color = tuistyles.ColorPrimary
		}
		b.WriteString(labelStyle.Render(bar.Label))
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", n)))
		b.WriteString(strings.Repeat(" ", c.Width-n+1))
		b.WriteString(tuistyles.FormatCurrency(bar.Value))
		if i < len(c.Bars)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
