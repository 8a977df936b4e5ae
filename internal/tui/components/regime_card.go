package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/expenso/itr/internal/domain"
	"github.com/expenso/itr/internal/output"
	"github.com/expenso/itr/internal/tui/tuistyles"
)

// RegimeCard shows one regime's tax computation
type RegimeCard struct {
	Result      domain.TaxResult
	Recommended bool
	Features    []string
	Width       int
}

// NewRegimeCard creates a card for a computed result
func NewRegimeCard(result domain.TaxResult) *RegimeCard {
	return &RegimeCard{
		Result:   result,
		Features: output.RegimeFeatures(result.Regime),
		Width:    42,
	}
}

// SetRecommended marks the card as the cheaper regime
func (c *RegimeCard) SetRecommended(on bool) *RegimeCard {
	c.Recommended = on
	return c
}

// WithWidth sets the card width
func (c *RegimeCard) WithWidth(width int) *RegimeCard {
	c.Width = width
	return c
}

// Render returns the styled card
func (c *RegimeCard) Render() string {
	var b strings.Builder

	title := c.Result.Regime.Title()
	if c.Recommended {
		title += "  " + tuistyles.TableHighlightStyle.Render("✓ recommended")
	}
	b.WriteString(tuistyles.TitleStyle.Render(title))
	b.WriteString("\n\n")

	line := func(label, value string) {
		b.WriteString(tuistyles.MetricLabelStyle.Width(22).Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	r := c.Result
	line("Taxable Income", output.FormatINR(r.TaxableIncome))
	line("Basic Tax", output.FormatINR(r.BasicTax))
	line(fmt.Sprintf("Cess (%s)", output.FormatPercent(output.CessPercent)), output.FormatINR(r.Cess))
	if r.Rebate.IsPositive() {
		line("Rebate u/s 87A", tuistyles.MetricPositiveStyle.Render("-"+output.FormatINR(r.Rebate)))
	}
	line("Total Tax", tuistyles.MetricValueStyle.Render(output.FormatINR(r.TotalTax)))

	if len(c.Features) > 0 {
		b.WriteString("\n")
		for _, f := range c.Features {
			b.WriteString(tuistyles.SubtitleStyle.Render("• " + f))
			b.WriteString("\n")
		}
	}

	style := tuistyles.BorderStyle.Width(c.Width)
	if c.Recommended {
		style = style.BorderForeground(tuistyles.ColorSuccess)
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

// RegimeCards renders the cards of an estimate side by side, old first
func RegimeCards(est *domain.Estimate, width int) string {
	var cards []string
	for _, r := range est.Results() {
		recommended := est.Comparison != nil && string(est.Comparison.Better) == string(r.Regime)
		cards = append(cards, NewRegimeCard(r).SetRecommended(recommended).WithWidth(width).Render())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
