package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/expenso/itr/internal/compare"
	"github.com/expenso/itr/internal/output"
	"github.com/expenso/itr/internal/tui/components"
	"github.com/expenso/itr/internal/tui/tuistyles"
)

// CompareModel shows both regimes side by side
type CompareModel struct {
	set    *compare.ComparisonSet
	width  int
	height int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetComparison replaces the comparison on display
func (m *CompareModel) SetComparison(set *compare.ComparisonSet) {
	m.set = set
}

// Comparison returns the comparison on display
func (m *CompareModel) Comparison() *compare.ComparisonSet {
	return m.set
}

// SetSize updates the scene dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the compare scene; it is read-only
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	if m.set == nil {
		return `No comparison available.

Calculate an estimate first.

Press ESC to go back.`
	}
	set := m.set

	sections := []string{
		tuistyles.TitleStyle.Render("Regime Comparison"),
		renderComparisonTable(set),
		tuistyles.BorderStyle.Render(
			components.NewBarChart("Total tax").
				WithSize(30, 18).
				AddBar(set.Old.Title, set.Old.TotalTax, tuistyles.ColorAccent).
				AddBar(set.New.Title, set.New.TotalTax, tuistyles.ColorSecondary).
				Render()),
	}

	if be := set.BreakEven; be != nil && !be.AlreadyBetter() {
		sections = append(sections, tuistyles.InfoStyle.Render(fmt.Sprintf(
			"Break-even: the Old Regime matches the New Regime at %s of deductions (%s more than now).",
			output.FormatINR(be.RequiredDeductions), output.FormatINR(be.AdditionalDeductions))))
	}

	if len(set.Recommendations) > 0 {
		var lines []string
		lines = append(lines, tuistyles.TableHeaderStyle.Render("Recommendations"))
		for i, rec := range set.Recommendations {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, rec))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	sections = append(sections, renderDifferences(), "r results • e edit • h history • l slabs • ? help • q quit")
	return lipgloss.JoinVertical(lipgloss.Left, joinWithGaps(sections)...)
}

func renderComparisonTable(set *compare.ComparisonSet) string {
	var b strings.Builder
	row := func(style lipgloss.Style, label, oldV, newV string) {
		b.WriteString(style.Render(fmt.Sprintf("%-20s %16s %16s", label, oldV, newV)))
		b.WriteString("\n")
	}

	row(tuistyles.TableHeaderStyle, "", "Old Regime", "New Regime")
	row(tuistyles.TableCellStyle, "Deductions", output.FormatINR(set.Old.Deductions), output.FormatINR(set.New.Deductions))
	row(tuistyles.TableCellStyle, "Taxable Income", output.FormatINR(set.Old.TaxableIncome), output.FormatINR(set.New.TaxableIncome))
	row(tuistyles.TableCellStyle, "Basic Tax", output.FormatINR(set.Old.BasicTax), output.FormatINR(set.New.BasicTax))
	row(tuistyles.TableCellStyle, "Cess", output.FormatINR(set.Old.Cess), output.FormatINR(set.New.Cess))
	row(tuistyles.TableCellStyle, "Rebate u/s 87A", output.FormatINR(set.Old.Rebate), output.FormatINR(set.New.Rebate))
	row(tuistyles.TableHighlightStyle, "Total Tax", output.FormatINR(set.Old.TotalTax), output.FormatINR(set.New.TotalTax))
	row(tuistyles.TableCellStyle, "Effective Rate",
		set.Old.EffectiveRate.StringFixed(2)+"%", set.New.EffectiveRate.StringFixed(2)+"%")

	return tuistyles.BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderDifferences() string {
	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-16s %-16s %-16s", "Feature", "Old Regime", "New Regime")))
	for _, d := range output.RegimeDifferences() {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-16s %-16s %-16s", d.Feature, d.Old, d.New))
	}
	return b.String()
}
