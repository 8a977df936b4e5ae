package scenes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/expenso/itr/internal/calculation"
	"github.com/expenso/itr/internal/domain"
	"github.com/expenso/itr/internal/output"
	"github.com/expenso/itr/internal/tui/tuistyles"
)

// RenderSlabs draws every slab table, highlighting the ones that apply to age
func RenderSlabs(age domain.AgeBracket) string {
	applies := map[string]bool{
		calculation.OldRegimeTable(age).Name: true,
		calculation.NewRegime().Name:         true,
	}

	var boxes []string
	for _, table := range calculation.AllTables() {
		var b strings.Builder
		b.WriteString(tuistyles.TableHeaderStyle.Render(table.Name))
		for i, s := range table.Slabs {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Width(28).Render(output.SlabRange(table, i)))
			b.WriteString(output.FormatPercent(s.RatePercent))
		}
		style := tuistyles.BorderStyle
		if applies[table.Name] {
			style = tuistyles.ActiveBorderStyle
		}
		boxes = append(boxes, style.Render(b.String()))
	}

	grid := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, boxes[0], boxes[1]),
		lipgloss.JoinHorizontal(lipgloss.Top, boxes[2], boxes[3]),
	)
	note := tuistyles.SubtitleStyle.Render("Highlighted tables apply to: " + age.Label())
	return lipgloss.JoinVertical(lipgloss.Left, grid, note, "", renderDifferences())
}
