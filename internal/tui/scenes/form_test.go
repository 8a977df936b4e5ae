package scenes

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expenso/itr/internal/domain"
	"github.com/expenso/itr/internal/store"
	"github.com/expenso/itr/internal/tui/tuimsg"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeInto(m *FormModel, s string) {
	for _, r := range s {
		m.Update(keyRunes(string(r)))
	}
}

func TestFormFocusCycles(t *testing.T) {
	m := NewFormModel()
	assert.Equal(t, 0, m.Focused())

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.Focused())

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, m.controls()-1, m.Focused(), "shift+tab wraps to the last control")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.Focused(), "down wraps to the first control")
}

func TestFormTypingTargetsFocusedField(t *testing.T) {
	m := NewFormModel()
	typeInto(m, "12,00,000")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeInto(m, "200000")

	in, notes := m.Input()
	assert.Empty(t, notes)
	assert.True(t, in.Income.Salary.Equal(decimal.NewFromInt(1200000)))
	assert.True(t, in.Deductions.Section80C.Equal(decimal.NewFromInt(200000)), "the form keeps the raw value; capping happens in the estimator")
}

func TestFormSelectorsCycle(t *testing.T) {
	m := NewFormModel()
	for m.Focused() != len(amountSpecs) {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	in, _ := m.Input()
	assert.Equal(t, domain.AgeSenior, in.AgeBracket)

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	in, _ = m.Input()
	assert.Equal(t, domain.AgeSuperSenior, in.AgeBracket, "left wraps around")

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	in, _ = m.Input()
	assert.Equal(t, domain.PreferNew, in.RegimePreference)
}

func TestFormCoercionNotes(t *testing.T) {
	m := NewFormModel()
	typeInto(m, "lots")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeInto(m, "-500")

	in, notes := m.Input()
	assert.True(t, in.Income.Salary.IsZero())
	assert.True(t, in.Income.Business.IsZero())
	require.Len(t, notes, 2)
	assert.Contains(t, notes[0], "Salary Income")
	assert.Contains(t, notes[1], "Business Income")
	assert.Contains(t, m.View(), "not a number")
}

func TestFormEnterRequestsCalculation(t *testing.T) {
	m := NewFormModel()
	typeInto(m, "600000")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuimsg.CalculateRequestedMsg)
	require.True(t, ok)
	assert.True(t, msg.Input.Income.Salary.Equal(decimal.NewFromInt(600000)))
	assert.Empty(t, msg.Warnings)
}

func TestFormResetAndSetInput(t *testing.T) {
	m := NewFormModel()
	m.SetInput(domain.TaxInput{
		Income:           domain.Income{Salary: decimal.NewFromInt(800000)},
		Deductions:       domain.Deductions{HRA: decimal.NewFromInt(60000)},
		AgeBracket:       domain.AgeSuperSenior,
		RegimePreference: domain.PreferOld,
	})

	in, _ := m.Input()
	assert.True(t, in.Income.Salary.Equal(decimal.NewFromInt(800000)))
	assert.True(t, in.Deductions.HRA.Equal(decimal.NewFromInt(60000)))
	assert.Equal(t, domain.AgeSuperSenior, in.AgeBracket)
	assert.Equal(t, domain.PreferOld, in.RegimePreference)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	in, _ = m.Input()
	for _, spec := range amountSpecs {
		assert.True(t, spec.field(&in).IsZero(), spec.label)
	}
	assert.Equal(t, domain.AgeGeneral, in.AgeBracket)
	assert.Equal(t, domain.PreferBoth, in.RegimePreference)
	assert.Equal(t, 0, m.Focused())
}

func TestHistoryModelSelection(t *testing.T) {
	m := NewHistoryModel()
	assert.Contains(t, m.View(), "Loading")

	m.SetSummaries([]store.Summary{
		{ID: "aaaaaaaa-1", Label: "first"},
		{ID: "bbbbbbbb-2", Label: "second"},
	})

	m.Update(keyRunes("j"))
	s, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "second", s.Label)

	m.Update(keyRunes("j"))
	s, _ = m.Selected()
	assert.Equal(t, "second", s.Label, "selection stops at the last row")

	_, cmd := m.Update(keyRunes("x"))
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.HistoryDeleteRequestedMsg{ID: "bbbbbbbb-2"}, cmd())

	m.Update(keyRunes("g"))
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.HistorySelectedMsg{ID: "aaaaaaaa-1"}, cmd())

	m.SetSummaries(nil)
	_, ok = m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "No saved estimates")
}

func TestResultsToggleBreakdown(t *testing.T) {
	m := NewResultsModel()
	assert.Contains(t, m.View(), "No results")

	est := &domain.Estimate{
		TotalIncome: decimal.NewFromInt(600000),
		New: &domain.TaxResult{
			Regime:        domain.RegimeNew,
			TaxableIncome: decimal.NewFromInt(600000),
			BasicTax:      decimal.NewFromInt(15000),
			Cess:          decimal.NewFromInt(600),
			Rebate:        decimal.NewFromInt(15000),
			TotalTax:      decimal.NewFromInt(600),
		},
	}
	m.SetEstimate(est, "", nil)
	assert.NotContains(t, m.View(), "Tax by slab")

	m.Update(keyRunes("b"))
	assert.True(t, m.ShowingBreakdown())
	assert.Contains(t, m.View(), "Tax by slab: New Regime (all ages)")

	_, cmd := m.Update(keyRunes("s"))
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.SaveRequestedMsg{}, cmd())
}

func TestRenderSlabs(t *testing.T) {
	out := RenderSlabs(domain.AgeSenior)
	assert.Contains(t, out, "Old Regime - General (below 60)")
	assert.Contains(t, out, "New Regime (all ages)")
	assert.Contains(t, out, "Senior Citizen (60-80 years)")
	assert.Contains(t, out, "Rebate Limit")
}
