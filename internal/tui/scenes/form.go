package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/expenso/itr/internal/domain"
	"github.com/expenso/itr/internal/tui/components"
	"github.com/expenso/itr/internal/tui/tuimsg"
	"github.com/expenso/itr/internal/tui/tuistyles"
)

// amountSpec describes one form field and the input value it edits
type amountSpec struct {
	section string
	label   string
	desc    string
	field   func(*domain.TaxInput) *decimal.Decimal
}

var amountSpecs = []amountSpec{
	{"Income", "Salary Income", "Annual gross salary", func(in *domain.TaxInput) *decimal.Decimal { return &in.Income.Salary }},
	{"Income", "Business Income", "", func(in *domain.TaxInput) *decimal.Decimal { return &in.Income.Business }},
	{"Income", "Other Income", "Interest, rent and the like", func(in *domain.TaxInput) *decimal.Decimal { return &in.Income.Other }},
	{"Deductions", "Section 80C", "Capped at ₹1,50,000", func(in *domain.TaxInput) *decimal.Decimal { return &in.Deductions.Section80C }},
	{"Deductions", "Section 80D", "Capped at ₹25,000, ₹50,000 for seniors", func(in *domain.TaxInput) *decimal.Decimal { return &in.Deductions.Section80D }},
	{"Deductions", "HRA Exemption", "Old regime only", func(in *domain.TaxInput) *decimal.Decimal { return &in.Deductions.HRA }},
	{"Deductions", "Other Deductions", "", func(in *domain.TaxInput) *decimal.Decimal { return &in.Deductions.Others }},
	{"Other", "Capital Gains", "Recorded but not taxed here", func(in *domain.TaxInput) *decimal.Decimal { return &in.CapitalGains }},
}

var (
	keyNext      = key.NewBinding(key.WithKeys("tab", "down"))
	keyPrev      = key.NewBinding(key.WithKeys("shift+tab", "up"))
	keyLeft      = key.NewBinding(key.WithKeys("left"))
	keyRight     = key.NewBinding(key.WithKeys("right"))
	keyCalculate = key.NewBinding(key.WithKeys("enter"))
	keyReset     = key.NewBinding(key.WithKeys("ctrl+r"))
)

// FormModel is the tax input form
type FormModel struct {
	fields []*components.AmountField
	age    *components.Selector
	regime *components.Selector
	focus  int
	width  int
	height int
}

// NewFormModel creates an empty form with the salary field focused
func NewFormModel() *FormModel {
	m := &FormModel{}
	for _, s := range amountSpecs {
		m.fields = append(m.fields, components.NewAmountField(s.label).WithDescription(s.desc))
	}

	var ages, prefs []string
	for _, a := range domain.AgeBrackets() {
		ages = append(ages, a.Label())
	}
	for _, p := range domain.RegimePreferences() {
		prefs = append(prefs, p.Label())
	}
	m.age = components.NewSelector("Age Group", ages...)
	m.regime = components.NewSelector("Regime", prefs...)

	m.setFocus(0)
	return m
}

// controls counts the focusable controls: the amount fields then the two selectors
func (m *FormModel) controls() int {
	return len(m.fields) + 2
}

// Focused returns the index of the focused control
func (m *FormModel) Focused() int {
	return m.focus
}

// SetSize updates the scene dimensions
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetInput fills the form from an input
func (m *FormModel) SetInput(in domain.TaxInput) {
	for i, s := range amountSpecs {
		m.fields[i].SetAmount(*s.field(&in))
	}
	m.age.SetIndex(int(in.AgeBracket))
	m.regime.SetIndex(int(in.RegimePreference))
}

// Reset clears every field and returns focus to the first one
func (m *FormModel) Reset() {
	for _, f := range m.fields {
		f.Reset()
	}
	m.age.SetIndex(0)
	m.regime.SetIndex(0)
	m.setFocus(0)
}

// Input reads the form. Entries that are not valid amounts count as zero and
// are reported in the returned notes.
func (m *FormModel) Input() (domain.TaxInput, []string) {
	var (
		in    domain.TaxInput
		notes []string
	)
	for i, s := range amountSpecs {
		v, note := m.fields[i].Amount()
		if note != "" {
			notes = append(notes, fmt.Sprintf("%s: %s", s.label, note))
		}
		*s.field(&in) = v
	}
	in.AgeBracket = domain.AgeBrackets()[m.age.Index]
	in.RegimePreference = domain.RegimePreferences()[m.regime.Index]
	return in, notes
}

// Update handles messages for the form
func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateField(msg)
	}

	switch {
	case key.Matches(keyMsg, keyNext):
		return m, m.setFocus((m.focus + 1) % m.controls())

	case key.Matches(keyMsg, keyPrev):
		return m, m.setFocus((m.focus - 1 + m.controls()) % m.controls())

	case key.Matches(keyMsg, keyCalculate):
		in, notes := m.Input()
		return m, func() tea.Msg {
			return tuimsg.CalculateRequestedMsg{Input: in, Warnings: notes}
		}

	case key.Matches(keyMsg, keyReset):
		m.Reset()
		return m, nil

	case key.Matches(keyMsg, keyLeft, keyRight):
		if sel := m.focusedSelector(); sel != nil {
			if key.Matches(keyMsg, keyLeft) {
				sel.Prev()
			} else {
				sel.Next()
			}
			return m, nil
		}
	}

	return m, m.updateField(msg)
}

func (m *FormModel) updateField(msg tea.Msg) tea.Cmd {
	if m.focus < len(m.fields) {
		return m.fields[m.focus].Update(msg)
	}
	return nil
}

func (m *FormModel) focusedSelector() *components.Selector {
	switch m.focus {
	case len(m.fields):
		return m.age
	case len(m.fields) + 1:
		return m.regime
	}
	return nil
}

func (m *FormModel) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j, f := range m.fields {
		if j == i {
			cmd = f.Focus()
		} else {
			f.Blur()
		}
	}
	m.age.SetFocused(i == len(m.fields))
	m.regime.SetFocused(i == len(m.fields)+1)
	return cmd
}

// View renders the form
func (m *FormModel) View() string {
	var b strings.Builder

	section := ""
	for i, s := range amountSpecs {
		if s.section != section {
			if section != "" {
				b.WriteString("\n")
			}
			section = s.section
			b.WriteString(tuistyles.TableHeaderStyle.Render(section))
			b.WriteString("\n")
		}
		b.WriteString(m.fields[i].Render())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tuistyles.TableHeaderStyle.Render("Profile"))
	b.WriteString("\n")
	b.WriteString(m.age.Render())
	b.WriteString("\n")
	b.WriteString(m.regime.Render())

	form := tuistyles.ActiveBorderStyle.Render(b.String())
	return lipgloss.JoinVertical(lipgloss.Left, form, "", renderFormHelp())
}

func renderFormHelp() string {
	return "tab/↓ next • shift+tab/↑ previous • ←/→ change option • enter calculate • ctrl+r reset"
}
