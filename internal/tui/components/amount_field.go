package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/expenso/itr/internal/config"
	"github.com/expenso/itr/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// AmountField is a labelled rupee text input. Entries are coerced the same
// way input files are, so "abc" or "-5" read as zero with a note.
type AmountField struct {
	Label       string
	Description string
	input       textinput.Model
}

// NewAmountField creates an empty field
func NewAmountField(label string) *AmountField {
	ti := textinput.New()
	ti.Prompt = "₹ "
	ti.Placeholder = "0"
	ti.CharLimit = 20
	ti.Width = 18
	return &AmountField{Label: label, input: ti}
}

// WithDescription adds a hint shown while the field is focused
func (f *AmountField) WithDescription(desc string) *AmountField {
	f.Description = desc
	return f
}

// Focus gives the field keyboard focus
func (f *AmountField) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur removes keyboard focus
func (f *AmountField) Blur() {
	f.input.Blur()
}

// Focused reports whether the field has keyboard focus
func (f *AmountField) Focused() bool {
	return f.input.Focused()
}

// Raw returns the text as typed
func (f *AmountField) Raw() string {
	return f.input.Value()
}

// SetAmount pre-fills the field; zero leaves it blank
func (f *AmountField) SetAmount(d decimal.Decimal) {
	if d.IsZero() {
		f.input.SetValue("")
		return
	}
	f.input.SetValue(d.String())
}

// Reset clears the field
func (f *AmountField) Reset() {
	f.input.Reset()
}

// Amount parses the field. The note is empty unless the text was coerced.
func (f *AmountField) Amount() (decimal.Decimal, string) {
	return config.CoerceAmount(f.input.Value())
}

// Update forwards key input to the text input
func (f *AmountField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// Render draws the label, input and any coercion note
func (f *AmountField) Render() string {
	labelStyle := tuistyles.FieldLabelStyle
	if f.Focused() {
		labelStyle = tuistyles.FocusedFieldLabelStyle
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(f.Label))
	b.WriteString(f.input.View())
	if _, note := f.Amount(); note != "" {
		b.WriteString("  ")
		b.WriteString(tuistyles.WarningStyle.Render(note))
	} else if f.Focused() && f.Description != "" {
		b.WriteString("  ")
		b.WriteString(tuistyles.SubtitleStyle.Render(f.Description))
	}
	return b.String()
}
