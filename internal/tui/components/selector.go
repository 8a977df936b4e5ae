package components

import (
	"strings"

	"github.com/expenso/itr/internal/tui/tuistyles"
)

// Selector cycles through a fixed set of options with left and right
type Selector struct {
	Label     string
	Options   []string
	Index     int
	IsFocused bool
}

// NewSelector creates a selector positioned on the first option
func NewSelector(label string, options ...string) *Selector {
	return &Selector{Label: label, Options: options}
}

// SetFocused sets the focus state
func (s *Selector) SetFocused(focused bool) *Selector {
	s.IsFocused = focused
	return s
}

// Next moves to the following option, wrapping at the end
func (s *Selector) Next() {
	if len(s.Options) == 0 {
		return
	}
	s.Index = (s.Index + 1) % len(s.Options)
}

// Prev moves to the preceding option, wrapping at the start
func (s *Selector) Prev() {
	if len(s.Options) == 0 {
		return
	}
	s.Index = (s.Index - 1 + len(s.Options)) % len(s.Options)
}

// SetIndex selects option i, clamped to the option range
func (s *Selector) SetIndex(i int) {
	switch {
	case len(s.Options) == 0 || i < 0:
		s.Index = 0
	case i >= len(s.Options):
		s.Index = len(s.Options) - 1
	default:
		s.Index = i
	}
}

// Value returns the selected option text
func (s *Selector) Value() string {
	if s.Index < 0 || s.Index >= len(s.Options) {
		return ""
	}
	return s.Options[s.Index]
}

// Render draws the label and the current option between arrows
func (s *Selector) Render() string {
	labelStyle := tuistyles.FieldLabelStyle
	valueStyle := tuistyles.UnselectedItemStyle
	if s.IsFocused {
		labelStyle = tuistyles.FocusedFieldLabelStyle
		valueStyle = tuistyles.SelectedItemStyle
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(s.Label))
	if s.IsFocused {
		b.WriteString(tuistyles.HelpKeyStyle.Render("‹ "))
	} else {
		b.WriteString("  ")
	}
	b.WriteString(valueStyle.Render(s.Value()))
	if s.IsFocused {
		b.WriteString(tuistyles.HelpKeyStyle.Render(" ›"))
	}
	return b.String()
}
