package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAgeBracket is returned when text does not name a known age bracket
	ErrInvalidAgeBracket = errors.New("invalid age bracket")
	// ErrInvalidRegime is returned when text does not name a known regime preference
	ErrInvalidRegime = errors.New("invalid regime preference")
)

// AgeBracket selects the old-regime slab table and the Section 80D ceiling
type AgeBracket int

const (
	AgeGeneral     AgeBracket = iota // below 60
	AgeSenior                        // 60 to 80
	AgeSuperSenior                   // above 80
)

// ParseAgeBracket converts text into an AgeBracket.
func ParseAgeBracket(s string) (AgeBracket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "general":
		return AgeGeneral, nil
	case "senior":
		return AgeSenior, nil
	case "super_senior", "supersenior", "super-senior":
		return AgeSuperSenior, nil
	}
	return AgeGeneral, fmt.Errorf("%w: %q", ErrInvalidAgeBracket, s)
}

func (a AgeBracket) String() string {
	switch a {
	case AgeSenior:
		return "senior"
	case AgeSuperSenior:
		return "super_senior"
	default:
		return "general"
	}
}

// Label returns the display text used by reports and the TUI
func (a AgeBracket) Label() string {
	switch a {
	case AgeSenior:
		return "Senior Citizen (60-80 years)"
	case AgeSuperSenior:
		return "Super Senior Citizen (above 80 years)"
	default:
		return "General (below 60 years)"
	}
}

func (a AgeBracket) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AgeBracket) UnmarshalText(text []byte) error {
	v, err := ParseAgeBracket(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// AgeBrackets lists every bracket in display order
func AgeBrackets() []AgeBracket {
	return []AgeBracket{AgeGeneral, AgeSenior, AgeSuperSenior}
}

// RegimePreference selects which regime results an estimate carries.
// It never changes the numbers themselves.
type RegimePreference int

const (
	PreferBoth RegimePreference = iota
	PreferOld
	PreferNew
)

// ParseRegimePreference converts text into a RegimePreference.
func ParseRegimePreference(s string) (RegimePreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both":
		return PreferBoth, nil
	case "old":
		return PreferOld, nil
	case "new":
		return PreferNew, nil
	}
	return PreferBoth, fmt.Errorf("%w: %q", ErrInvalidRegime, s)
}

func (p RegimePreference) String() string {
	switch p {
	case PreferOld:
		return "old"
	case PreferNew:
		return "new"
	default:
		return "both"
	}
}

// Label returns the display text used by reports and the TUI
func (p RegimePreference) Label() string {
	switch p {
	case PreferOld:
		return "Old Regime Only"
	case PreferNew:
		return "New Regime Only"
	default:
		return "Show Both Regimes"
	}
}

func (p RegimePreference) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *RegimePreference) UnmarshalText(text []byte) error {
	v, err := ParseRegimePreference(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// IncludesOld reports whether the old regime result is wanted
func (p RegimePreference) IncludesOld() bool { return p == PreferOld || p == PreferBoth }

// IncludesNew reports whether the new regime result is wanted
func (p RegimePreference) IncludesNew() bool { return p == PreferNew || p == PreferBoth }

// RegimePreferences lists every preference in display order
func RegimePreferences() []RegimePreference {
	return []RegimePreference{PreferBoth, PreferOld, PreferNew}
}

// Regime identifies one of the two tax computation rule sets
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// Title returns the heading used for the regime in reports
func (r Regime) Title() string {
	if r == RegimeOld {
		return "Old Tax Regime"
	}
	return "New Tax Regime"
}

// Income holds the annual income components
type Income struct {
	Salary   decimal.Decimal `yaml:"salary" json:"salary"`
	Business decimal.Decimal `yaml:"business" json:"business"`
	Other    decimal.Decimal `yaml:"other" json:"other"`
}

// Total sums all income components
func (i Income) Total() decimal.Decimal {
	return i.Salary.Add(i.Business).Add(i.Other)
}

// Deductions holds itemised deductions; only the old regime uses them
type Deductions struct {
	Section80C decimal.Decimal `yaml:"section_80c" json:"section80C"`
	Section80D decimal.Decimal `yaml:"section_80d" json:"section80D"`
	HRA        decimal.Decimal `yaml:"hra" json:"hra"`
	Others     decimal.Decimal `yaml:"others" json:"others"`
}

// Total sums all deduction components
func (d Deductions) Total() decimal.Decimal {
	return d.Section80C.Add(d.Section80D).Add(d.HRA).Add(d.Others)
}

// TaxInput is everything a single estimate is computed from.
//
// CapitalGains is collected but not folded into either regime's taxable income.
type TaxInput struct {
	Income           Income           `yaml:"income" json:"income"`
	Deductions       Deductions       `yaml:"deductions" json:"deductions"`
	CapitalGains     decimal.Decimal  `yaml:"capital_gains" json:"capitalGains"`
	AgeBracket       AgeBracket       `yaml:"age" json:"age"`
	RegimePreference RegimePreference `yaml:"regime_preference" json:"regimePreference"`
}

// Sanitized returns a copy of the input with every negative amount clamped to zero
func (in TaxInput) Sanitized() TaxInput {
	out := in
	out.Income.Salary = NonNegative(in.Income.Salary)
	out.Income.Business = NonNegative(in.Income.Business)
	out.Income.Other = NonNegative(in.Income.Other)
	out.Deductions.Section80C = NonNegative(in.Deductions.Section80C)
	out.Deductions.Section80D = NonNegative(in.Deductions.Section80D)
	out.Deductions.HRA = NonNegative(in.Deductions.HRA)
	out.Deductions.Others = NonNegative(in.Deductions.Others)
	out.CapitalGains = NonNegative(in.CapitalGains)
	return out
}

// NonNegative clamps d to zero when negative
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
