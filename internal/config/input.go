package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/expenso/itr/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of tax input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// inputFile mirrors the tax form. Amounts are read as raw scalars so that blank
// or malformed entries can be coerced the same way the form does.
type inputFile struct {
	Income struct {
		Salary   string `yaml:"salary"`
		Business string `yaml:"business"`
		Other    string `yaml:"other"`
	} `yaml:"income"`
	Deductions struct {
		Section80C string `yaml:"section_80c"`
		Section80D string `yaml:"section_80d"`
		HRA        string `yaml:"hra"`
		Others     string `yaml:"others"`
	} `yaml:"deductions"`
	CapitalGains     string `yaml:"capital_gains"`
	Age              string `yaml:"age"`
	RegimePreference string `yaml:"regime_preference"`
}

// LoadFromFile loads a tax input from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.TaxInput, error) {
	input, _, err := ip.LoadWithWarnings(filename)
	return input, err
}

// LoadWithWarnings loads a tax input and reports every amount that had to be coerced
func (ip *InputParser) LoadWithWarnings(filename string) (*domain.TaxInput, []string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes a tax input document
func (ip *InputParser) Parse(data []byte) (*domain.TaxInput, []string, error) {
	var raw inputFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	age, err := domain.ParseAgeBracket(raw.Age)
	if err != nil {
		return nil, nil, fmt.Errorf("age: %w", err)
	}
	pref, err := domain.ParseRegimePreference(raw.RegimePreference)
	if err != nil {
		return nil, nil, fmt.Errorf("regime_preference: %w", err)
	}

	var warnings []string
	amount := func(field, value string) decimal.Decimal {
		v, note := coerceAmount(value)
		if note != "" {
			warnings = append(warnings, fmt.Sprintf("%s: %s", field, note))
		}
		return v
	}

	input := &domain.TaxInput{
		Income: domain.Income{
			Salary:   amount("income.salary", raw.Income.Salary),
			Business: amount("income.business", raw.Income.Business),
			Other:    amount("income.other", raw.Income.Other),
		},
		Deductions: domain.Deductions{
			Section80C: amount("deductions.section_80c", raw.Deductions.Section80C),
			Section80D: amount("deductions.section_80d", raw.Deductions.Section80D),
			HRA:        amount("deductions.hra", raw.Deductions.HRA),
			Others:     amount("deductions.others", raw.Deductions.Others),
		},
		CapitalGains:     amount("capital_gains", raw.CapitalGains),
		AgeBracket:       age,
		RegimePreference: pref,
	}

	if err := ip.ValidateInput(input); err != nil {
		return nil, nil, fmt.Errorf("input validation failed: %w", err)
	}

	return input, warnings, nil
}

// ValidateInput checks an input built outside the parser
func (ip *InputParser) ValidateInput(input *domain.TaxInput) error {
	if input == nil {
		return fmt.Errorf("input is required")
	}
	if input.AgeBracket < domain.AgeGeneral || input.AgeBracket > domain.AgeSuperSenior {
		return fmt.Errorf("%w: %d", domain.ErrInvalidAgeBracket, int(input.AgeBracket))
	}
	if input.RegimePreference < domain.PreferBoth || input.RegimePreference > domain.PreferNew {
		return fmt.Errorf("%w: %d", domain.ErrInvalidRegime, int(input.RegimePreference))
	}

	amounts := map[string]decimal.Decimal{
		"income.salary":          input.Income.Salary,
		"income.business":        input.Income.Business,
		"income.other":           input.Income.Other,
		"deductions.section_80c": input.Deductions.Section80C,
		"deductions.section_80d": input.Deductions.Section80D,
		"deductions.hra":         input.Deductions.HRA,
		"deductions.others":      input.Deductions.Others,
		"capital_gains":          input.CapitalGains,
	}
	for field, v := range amounts {
		if v.IsNegative() {
			return fmt.Errorf("%s cannot be negative", field)
		}
	}
	return nil
}

// ParseAmount converts form text to a non-negative amount. Blank or
// non-numeric text becomes zero, as do negative values. Grouping commas,
// underscores, spaces and a leading rupee sign are ignored.
func ParseAmount(s string) decimal.Decimal {
	v, _ := coerceAmount(s)
	return v
}

// CoerceAmount is ParseAmount plus a note describing any coercion applied
func CoerceAmount(s string) (decimal.Decimal, string) {
	return coerceAmount(s)
}

func coerceAmount(s string) (decimal.Decimal, string) {
	cleaned := strings.NewReplacer("₹", "", "Rs.", "", ",", "", "_", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" || cleaned == "~" || strings.EqualFold(cleaned, "null") {
		return decimal.Zero, ""
	}
	v, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Sprintf("%q is not a number, using 0", s)
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Sprintf("%s is negative, using 0", v)
	}
	if err := CheckAmountBounds(v); err != nil {
		return decimal.Zero, fmt.Sprintf("%q %v, using 0", s, err)
	}
	return v, ""
}

// Amount limits enforced before any arithmetic. Decimal arithmetic rescales to
// the smaller exponent, so an extreme exponent costs time and memory.
const (
	MaxAmountIntegerDigits  = 15
	MaxAmountFractionDigits = 6
)

var (
	ErrAmountTooPrecise = fmt.Errorf("has more than %d decimal places", MaxAmountFractionDigits)
	ErrAmountTooLarge   = fmt.Errorf("has more than %d integer digits", MaxAmountIntegerDigits)
)

// CheckAmountBounds reports whether v is within the supported magnitude and
// precision. It inspects the exponent and digit count only.
func CheckAmountBounds(v decimal.Decimal) error {
	exp := int64(v.Exponent())
	if exp < -MaxAmountFractionDigits {
		return ErrAmountTooPrecise
	}
	if v.IsZero() {
		return nil
	}
	if int64(v.NumDigits())+exp > MaxAmountIntegerDigits {
		return ErrAmountTooLarge
	}
	return nil
}

// SaveInput writes an input to a YAML file that LoadFromFile can read back
func SaveInput(input *domain.TaxInput, filename string) error {
	data, err := MarshalInput(input)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// MarshalInput encodes an input in the input file layout
func MarshalInput(input *domain.TaxInput) ([]byte, error) {
	var raw inputFile
	raw.Income.Salary = input.Income.Salary.String()
	raw.Income.Business = input.Income.Business.String()
	raw.Income.Other = input.Income.Other.String()
	raw.Deductions.Section80C = input.Deductions.Section80C.String()
	raw.Deductions.Section80D = input.Deductions.Section80D.String()
	raw.Deductions.HRA = input.Deductions.HRA.String()
	raw.Deductions.Others = input.Deductions.Others.String()
	raw.CapitalGains = input.CapitalGains.String()
	raw.Age = input.AgeBracket.String()
	raw.RegimePreference = input.RegimePreference.String()

	data, err := yaml.Marshal(&raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode input: %w", err)
	}
	return data, nil
}
