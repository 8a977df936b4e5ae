package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/expenso/itr/internal/calculation"
	"github.com/expenso/itr/internal/config"
	"github.com/expenso/itr/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_deduction", createSetDeduction)
	registry.Register("add_deduction", createAddDeduction)
	registry.Register("max_section", createMaxSection)

	registry.Register("set_income", createSetIncome)
	registry.Register("raise_income", createRaiseIncome)

	registry.Register("set_age", createSetAge)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "add_deduction:section=80c,amount=50000"
//
// Amounts may carry Indian digit grouping, so a comma only separates
// parameters when the text after it contains an '='.
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params, err := parseParams(strings.TrimSpace(paramsStr))
	if err != nil {
		return nil, err
	}

	return r.Create(name, params)
}

func parseParams(s string) (map[string]string, error) {
	params := make(map[string]string)
	if s == "" {
		return params, nil
	}

	var pairs []string
	for _, piece := range strings.Split(s, ",") {
		if len(pairs) > 0 && !strings.Contains(piece, "=") {
			pairs[len(pairs)-1] += piece
			continue
		}
		pairs = append(pairs, piece)
	}

	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", pair)
		}
		params[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return params, nil
}

// Factory functions for each transform

func requireParam(transform string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(",", "", "₹", "", " ", "").Replace(s)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount value %q: %w", s, err)
	}
	if err := config.CheckAmountBounds(d); err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount value %q: %w", s, err)
	}
	return d, nil
}

func sectionAndAmount(transform string, params map[string]string) (string, decimal.Decimal, error) {
	section, err := requireParam(transform, params, "section")
	if err != nil {
		return "", decimal.Zero, err
	}
	amountStr, err := requireParam(transform, params, "amount")
	if err != nil {
		return "", decimal.Zero, err
	}
	amount, err := parseAmount(amountStr)
	if err != nil {
		return "", decimal.Zero, err
	}
	return strings.ToLower(section), amount, nil
}

func createSetDeduction(params map[string]string) (InputTransform, error) {
	section, amount, err := sectionAndAmount("set_deduction", params)
	if err != nil {
		return nil, err
	}
	return &SetDeduction{Section: section, Amount: amount}, nil
}

func createAddDeduction(params map[string]string) (InputTransform, error) {
	section, amount, err := sectionAndAmount("add_deduction", params)
	if err != nil {
		return nil, err
	}
	return &AddDeduction{Section: section, Amount: amount}, nil
}

func createMaxSection(params map[string]string) (InputTransform, error) {
	section, err := requireParam("max_section", params, "section")
	if err != nil {
		return nil, err
	}
	return &MaxSection{Section: strings.ToLower(section), Rules: calculation.DefaultRules()}, nil
}

func createSetIncome(params map[string]string) (InputTransform, error) {
	source, err := requireParam("set_income", params, "source")
	if err != nil {
		return nil, err
	}
	amountStr, err := requireParam("set_income", params, "amount")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(amountStr)
	if err != nil {
		return nil, err
	}
	return &SetIncome{Source: strings.ToLower(source), Amount: amount}, nil
}

func createRaiseIncome(params map[string]string) (InputTransform, error) {
	source := params["source"]
	if source == "" {
		source = SourceSalary
	}
	percentStr, err := requireParam("raise_income", params, "percent")
	if err != nil {
		return nil, err
	}
	percent, err := decimal.NewFromString(strings.TrimSuffix(percentStr, "%"))
	if err != nil {
		return nil, fmt.Errorf("invalid percent value: %w", err)
	}
	if err := config.CheckAmountBounds(percent); err != nil {
		return nil, fmt.Errorf("invalid percent value %q: %w", percentStr, err)
	}
	return &RaiseIncome{Source: strings.ToLower(source), Percent: percent}, nil
}

func createSetAge(params map[string]string) (InputTransform, error) {
	bracketStr, err := requireParam("set_age", params, "bracket")
	if err != nil {
		return nil, err
	}
	bracket, err := domain.ParseAgeBracket(bracketStr)
	if err != nil {
		return nil, err
	}
	return &SetAge{Bracket: bracket}, nil
}
