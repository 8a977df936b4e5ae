package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/expenso/itr/internal/calculation"
	"github.com/expenso/itr/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with the common what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	rules := calculation.DefaultRules()
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "max_80c",
		Description: "Invest the full Section 80C limit",
		Transforms: []InputTransform{
			&MaxSection{Section: Section80C, Rules: rules},
		},
	})

	registry.Register(Template{
		Name:        "max_80d",
		Description: "Claim the full Section 80D health insurance limit",
		Transforms: []InputTransform{
			&MaxSection{Section: Section80D, Rules: rules},
		},
	})

	registry.Register(Template{
		Name:        "max_deductions",
		Description: "Claim both the Section 80C and 80D limits",
		Transforms: []InputTransform{
			&MaxSection{Section: Section80C, Rules: rules},
			&MaxSection{Section: Section80D, Rules: rules},
		},
	})

	registry.Register(Template{
		Name:        "raise_10pct",
		Description: "A 10% salary raise",
		Transforms: []InputTransform{
			&RaiseIncome{Source: SourceSalary, Percent: decimal.NewFromInt(10)},
		},
	})

	registry.Register(Template{
		Name:        "no_deductions",
		Description: "Claim nothing under any section",
		Transforms: []InputTransform{
			&SetDeduction{Section: Section80C, Amount: decimal.Zero},
			&SetDeduction{Section: Section80D, Amount: decimal.Zero},
			&SetDeduction{Section: SectionHRA, Amount: decimal.Zero},
			&SetDeduction{Section: SectionOthers, Amount: decimal.Zero},
		},
	})

	registry.Register(Template{
		Name:        "senior",
		Description: "Estimate as a senior citizen (60-79)",
		Transforms: []InputTransform{
			&SetAge{Bracket: domain.AgeSenior},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base input
func ApplyTemplate(base domain.TaxInput, template Template) (domain.TaxInput, error) {
	if len(template.Transforms) == 0 {
		return base, nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-16s %s\n", t.Name, t.Description))
	}
	return sb.String()
}
