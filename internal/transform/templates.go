package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultSection80CCap is the built-in old-regime 80C limit
var DefaultSection80CCap = calculation.DefaultRules(domain.RegimeOld).Section80CCap

// Common Section 80D premiums: self and family below 60, senior parents.
var (
	healthCoverSelf    = decimal.NewFromInt(25000)
	healthCoverParents = decimal.NewFromInt(50000)
	professionalTaxMax = decimal.NewFromInt(2500)
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Category    string
	Transforms  []FactsTransform
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
	t, ok := tr.templates[strings.ToLower(name)]
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

// CreateBuiltInTemplates creates a template registry with common tax-planning
// moves. section80CCap is the limit used by the 80C templates.
func CreateBuiltInTemplates(section80CCap decimal.Decimal) *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "max_80c",
		Description: "Invest up to the Section 80C limit (PPF, ELSS, EPF)",
		Category:    "Deductions",
		Transforms: []FactsTransform{
			&Maximize80C{Cap: section80CCap},
		},
	})

	registry.Register(Template{
		Name:        "health_cover_self",
		Description: "Buy health insurance for self and family (80D +25,000)",
		Category:    "Deductions",
		Transforms: []FactsTransform{
			&AddDeduction{Field: "deduction80D", Amount: healthCoverSelf},
		},
	})

	registry.Register(Template{
		Name:        "health_cover_parents",
		Description: "Buy health insurance for senior citizen parents (80D +50,000)",
		Category:    "Deductions",
		Transforms: []FactsTransform{
			&AddDeduction{Field: "deduction80D", Amount: healthCoverParents},
		},
	})

	registry.Register(Template{
		Name:        "no_hra",
		Description: "Stop claiming HRA (e.g. moving into an owned home)",
		Category:    "Deductions",
		Transforms: []FactsTransform{
			&SetDeduction{Field: "hraExemption", Amount: decimal.Zero},
		},
	})

	registry.Register(Template{
		Name:        "pay_professional_tax",
		Description: "Professional tax at the usual state maximum of 2,500",
		Category:    "Deductions",
		Transforms: []FactsTransform{
			&SetDeduction{Field: "professionalTax", Amount: professionalTaxMax},
		},
	})

	registry.Register(Template{
		Name:        "raise_10pct",
		Description: "A 10% raise in gross salary",
		Category:    "Income",
		Transforms: []FactsTransform{
			&AdjustIncome{Percent: decimal.NewFromInt(10)},
		},
	})

	registry.Register(Template{
		Name:        "max_old_regime",
		Description: "Max out 80C and buy health cover for self and parents",
		Category:    "Combination Strategies",
		Transforms: []FactsTransform{
			&Maximize80C{Cap: section80CCap},
			&AddDeduction{Field: "deduction80D", Amount: healthCoverSelf.Add(healthCoverParents)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to the base facts
func ApplyTemplate(base domain.FinancialFacts, template Template) (domain.FinancialFacts, error) {
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

	categories := map[string][]Template{}
	for _, name := range registry.List() {
		t := registry.templates[name]
		categories[t.Category] = append(categories[t.Category], t)
	}

	for _, category := range []string{"Deductions", "Income", "Combination Strategies", ""} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		if category == "" {
			category = "Other"
		}
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-24s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  itrgo compare facts.yaml --with max_80c,health_cover_self\n")
	sb.WriteString("  itrgo compare facts.yaml --transform add_deduction:field=deduction80D,amount=25000\n")

	return sb.String()
}
