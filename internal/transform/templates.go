package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
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

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common household scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Social Security timing
	registry.Register(Template{
		Name:        "claim_ss_62",
		Description: "Claim Social Security at 62 (earliest, reduced benefit)",
		Transforms: []ScenarioTransform{
			&DelaySSClaim{Person: PersonPrimary, NewAge: 62},
		},
	})

	registry.Register(Template{
		Name:        "delay_ss_67",
		Description: "Claim Social Security at 67 (full retirement age)",
		Transforms: []ScenarioTransform{
			&DelaySSClaim{Person: PersonPrimary, NewAge: 67},
		},
	})

	registry.Register(Template{
		Name:        "delay_ss_70",
		Description: "Delay Social Security to 70 (maximum benefit)",
		Transforms: []ScenarioTransform{
			&DelaySSClaim{Person: PersonPrimary, NewAge: 70},
		},
	})

	// Withdrawal strategies
	registry.Register(Template{
		Name:        "weighted_pretax_first",
		Description: "Weighted withdrawals drawing mostly from pre-tax accounts",
		Transforms: []ScenarioTransform{
			&SetWithdrawalMode{Mode: domain.WithdrawalWeighted},
			&setWeights{weights: map[domain.TaxClass]decimal.Decimal{
				domain.TaxClassPreTax:    decimal.NewFromFloat(0.7),
				domain.TaxClassBrokerage: decimal.NewFromFloat(0.2),
				domain.TaxClassRoth:      decimal.NewFromFloat(0.1),
			}},
		},
	})

	registry.Register(Template{
		Name:        "weighted_even",
		Description: "Weighted withdrawals split evenly across pre-tax, Roth and brokerage",
		Transforms: []ScenarioTransform{
			&SetWithdrawalMode{Mode: domain.WithdrawalWeighted},
			&setWeights{weights: map[domain.TaxClass]decimal.Decimal{
				domain.TaxClassPreTax:    decimal.NewFromInt(1),
				domain.TaxClassBrokerage: decimal.NewFromInt(1),
				domain.TaxClassRoth:      decimal.NewFromInt(1),
			}},
		},
	})

	// Market assumptions
	registry.Register(Template{
		Name:        "low_returns",
		Description: "All accounts return 3% a year",
		Transforms: []ScenarioTransform{
			&SetReturn{Rate: decimal.NewFromFloat(0.03)},
		},
	})

	// Combinations
	registry.Register(Template{
		Name:        "delay_ss_70_low_returns",
		Description: "Delay Social Security to 70 + 3% returns",
		Transforms: []ScenarioTransform{
			&DelaySSClaim{Person: PersonPrimary, NewAge: 70},
			&SetReturn{Rate: decimal.NewFromFloat(0.03)},
		},
	})

	return registry
}

// setWeights replaces the class weights and keeps the current annual total
type setWeights struct {
	weights map[domain.TaxClass]decimal.Decimal
}

func (sw *setWeights) Name() string        { return "set_weights" }
func (sw *setWeights) Description() string { return "Replace withdrawal weights" }

func (sw *setWeights) Validate(base *domain.Configuration) error {
	return requireBase(sw.Name(), base)
}

func (sw *setWeights) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	t := &SetWeightedTarget{Total: base.Inputs.Withdrawals.TotalAnnual, Weights: sw.weights}
	return t.Apply(base)
}

// ApplyTemplate applies a template to a base configuration
func ApplyTemplate(base *domain.Configuration, template Template) (*domain.Configuration, error) {
	if len(template.Transforms) == 0 {
		return base.Clone(), nil
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

	categories := map[string][]Template{
		"Social Security":        {},
		"Withdrawals":            {},
		"Market Assumptions":     {},
		"Combination Strategies": {},
	}

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.Contains(name, "_ss_") && len(template.Transforms) == 1:
			categories["Social Security"] = append(categories["Social Security"], template)
		case strings.HasPrefix(name, "weighted_"):
			categories["Withdrawals"] = append(categories["Withdrawals"], template)
		case len(template.Transforms) == 1:
			categories["Market Assumptions"] = append(categories["Market Assumptions"], template)
		default:
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		}
	}

	for _, category := range []string{"Social Security", "Withdrawals", "Market Assumptions", "Combination Strategies"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  retireright compare household.yaml --with delay_ss_70,weighted_even\n")
	sb.WriteString("  retireright compare household.yaml --transform \"delay_ss:person=spouse,age=70+set_state:state=FL\"\n")

	return sb.String()
}
