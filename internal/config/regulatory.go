package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed regulatory.yaml
var defaultRegulatoryYAML []byte

// DefaultRegulatory returns the embedded rule set
func DefaultRegulatory() (*domain.RegulatoryConfig, error) {
	return ParseRegulatory(defaultRegulatoryYAML)
}

// MustDefaultRegulatory returns the embedded rule set and panics if it does not parse.
// The embedded file is covered by tests, so this only fails on a broken build.
func MustDefaultRegulatory() *domain.RegulatoryConfig {
	rules, err := DefaultRegulatory()
	if err != nil {
		panic(err)
	}
	return rules
}

// LoadRegulatoryFromFile loads a rule set from a YAML file
func LoadRegulatoryFromFile(filename string) (*domain.RegulatoryConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read regulatory file %s: %w", filename, err)
	}
	return ParseRegulatory(data)
}

// ParseRegulatory parses and checks a YAML rule set
func ParseRegulatory(data []byte) (*domain.RegulatoryConfig, error) {
	var rules domain.RegulatoryConfig
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse regulatory YAML: %w", err)
	}
	if err := validateRegulatory(&rules); err != nil {
		return nil, fmt.Errorf("regulatory validation failed: %w", err)
	}

	// Jurisdiction codes and locality names are matched case-insensitively
	normalized := make(map[string]domain.JurisdictionRules, len(rules.Jurisdictions))
	for code, j := range rules.Jurisdictions {
		if len(j.Localities) > 0 {
			locs := make(map[string]decimal.Decimal, len(j.Localities))
			for name, rate := range j.Localities {
				locs[normalizeLocality(name)] = rate
			}
			j.Localities = locs
		}
		normalized[strings.ToUpper(strings.TrimSpace(code))] = j
	}
	rules.Jurisdictions = normalized
	return &rules, nil
}

func normalizeLocality(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func validateRegulatory(rules *domain.RegulatoryConfig) error {
	if rules.Metadata.Version == "" {
		return fmt.Errorf("metadata.version is required")
	}
	for _, status := range []domain.FilingStatus{domain.FilingJoint, domain.FilingSingle, domain.FilingSeparate, domain.FilingHeadOfHousehold} {
		brackets := rules.FederalTax.BracketsFor(status)
		if len(brackets) == 0 {
			return fmt.Errorf("federal_tax.brackets.%s is required", status)
		}
		if brackets[len(brackets)-1].Top != nil {
			return fmt.Errorf("federal_tax.brackets.%s must end with an unbounded bracket", status)
		}
		if len(brackets) > 1 && (brackets[0].Top == nil || !brackets[0].Top.IsPositive()) {
			return fmt.Errorf("federal_tax.brackets.%s first bracket top must be positive", status)
		}
		for i := 1; i < len(brackets)-1; i++ {
			if brackets[i].Top == nil || brackets[i-1].Top == nil || !brackets[i].Top.GreaterThan(*brackets[i-1].Top) {
				return fmt.Errorf("federal_tax.brackets.%s must be ascending", status)
			}
		}
	}
	for code, j := range rules.Jurisdictions {
		switch j.Kind {
		case domain.JurisdictionFlat, domain.JurisdictionData:
		default:
			return fmt.Errorf("jurisdictions.%s.kind must be 'flat' or 'data'", code)
		}
		if j.StateRatePct.IsNegative() || j.LocalRatePct.IsNegative() {
			return fmt.Errorf("jurisdictions.%s rates cannot be negative", code)
		}
	}
	return nil
}
