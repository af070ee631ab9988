package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegulatory(t *testing.T) {
	rules, err := DefaultRegulatory()
	require.NoError(t, err)

	assert.Equal(t, "2025.v1", rules.Metadata.Version)
	assert.True(t, decimal.NewFromInt(30000).Equal(rules.FederalTax.StandardDeduction.For(domain.FilingJoint)))
	assert.True(t, decimal.NewFromInt(1600).Equal(rules.FederalTax.AdditionalDeduction65Plus))
	assert.True(t, decimal.NewFromFloat(0.15).Equal(rules.FederalTax.CapitalGainsRate))

	joint := rules.SocialSecurity.ThresholdsFor(domain.FilingJoint)
	assert.True(t, decimal.NewFromInt(32000).Equal(joint.Base))
	assert.True(t, decimal.NewFromInt(44000).Equal(joint.Adjusted))
	single := rules.SocialSecurity.ThresholdsFor(domain.FilingHeadOfHousehold)
	assert.True(t, decimal.NewFromInt(25000).Equal(single.Base))

	for age := 73; age <= 100; age++ {
		_, ok := rules.RMD.UniformDivisors[age]
		assert.True(t, ok, "divisor for age %d", age)
	}
	assert.Equal(t, 75, rules.RMD.StartAge.StartAge(1960))
	assert.Equal(t, 73, rules.RMD.StartAge.StartAge(1955))
	assert.Equal(t, 72, rules.RMD.StartAge.StartAge(1949))
}

func TestDefaultRegulatory_Jurisdictions(t *testing.T) {
	rules := MustDefaultRegulatory()

	md, ok := rules.Jurisdictions["MD"]
	require.True(t, ok)
	assert.Equal(t, domain.JurisdictionData, md.Kind)
	require.NotNil(t, md.SeniorCredit)
	assert.True(t, decimal.NewFromInt(1750).Equal(md.SeniorCredit.Both))
	rate, ok := md.Localities["prince george's"]
	assert.True(t, ok, "locality keys are lower-cased")
	assert.True(t, decimal.NewFromFloat(3.2).Equal(rate))

	pa := rules.Jurisdictions["PA"]
	assert.Equal(t, domain.JurisdictionFlat, pa.Kind)
}

func TestParseRegulatory_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "metadata: [", "failed to parse regulatory YAML"},
		{"missing version", "metadata: {}", "metadata.version is required"},
		{"missing brackets", "metadata: {version: x}", "federal_tax.brackets.joint is required"},
		{"bounded top bracket", `
metadata: {version: x}
federal_tax:
  brackets:
    joint: [{top: 100, rate: 0.1}]
`, "must end with an unbounded bracket"},
		{"descending brackets", `
metadata: {version: x}
federal_tax:
  brackets:
    joint: [{top: 100, rate: 0.1}, {top: 50, rate: 0.2}, {rate: 0.3}]
    single: [{rate: 0.1}]
    separate: [{rate: 0.1}]
    head_of_household: [{rate: 0.1}]
`, "must be ascending"},
		{"zero first bracket", `
metadata: {version: x}
federal_tax:
  brackets:
    joint: [{top: 0, rate: 0.1}, {rate: 0.2}]
    single: [{rate: 0.1}]
    separate: [{rate: 0.1}]
    head_of_household: [{rate: 0.1}]
`, "first bracket top must be positive"},
		{"negative first bracket", `
metadata: {version: x}
federal_tax:
  brackets:
    joint: [{rate: 0.1}]
    single: [{top: -500, rate: 0.1}, {top: 1000, rate: 0.12}, {rate: 0.2}]
    separate: [{rate: 0.1}]
    head_of_household: [{rate: 0.1}]
`, "federal_tax.brackets.single first bracket top must be positive"},
		{"unbounded first of two", `
metadata: {version: x}
federal_tax:
  brackets:
    joint: [{rate: 0.1}, {rate: 0.2}]
    single: [{rate: 0.1}]
    separate: [{rate: 0.1}]
    head_of_household: [{rate: 0.1}]
`, "first bracket top must be positive"},
		{"bad jurisdiction kind", `
metadata: {version: x}
federal_tax:
  brackets:
    joint: [{rate: 0.1}]
    single: [{rate: 0.1}]
    separate: [{rate: 0.1}]
    head_of_household: [{rate: 0.1}]
jurisdictions:
  ZZ: {kind: bracketed}
`, "kind must be 'flat' or 'data'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRegulatory([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadRegulatoryFromFile(t *testing.T) {
	_, err := LoadRegulatoryFromFile("missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read regulatory file")

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, defaultRegulatoryYAML, 0644))
	rules, err := LoadRegulatoryFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2025.v1", rules.Metadata.Version)
}
