package domain

import (
	"github.com/rgehrsitz/retireright/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// RegulatoryConfig contains all regulatory/legal data that applies uniformly.
// It is loaded from a versioned YAML rule set and can be swapped without code changes.
type RegulatoryConfig struct {
	Metadata       RegulatoryMetadata           `yaml:"metadata" json:"metadata"`
	FederalTax     FederalTaxRules              `yaml:"federal_tax" json:"federal_tax"`
	SocialSecurity SocialSecurityRules          `yaml:"social_security" json:"social_security"`
	RMD            RMDRules                     `yaml:"rmd" json:"rmd"`
	Jurisdictions  map[string]JurisdictionRules `yaml:"jurisdictions" json:"jurisdictions"`
}

// RegulatoryMetadata contains information about the regulatory data
type RegulatoryMetadata struct {
	Version     string `yaml:"version" json:"version"`
	DataYear    int    `yaml:"data_year" json:"data_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// TaxBracket is the top of a bracket and the rate applied within it.
// A nil Top marks the unbounded top bracket.
type TaxBracket struct {
	Top  *decimal.Decimal `yaml:"top" json:"top"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// StandardDeductions contains standard deduction amounts by filing status
type StandardDeductions struct {
	Joint           decimal.Decimal `yaml:"joint" json:"joint"`
	Single          decimal.Decimal `yaml:"single" json:"single"`
	Separate        decimal.Decimal `yaml:"separate" json:"separate"`
	HeadOfHousehold decimal.Decimal `yaml:"head_of_household" json:"head_of_household"`
}

// For returns the base deduction for a filing status
func (sd StandardDeductions) For(status FilingStatus) decimal.Decimal {
	switch status {
	case FilingJoint:
		return sd.Joint
	case FilingSeparate:
		return sd.Separate
	case FilingHeadOfHousehold:
		return sd.HeadOfHousehold
	default:
		return sd.Single
	}
}

// FederalTaxRules contains federal income tax rules
type FederalTaxRules struct {
	StandardDeduction         StandardDeductions            `yaml:"standard_deduction" json:"standard_deduction"`
	AdditionalDeduction65Plus decimal.Decimal               `yaml:"additional_deduction_65_plus" json:"additional_deduction_65_plus"`
	Brackets                  map[FilingStatus][]TaxBracket `yaml:"brackets" json:"brackets"`
	CapitalGainsRate          decimal.Decimal               `yaml:"capital_gains_rate" json:"capital_gains_rate"`
}

// BracketsFor returns the brackets for a filing status, falling back to single
func (r FederalTaxRules) BracketsFor(status FilingStatus) []TaxBracket {
	if b, ok := r.Brackets[status]; ok && len(b) > 0 {
		return b
	}
	return r.Brackets[FilingSingle]
}

// TaxThreshold contains the two SS taxation thresholds
type TaxThreshold struct {
	Base     decimal.Decimal `yaml:"base" json:"base"`
	Adjusted decimal.Decimal `yaml:"adjusted" json:"adjusted"`
}

// SocialSecurityRules contains the provisional-income thresholds.
// Every status other than joint shares the Other pair.
type SocialSecurityRules struct {
	JointThresholds TaxThreshold `yaml:"joint_thresholds" json:"joint_thresholds"`
	OtherThresholds TaxThreshold `yaml:"other_thresholds" json:"other_thresholds"`
}

// ThresholdsFor returns the threshold pair for a filing status
func (r SocialSecurityRules) ThresholdsFor(status FilingStatus) TaxThreshold {
	if status == FilingJoint {
		return r.JointThresholds
	}
	return r.OtherThresholds
}

// RMDRules contains the start-age policy and the Uniform Lifetime divisors
type RMDRules struct {
	StartAge        dateutil.RMDPolicy      `yaml:"start_age" json:"start_age"`
	UniformDivisors map[int]decimal.Decimal `yaml:"uniform_divisors" json:"uniform_divisors"`
}

// JurisdictionKind selects the state calculator variant
type JurisdictionKind string

const (
	JurisdictionFlat JurisdictionKind = "flat"
	JurisdictionData JurisdictionKind = "data"
)

// SeniorCredit is an income-capped credit tiered by the number of 65+ filers
type SeniorCredit struct {
	One    decimal.Decimal `yaml:"one" json:"one"`
	Both   decimal.Decimal `yaml:"both" json:"both"`
	AGICap decimal.Decimal `yaml:"agi_cap" json:"agi_cap"`
}

// JurisdictionRules contains the state (and local) rates for one jurisdiction.
// Rates are percentages, 4.75 meaning 4.75%.
type JurisdictionRules struct {
	Name            string                     `yaml:"name" json:"name"`
	Kind            JurisdictionKind           `yaml:"kind" json:"kind"`
	StateRatePct    decimal.Decimal            `yaml:"state_rate_pct" json:"state_rate_pct"`
	LocalRatePct    decimal.Decimal            `yaml:"local_rate_pct" json:"local_rate_pct"`
	Localities      map[string]decimal.Decimal `yaml:"localities,omitempty" json:"localities,omitempty"`
	SeniorDeduction decimal.Decimal            `yaml:"senior_deduction,omitempty" json:"senior_deduction,omitempty"`
	SeniorCredit    *SeniorCredit              `yaml:"senior_credit,omitempty" json:"senior_credit,omitempty"`
}
