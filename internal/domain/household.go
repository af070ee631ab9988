package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FilingStatus is the federal filing status of the household
type FilingStatus string

const (
	FilingJoint           FilingStatus = "joint"
	FilingSingle          FilingStatus = "single"
	FilingSeparate        FilingStatus = "separate"
	FilingHeadOfHousehold FilingStatus = "head_of_household"
)

// filingAliases maps user-facing spellings onto the canonical statuses
var filingAliases = map[string]FilingStatus{
	"joint":                     FilingJoint,
	"mfj":                       FilingJoint,
	"married_filing_jointly":    FilingJoint,
	"single":                    FilingSingle,
	"separate":                  FilingSeparate,
	"mfs":                       FilingSeparate,
	"married_filing_separately": FilingSeparate,
	"head_of_household":         FilingHeadOfHousehold,
	"hoh":                       FilingHeadOfHousehold,
}

// ParseFilingStatus resolves a filing status or one of its aliases (MFJ, MFS, HOH)
func ParseFilingStatus(s string) (FilingStatus, bool) {
	fs, ok := filingAliases[strings.ToLower(strings.TrimSpace(s))]
	return fs, ok
}

// TaxClass determines how an account's cash flows are taxed
type TaxClass string

const (
	TaxClassPreTax    TaxClass = "pre_tax"
	TaxClassRoth      TaxClass = "roth"
	TaxClassHSA       TaxClass = "hsa"
	TaxClassCash      TaxClass = "cash"
	TaxClassBrokerage TaxClass = "brokerage"
)

// TaxClasses lists every classification in a stable order
var TaxClasses = []TaxClass{TaxClassPreTax, TaxClassRoth, TaxClassHSA, TaxClassCash, TaxClassBrokerage}

// Valid reports whether tc is a known classification
func (tc TaxClass) Valid() bool {
	for _, c := range TaxClasses {
		if c == tc {
			return true
		}
	}
	return false
}

// WithdrawalMode selects the withdrawal allocation strategy
type WithdrawalMode string

const (
	WithdrawalManual   WithdrawalMode = "manual"
	WithdrawalWeighted WithdrawalMode = "weighted"
)

// Household is the filer profile. It does not change during a run.
type Household struct {
	FilingStatus     FilingStatus `yaml:"filing_status" json:"filing_status"`
	PrimaryBirthDate string       `yaml:"primary_dob" json:"primary_dob"`
	SpouseBirthDate  string       `yaml:"spouse_dob,omitempty" json:"spouse_dob,omitempty"`
	State            string       `yaml:"state" json:"state"`
	County           string       `yaml:"county,omitempty" json:"county,omitempty"`
}

// HasSpouse reports whether a spouse is part of the household
func (h Household) HasSpouse() bool {
	return strings.TrimSpace(h.SpouseBirthDate) != ""
}

// Account is a single investment or cash account
type Account struct {
	Name             string          `yaml:"name" json:"name"`
	Owner            string          `yaml:"owner,omitempty" json:"owner,omitempty"` // primary | spouse | joint
	TaxClass         TaxClass        `yaml:"tax_class" json:"tax_class"`
	StartBalance     decimal.Decimal `yaml:"start_balance" json:"start_balance"`
	ReturnRate       decimal.Decimal `yaml:"return_rate" json:"return_rate"`
	DividendYield    decimal.Decimal `yaml:"dividend_yield,omitempty" json:"dividend_yield,omitempty"`
	RealizeFraction  decimal.Decimal `yaml:"realize_fraction,omitempty" json:"realize_fraction,omitempty"`
	AnnualWithdrawal decimal.Decimal `yaml:"annual_withdrawal,omitempty" json:"annual_withdrawal,omitempty"`
	Include          *bool           `yaml:"include,omitempty" json:"include,omitempty"`
}

// Included reports whether the account takes part in the projection (default true)
func (a Account) Included() bool {
	return a.Include == nil || *a.Include
}

// OwnedBySpouse reports whether the account belongs to the spouse
func (a Account) OwnedBySpouse() bool {
	return strings.EqualFold(a.Owner, "spouse")
}

// WithdrawalPolicy describes how yearly withdrawals are sized
type WithdrawalPolicy struct {
	Mode        WithdrawalMode               `yaml:"mode" json:"mode"`
	TotalAnnual decimal.Decimal              `yaml:"total_annual,omitempty" json:"total_annual,omitempty"`
	Weights     map[TaxClass]decimal.Decimal `yaml:"weights,omitempty" json:"weights,omitempty"`
}

// ClaimParams describes one person's Social Security claim
type ClaimParams struct {
	FRAMonthly decimal.Decimal `yaml:"fra_monthly" json:"fra_monthly"`
	ClaimAge   int             `yaml:"claim_age" json:"claim_age"`
	StartMonth int             `yaml:"start_month" json:"start_month"`
}

// SocialSecurity holds both claims and the shared COLA
type SocialSecurity struct {
	Primary ClaimParams     `yaml:"primary" json:"primary"`
	Spouse  *ClaimParams    `yaml:"spouse,omitempty" json:"spouse,omitempty"`
	COLA    decimal.Decimal `yaml:"cola" json:"cola"`
}

// Conversions holds Roth conversion parameters. The engine accepts them but
// only a registered ConversionPolicy acts on them.
type Conversions struct {
	Annual decimal.Decimal `yaml:"annual" json:"annual"`
	Years  int             `yaml:"years" json:"years"`
}

// Inputs are the run parameters
type Inputs struct {
	StartYear                 int              `yaml:"start_year" json:"start_year"`
	EndYear                   int              `yaml:"end_year" json:"end_year"`
	Accounts                  []Account        `yaml:"accounts" json:"accounts"`
	Withdrawals               WithdrawalPolicy `yaml:"withdrawals" json:"withdrawals"`
	SocialSecurity            SocialSecurity   `yaml:"social_security" json:"social_security"`
	Conversions               Conversions      `yaml:"conversions,omitempty" json:"conversions,omitempty"`
	EnforceRMD                bool             `yaml:"enforce_rmd,omitempty" json:"enforce_rmd,omitempty"`
	StateRatePct              decimal.Decimal  `yaml:"state_rate_pct,omitempty" json:"state_rate_pct,omitempty"`
	LocalRatePct              decimal.Decimal  `yaml:"local_rate_pct,omitempty" json:"local_rate_pct,omitempty"`
	SeniorCreditOn            *bool            `yaml:"senior_credit_on,omitempty" json:"senior_credit_on,omitempty"`
	StandardDeductionOverride *decimal.Decimal `yaml:"standard_deduction_override,omitempty" json:"standard_deduction_override,omitempty"`
}

// SeniorCredit reports whether senior state credits apply (default true)
func (in Inputs) SeniorCredit() bool {
	return in.SeniorCreditOn == nil || *in.SeniorCreditOn
}

// Assumptions names the rule set in effect and output preferences
type Assumptions struct {
	RulesVersion string `yaml:"rules_version" json:"rules_version"`
	RoundWhole   bool   `yaml:"round_whole,omitempty" json:"round_whole,omitempty"`
}

// Configuration is the immutable snapshot consumed by the projection engine
type Configuration struct {
	Household   Household   `yaml:"household" json:"household"`
	Inputs      Inputs      `yaml:"inputs" json:"inputs"`
	Assumptions Assumptions `yaml:"assumptions" json:"assumptions"`
}

// Clone returns a deep copy so transforms never touch the caller's snapshot
func (c *Configuration) Clone() *Configuration {
	if c == nil {
		return nil
	}
	out := *c
	out.Inputs.Accounts = make([]Account, len(c.Inputs.Accounts))
	for i, a := range c.Inputs.Accounts {
		if a.Include != nil {
			inc := *a.Include
			a.Include = &inc
		}
		out.Inputs.Accounts[i] = a
	}
	if c.Inputs.Withdrawals.Weights != nil {
		out.Inputs.Withdrawals.Weights = make(map[TaxClass]decimal.Decimal, len(c.Inputs.Withdrawals.Weights))
		for k, v := range c.Inputs.Withdrawals.Weights {
			out.Inputs.Withdrawals.Weights[k] = v
		}
	}
	if c.Inputs.SocialSecurity.Spouse != nil {
		sp := *c.Inputs.SocialSecurity.Spouse
		out.Inputs.SocialSecurity.Spouse = &sp
	}
	if c.Inputs.SeniorCreditOn != nil {
		on := *c.Inputs.SeniorCreditOn
		out.Inputs.SeniorCreditOn = &on
	}
	if c.Inputs.StandardDeductionOverride != nil {
		v := *c.Inputs.StandardDeductionOverride
		out.Inputs.StandardDeductionOverride = &v
	}
	return &out
}

// AccountNames returns the account names in configuration order
func (c *Configuration) AccountNames() []string {
	names := make([]string, 0, len(c.Inputs.Accounts))
	for _, a := range c.Inputs.Accounts {
		names = append(names, a.Name)
	}
	return names
}
