package config

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *domain.Configuration {
	return &domain.Configuration{
		Household: domain.Household{
			FilingStatus:     domain.FilingJoint,
			PrimaryBirthDate: "1960-01-01",
			SpouseBirthDate:  "1962-01-01",
			State:            "MD",
		},
		Inputs: domain.Inputs{
			StartYear: 2025,
			EndYear:   2030,
			Accounts: []domain.Account{
				{Name: "IRA", TaxClass: domain.TaxClassPreTax, StartBalance: decimal.NewFromInt(100000), ReturnRate: decimal.NewFromFloat(0.05)},
				{Name: "Brokerage", TaxClass: domain.TaxClassBrokerage, StartBalance: decimal.NewFromInt(50000),
					ReturnRate: decimal.NewFromFloat(0.06), DividendYield: decimal.NewFromFloat(0.02), RealizeFraction: decimal.NewFromFloat(0.25)},
			},
			Withdrawals: domain.WithdrawalPolicy{Mode: domain.WithdrawalManual},
			SocialSecurity: domain.SocialSecurity{
				Primary: domain.ClaimParams{FRAMonthly: decimal.NewFromInt(2500), ClaimAge: 67, StartMonth: 1},
				Spouse:  &domain.ClaimParams{FRAMonthly: decimal.NewFromInt(1500), ClaimAge: 62, StartMonth: 12},
			},
		},
	}
}

func TestValidateConfiguration_Valid(t *testing.T) {
	assert.NoError(t, ValidateConfiguration(validConfig(), MustDefaultRegulatory()))
}

func TestValidateConfiguration_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *domain.Configuration)
		field  string
	}{
		{"bad filing status", func(c *domain.Configuration) { c.Household.FilingStatus = "widowed" }, "household.filing_status"},
		{"missing dob", func(c *domain.Configuration) { c.Household.PrimaryBirthDate = "" }, "household.primary_dob"},
		{"malformed dob", func(c *domain.Configuration) { c.Household.PrimaryBirthDate = "01/02/1960" }, "household.primary_dob"},
		{"malformed spouse dob", func(c *domain.Configuration) { c.Household.SpouseBirthDate = "1962-13-01" }, "household.spouse_dob"},
		{"missing start year", func(c *domain.Configuration) { c.Inputs.StartYear = 0 }, "inputs.start_year"},
		{"end before start", func(c *domain.Configuration) { c.Inputs.EndYear = 2024 }, "inputs.end_year"},
		{"empty account name", func(c *domain.Configuration) { c.Inputs.Accounts[0].Name = "" }, "inputs.accounts[0].name"},
		{"duplicate account name", func(c *domain.Configuration) { c.Inputs.Accounts[1].Name = "IRA" }, "inputs.accounts[1].name"},
		{"unknown tax class", func(c *domain.Configuration) { c.Inputs.Accounts[0].TaxClass = "annuity" }, "inputs.accounts[0].tax_class"},
		{"negative balance", func(c *domain.Configuration) { c.Inputs.Accounts[0].StartBalance = decimal.NewFromInt(-1) }, "inputs.accounts[0].start_balance"},
		{"return at -100%", func(c *domain.Configuration) { c.Inputs.Accounts[0].ReturnRate = decimal.NewFromInt(-1) }, "inputs.accounts[0].return_rate"},
		{"negative withdrawal", func(c *domain.Configuration) { c.Inputs.Accounts[0].AnnualWithdrawal = decimal.NewFromInt(-5) }, "inputs.accounts[0].annual_withdrawal"},
		{"dividend on pre-tax", func(c *domain.Configuration) { c.Inputs.Accounts[0].DividendYield = decimal.NewFromFloat(0.01) }, "inputs.accounts[0].dividend_yield"},
		{"realize on pre-tax", func(c *domain.Configuration) { c.Inputs.Accounts[0].RealizeFraction = decimal.NewFromFloat(0.1) }, "inputs.accounts[0].realize_fraction"},
		{"dividend above one", func(c *domain.Configuration) { c.Inputs.Accounts[1].DividendYield = decimal.NewFromFloat(1.5) }, "inputs.accounts[1].dividend_yield"},
		{"realize below zero", func(c *domain.Configuration) { c.Inputs.Accounts[1].RealizeFraction = decimal.NewFromFloat(-0.1) }, "inputs.accounts[1].realize_fraction"},
		{"bad mode", func(c *domain.Configuration) { c.Inputs.Withdrawals.Mode = "bucket" }, "inputs.withdrawals.mode"},
		{"negative target", func(c *domain.Configuration) { c.Inputs.Withdrawals.TotalAnnual = decimal.NewFromInt(-1) }, "inputs.withdrawals.total_annual"},
		{"unknown weight class", func(c *domain.Configuration) {
			c.Inputs.Withdrawals.Weights = map[domain.TaxClass]decimal.Decimal{"gold": decimal.NewFromInt(1)}
		}, "inputs.withdrawals.weights"},
		{"negative weight", func(c *domain.Configuration) {
			c.Inputs.Withdrawals.Weights = map[domain.TaxClass]decimal.Decimal{domain.TaxClassRoth: decimal.NewFromInt(-1)}
		}, "inputs.withdrawals.weights.roth"},
		{"cola at -100%", func(c *domain.Configuration) { c.Inputs.SocialSecurity.COLA = decimal.NewFromInt(-1) }, "inputs.social_security.cola"},
		{"claim age 61", func(c *domain.Configuration) { c.Inputs.SocialSecurity.Primary.ClaimAge = 61 }, "inputs.social_security.primary.claim_age"},
		{"claim age 71", func(c *domain.Configuration) { c.Inputs.SocialSecurity.Primary.ClaimAge = 71 }, "inputs.social_security.primary.claim_age"},
		{"claim month 0", func(c *domain.Configuration) { c.Inputs.SocialSecurity.Primary.StartMonth = 0 }, "inputs.social_security.primary.start_month"},
		{"claim month 13", func(c *domain.Configuration) { c.Inputs.SocialSecurity.Spouse.StartMonth = 13 }, "inputs.social_security.spouse.start_month"},
		{"negative fra", func(c *domain.Configuration) { c.Inputs.SocialSecurity.Primary.FRAMonthly = decimal.NewFromInt(-1) }, "inputs.social_security.primary.fra_monthly"},
		{"spouse claim without spouse", func(c *domain.Configuration) { c.Household.SpouseBirthDate = "" }, "inputs.social_security.spouse"},
		{"negative state rate", func(c *domain.Configuration) { c.Inputs.StateRatePct = decimal.NewFromInt(-1) }, "inputs.state_rate_pct"},
		{"negative local rate", func(c *domain.Configuration) { c.Inputs.LocalRatePct = decimal.NewFromInt(-1) }, "inputs.local_rate_pct"},
		{"negative deduction override", func(c *domain.Configuration) {
			c.Inputs.StandardDeductionOverride = money.Ptr(decimal.NewFromInt(-1))
		}, "inputs.standard_deduction_override"},
		{"negative conversion", func(c *domain.Configuration) { c.Inputs.Conversions.Annual = decimal.NewFromInt(-1) }, "inputs.conversions.annual"},
		{"rules version mismatch", func(c *domain.Configuration) { c.Assumptions.RulesVersion = "2019.v1" }, "assumptions.rules_version"},
	}

	rules := MustDefaultRegulatory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := ValidateConfiguration(cfg, rules)
			require.Error(t, err)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "expected a ValidationError, got %T", err)
			assert.Equal(t, tt.field, verr.Field)
			assert.NotEmpty(t, verr.Constraint)
		})
	}
}

func TestValidateConfiguration_EmptyRulesVersionAccepted(t *testing.T) {
	cfg := validConfig()
	cfg.Assumptions.RulesVersion = ""
	assert.NoError(t, ValidateConfiguration(cfg, MustDefaultRegulatory()))
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := validConfig()
	cfg.Household.FilingStatus = "HOH"
	cfg.Inputs.Withdrawals.Mode = ""
	cfg.Inputs.SocialSecurity.Primary = domain.ClaimParams{FRAMonthly: decimal.NewFromInt(1000)}
	cfg.Inputs.SocialSecurity.COLA = decimal.NewFromFloat(0.03)
	off := false
	cfg.Inputs.Accounts[1].Include = &off

	out := Normalize(cfg)

	assert.Equal(t, domain.FilingHeadOfHousehold, out.Household.FilingStatus)
	assert.Equal(t, domain.WithdrawalManual, out.Inputs.Withdrawals.Mode)
	assert.Equal(t, 67, out.Inputs.SocialSecurity.Primary.ClaimAge)
	assert.Equal(t, 1, out.Inputs.SocialSecurity.Primary.StartMonth)
	assert.True(t, decimal.NewFromFloat(0.03).Equal(out.Inputs.SocialSecurity.COLA), "fractional COLA kept")
	assert.Equal(t, []string{"IRA"}, out.AccountNames())

	assert.Len(t, cfg.Inputs.Accounts, 2, "input untouched")
}
