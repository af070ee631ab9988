package config

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/pkg/dateutil"
	"github.com/shopspring/decimal"
)

const (
	// FullRetirementAge is the age at which the unadjusted benefit is paid
	FullRetirementAge = 67
	MinClaimAge       = 62
	MaxClaimAge       = 70
)

// Normalize returns a copy of cfg with defaults applied. Accounts marked
// include: false are dropped and a COLA written as a percentage is converted
// to a fraction.
func Normalize(cfg *domain.Configuration) *domain.Configuration {
	out := cfg.Clone()

	if fs, ok := domain.ParseFilingStatus(string(out.Household.FilingStatus)); ok {
		out.Household.FilingStatus = fs
	}
	out.Household.State = strings.ToUpper(strings.TrimSpace(out.Household.State))
	out.Household.County = strings.TrimSpace(out.Household.County)

	accounts := out.Inputs.Accounts[:0]
	for _, a := range out.Inputs.Accounts {
		if !a.Included() {
			continue
		}
		a.Name = strings.TrimSpace(a.Name)
		a.TaxClass = domain.TaxClass(strings.ToLower(strings.TrimSpace(string(a.TaxClass))))
		accounts = append(accounts, a)
	}
	out.Inputs.Accounts = accounts

	if out.Inputs.Withdrawals.Mode == "" {
		out.Inputs.Withdrawals.Mode = domain.WithdrawalManual
	}
	out.Inputs.Withdrawals.Mode = domain.WithdrawalMode(strings.ToLower(string(out.Inputs.Withdrawals.Mode)))

	ss := &out.Inputs.SocialSecurity
	if ss.COLA.GreaterThan(decimal.NewFromInt(1)) {
		ss.COLA = ss.COLA.Div(decimal.NewFromInt(100))
	}
	normalizeClaim(&ss.Primary)
	if ss.Spouse != nil {
		normalizeClaim(ss.Spouse)
	}
	return out
}

func normalizeClaim(c *domain.ClaimParams) {
	if c.ClaimAge == 0 {
		c.ClaimAge = FullRetirementAge
	}
	if c.StartMonth == 0 {
		c.StartMonth = 1
	}
}

// ValidateConfiguration checks a normalized configuration. The first problem
// found is returned as a *domain.ValidationError.
func ValidateConfiguration(cfg *domain.Configuration, rules *domain.RegulatoryConfig) error {
	if err := validateHousehold(cfg.Household); err != nil {
		return err
	}
	if err := validateInputs(cfg); err != nil {
		return err
	}
	if rules != nil && cfg.Assumptions.RulesVersion != "" && cfg.Assumptions.RulesVersion != rules.Metadata.Version {
		return domain.NewValidationError("assumptions.rules_version",
			"%q does not match loaded rule set %q", cfg.Assumptions.RulesVersion, rules.Metadata.Version)
	}
	return nil
}

func validateHousehold(h domain.Household) error {
	if _, ok := domain.ParseFilingStatus(string(h.FilingStatus)); !ok {
		return domain.NewValidationError("household.filing_status",
			"%q must be one of joint, single, separate, head_of_household", h.FilingStatus)
	}
	if strings.TrimSpace(h.PrimaryBirthDate) == "" {
		return domain.NewValidationError("household.primary_dob", "is required")
	}
	if _, err := dateutil.ParseDate(h.PrimaryBirthDate); err != nil {
		return domain.NewValidationError("household.primary_dob", "must be a YYYY-MM-DD date")
	}
	if h.HasSpouse() {
		if _, err := dateutil.ParseDate(h.SpouseBirthDate); err != nil {
			return domain.NewValidationError("household.spouse_dob", "must be a YYYY-MM-DD date")
		}
	}
	return nil
}

func validateInputs(cfg *domain.Configuration) error {
	in := cfg.Inputs
	if in.StartYear <= 0 {
		return domain.NewValidationError("inputs.start_year", "is required")
	}
	if in.EndYear < in.StartYear {
		return domain.NewValidationError("inputs.end_year", "%d is before start_year %d", in.EndYear, in.StartYear)
	}

	seen := make(map[string]bool, len(in.Accounts))
	for i, a := range in.Accounts {
		if err := validateAccount(i, a, seen); err != nil {
			return err
		}
	}

	if err := validateWithdrawals(in.Withdrawals); err != nil {
		return err
	}

	if in.SocialSecurity.COLA.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return domain.NewValidationError("inputs.social_security.cola", "must be greater than -1")
	}
	if err := validateClaim("inputs.social_security.primary", in.SocialSecurity.Primary); err != nil {
		return err
	}
	if in.SocialSecurity.Spouse != nil {
		if !cfg.Household.HasSpouse() {
			return domain.NewValidationError("inputs.social_security.spouse", "requires household.spouse_dob")
		}
		if err := validateClaim("inputs.social_security.spouse", *in.SocialSecurity.Spouse); err != nil {
			return err
		}
	}

	if in.StateRatePct.IsNegative() {
		return domain.NewValidationError("inputs.state_rate_pct", "cannot be negative")
	}
	if in.LocalRatePct.IsNegative() {
		return domain.NewValidationError("inputs.local_rate_pct", "cannot be negative")
	}
	if in.StandardDeductionOverride != nil && in.StandardDeductionOverride.IsNegative() {
		return domain.NewValidationError("inputs.standard_deduction_override", "cannot be negative")
	}
	if in.Conversions.Annual.IsNegative() {
		return domain.NewValidationError("inputs.conversions.annual", "cannot be negative")
	}
	if in.Conversions.Years < 0 {
		return domain.NewValidationError("inputs.conversions.years", "cannot be negative")
	}
	return nil
}

func validateAccount(i int, a domain.Account, seen map[string]bool) error {
	field := func(name string) string { return fmt.Sprintf("inputs.accounts[%d].%s", i, name) }

	if a.Name == "" {
		return domain.NewValidationError(field("name"), "is required")
	}
	if seen[a.Name] {
		return domain.NewValidationError(field("name"), "%q is used by more than one account", a.Name)
	}
	seen[a.Name] = true

	if !a.TaxClass.Valid() {
		return domain.NewValidationError(field("tax_class"),
			"%q must be one of pre_tax, roth, hsa, cash, brokerage", a.TaxClass)
	}
	if a.StartBalance.IsNegative() {
		return domain.NewValidationError(field("start_balance"), "cannot be negative")
	}
	if a.ReturnRate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return domain.NewValidationError(field("return_rate"), "must be greater than -1")
	}
	if a.AnnualWithdrawal.IsNegative() {
		return domain.NewValidationError(field("annual_withdrawal"), "cannot be negative")
	}

	one := decimal.NewFromInt(1)
	if a.TaxClass != domain.TaxClassBrokerage {
		if !a.DividendYield.IsZero() {
			return domain.NewValidationError(field("dividend_yield"), "only applies to brokerage accounts")
		}
		if !a.RealizeFraction.IsZero() {
			return domain.NewValidationError(field("realize_fraction"), "only applies to brokerage accounts")
		}
		return nil
	}
	if a.DividendYield.IsNegative() || a.DividendYield.GreaterThan(one) {
		return domain.NewValidationError(field("dividend_yield"), "must be between 0 and 1")
	}
	if a.RealizeFraction.IsNegative() || a.RealizeFraction.GreaterThan(one) {
		return domain.NewValidationError(field("realize_fraction"), "must be between 0 and 1")
	}
	return nil
}

func validateWithdrawals(w domain.WithdrawalPolicy) error {
	switch w.Mode {
	case domain.WithdrawalManual, domain.WithdrawalWeighted:
	default:
		return domain.NewValidationError("inputs.withdrawals.mode", "%q must be manual or weighted", w.Mode)
	}
	if w.TotalAnnual.IsNegative() {
		return domain.NewValidationError("inputs.withdrawals.total_annual", "cannot be negative")
	}
	for class, weight := range w.Weights {
		if !class.Valid() {
			return domain.NewValidationError("inputs.withdrawals.weights", "unknown tax class %q", class)
		}
		if weight.IsNegative() {
			return domain.NewValidationError(fmt.Sprintf("inputs.withdrawals.weights.%s", class), "cannot be negative")
		}
	}
	return nil
}

func validateClaim(prefix string, c domain.ClaimParams) error {
	if c.FRAMonthly.IsNegative() {
		return domain.NewValidationError(prefix+".fra_monthly", "cannot be negative")
	}
	if c.ClaimAge < MinClaimAge || c.ClaimAge > MaxClaimAge {
		return domain.NewValidationError(prefix+".claim_age", "%d must be between %d and %d", c.ClaimAge, MinClaimAge, MaxClaimAge)
	}
	if c.StartMonth < 1 || c.StartMonth > 12 {
		return domain.NewValidationError(prefix+".start_month", "%d must be between 1 and 12", c.StartMonth)
	}
	return nil
}
