package domain

import (
	"github.com/shopspring/decimal"
)

// Core column names, in output order. Account columns follow them.
const (
	ColYear              = "Year"
	ColPrimaryAge        = "Your Age"
	ColSpouseAge         = "Spouse Age"
	ColSocialSecurity    = "Social Security"
	ColSSTaxable         = "SS Taxable"
	ColOrdinaryIncome    = "Ordinary Income"
	ColGainsIncome       = "Dividends/Gains"
	ColTotalIncome       = "Total Income"
	ColStandardDeduction = "Standard Deduction"
	ColTaxableIncome     = "Taxable Income"
	ColMarginalBracket   = "Marginal Bracket"
	ColFederalTax        = "Federal Tax"
	ColStateTax          = "State Tax"
	ColTotalTax          = "Total Tax"
	ColEffectiveRate     = "Effective Rate"
)

// CoreColumns is the fixed leading column order of every projection table
var CoreColumns = []string{
	ColYear, ColPrimaryAge, ColSpouseAge, ColSocialSecurity, ColSSTaxable,
	ColOrdinaryIncome, ColGainsIncome, ColTotalIncome, ColStandardDeduction,
	ColTaxableIncome, ColMarginalBracket, ColFederalTax, ColStateTax,
	ColTotalTax, ColEffectiveRate,
}

// ProjectionRow is one projection year. Rows are never mutated after creation.
//
// StateTax includes local tax; LocalTax is broken out for reference.
// Dividends are part of OrdinaryIncome; GainsIncome is dividends plus realized gains.
type ProjectionRow struct {
	Year              int                        `json:"year"`
	PrimaryAge        int                        `json:"primary_age"`
	SpouseAge         *int                       `json:"spouse_age,omitempty"`
	SocialSecurity    decimal.Decimal            `json:"social_security"`
	SSTaxable         decimal.Decimal            `json:"ss_taxable"`
	OrdinaryIncome    decimal.Decimal            `json:"ordinary_income"`
	Dividends         decimal.Decimal            `json:"dividends"`
	RealizedGains     decimal.Decimal            `json:"realized_gains"`
	TotalIncome       decimal.Decimal            `json:"total_income"`
	StandardDeduction decimal.Decimal            `json:"standard_deduction"`
	TaxableIncome     decimal.Decimal            `json:"taxable_income"`
	MarginalBracket   string                     `json:"marginal_bracket"`
	FederalOrdinary   decimal.Decimal            `json:"federal_ordinary_tax"`
	FederalGains      decimal.Decimal            `json:"federal_gains_tax"`
	FederalTax        decimal.Decimal            `json:"federal_tax"`
	StateTax          decimal.Decimal            `json:"state_tax"`
	LocalTax          decimal.Decimal            `json:"local_tax"`
	TotalTax          decimal.Decimal            `json:"total_tax"`
	EffectiveRate     decimal.Decimal            `json:"effective_rate"`
	RMDRequired       decimal.Decimal            `json:"rmd_required"`
	Withdrawals       map[string]decimal.Decimal `json:"withdrawals"`
	Balances          map[string]decimal.Decimal `json:"balances"`
}

// GainsIncome returns dividends plus realized capital gains
func (r ProjectionRow) GainsIncome() decimal.Decimal {
	return r.Dividends.Add(r.RealizedGains)
}

// TotalWithdrawals sums the per-account withdrawals of the year
func (r ProjectionRow) TotalWithdrawals() decimal.Decimal {
	total := decimal.Zero
	for _, w := range r.Withdrawals {
		total = total.Add(w)
	}
	return total
}

// ProjectionTable is the tabular output of a run
type ProjectionTable struct {
	RulesVersion string          `json:"rules_version"`
	AccountNames []string        `json:"account_names"`
	Rows         []ProjectionRow `json:"rows"`
}

// Header returns the column order: core columns, then one column per account
func (t *ProjectionTable) Header() []string {
	header := make([]string, 0, len(CoreColumns)+len(t.AccountNames))
	header = append(header, CoreColumns...)
	header = append(header, t.AccountNames...)
	return header
}

// FinalBalance returns the sum of account balances in the last row
func (t *ProjectionTable) FinalBalance() decimal.Decimal {
	if len(t.Rows) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, name := range t.AccountNames {
		total = total.Add(t.Rows[len(t.Rows)-1].Balances[name])
	}
	return total
}

// LifetimeTax sums total tax over every row
func (t *ProjectionTable) LifetimeTax() decimal.Decimal {
	total := decimal.Zero
	for _, r := range t.Rows {
		total = total.Add(r.TotalTax)
	}
	return total
}

// LifetimeSocialSecurity sums Social Security over every row
func (t *ProjectionTable) LifetimeSocialSecurity() decimal.Decimal {
	total := decimal.Zero
	for _, r := range t.Rows {
		total = total.Add(r.SocialSecurity)
	}
	return total
}
