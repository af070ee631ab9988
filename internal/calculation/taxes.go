package calculation

import (
	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/pkg/money"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal brackets, deductions and SS thresholds come from the loaded rule
//    set and are applied unchanged to every projection year (no indexing).
//
// 2. Social Security taxability uses one threshold pair for joint filers and a
//    second pair for every other status.
//
// 3. Long-term gains and qualified income are taxed at a single flat rate,
//    stacked on top of the ordinary base.

var (
	ssTierOneRate = decimal.NewFromFloat(0.5)
	ssTierTwoRate = decimal.NewFromFloat(0.85)
)

// FederalTaxCalculator handles federal income tax calculations
type FederalTaxCalculator struct {
	Rules    domain.FederalTaxRules
	SSRules  domain.SocialSecurityRules
	SeniorAt int // age at which the additional deduction applies
}

// NewFederalTaxCalculator creates a federal tax calculator from a rule set
func NewFederalTaxCalculator(rules *domain.RegulatoryConfig) *FederalTaxCalculator {
	return &FederalTaxCalculator{
		Rules:    rules.FederalTax,
		SSRules:  rules.SocialSecurity,
		SeniorAt: 65,
	}
}

// OrdinaryTax applies the graduated brackets to an ordinary-income base and
// returns the tax with the marginal rate label of the highest bracket reached.
func (c *FederalTaxCalculator) OrdinaryTax(taxable decimal.Decimal, status domain.FilingStatus) (decimal.Decimal, string) {
	if !taxable.IsPositive() {
		return decimal.Zero, "0%"
	}

	tax := decimal.Zero
	lower := decimal.Zero
	rate := decimal.Zero
	for _, b := range c.Rules.BracketsFor(status) {
		rate = b.Rate
		if b.Top == nil || taxable.LessThanOrEqual(*b.Top) {
			tax = tax.Add(taxable.Sub(lower).Mul(b.Rate))
			break
		}
		tax = tax.Add(b.Top.Sub(lower).Mul(b.Rate))
		lower = *b.Top
	}
	return tax, RateLabel(rate)
}

// RateLabel formats a fractional rate as a whole percentage label ("22%")
func RateLabel(rate decimal.Decimal) string {
	return rate.Mul(money.Hundred).String() + "%"
}

// SocialSecurityTaxable returns the taxable portion of Social Security under
// the two-threshold provisional income test, capped at 85% of the benefit.
func (c *FederalTaxCalculator) SocialSecurityTaxable(ssTotal, provisional decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if !ssTotal.IsPositive() {
		return decimal.Zero
	}
	th := c.SSRules.ThresholdsFor(status)

	part1 := money.NonNegative(decimal.Min(provisional.Sub(th.Base), th.Adjusted.Sub(th.Base))).Mul(ssTierOneRate)
	part2 := money.NonNegative(provisional.Sub(th.Adjusted)).Mul(ssTierTwoRate)
	return decimal.Min(ssTotal.Mul(ssTierTwoRate), part1.Add(part2))
}

// StandardDeduction returns the base deduction for the filing status plus one
// additional amount per senior. An override replaces the computation entirely.
func (c *FederalTaxCalculator) StandardDeduction(status domain.FilingStatus, seniors int, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return c.Rules.StandardDeduction.For(status).Add(c.Rules.AdditionalDeduction65Plus.Mul(decimal.NewFromInt(int64(seniors))))
}

// CapitalGainsTax taxes the gains base at the flat long-term rate
func (c *FederalTaxCalculator) CapitalGainsTax(gainsBase decimal.Decimal) decimal.Decimal {
	return money.NonNegative(gainsBase).Mul(c.Rules.CapitalGainsRate)
}

// CountSeniors returns how many of the given ages qualify for the senior deduction
func (c *FederalTaxCalculator) CountSeniors(ages ...int) int {
	n := 0
	for _, a := range ages {
		if a >= c.SeniorAt {
			n++
		}
	}
	return n
}

// TaxBases splits total taxable income into ordinary and gains bases.
// Ordinary income fills the deduction first; gains sit on top.
type TaxBases struct {
	AGI      decimal.Decimal
	Taxable  decimal.Decimal
	Ordinary decimal.Decimal
	Gains    decimal.Decimal
}

// SplitTaxBases computes the ordinary and gains bases for a year
func SplitTaxBases(ordinary, gains, ssTaxable, deduction decimal.Decimal) TaxBases {
	agi := ordinary.Add(gains).Add(ssTaxable)
	taxable := money.NonNegative(agi.Sub(deduction))
	ordinaryBase := money.NonNegative(ordinary.Add(ssTaxable).Sub(deduction))
	if ordinaryBase.GreaterThan(taxable) {
		ordinaryBase = taxable
	}
	return TaxBases{
		AGI:      agi,
		Taxable:  taxable,
		Ordinary: ordinaryBase,
		Gains:    taxable.Sub(ordinaryBase),
	}
}
