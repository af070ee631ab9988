package calculation

import (
	"github.com/rgehrsitz/retireright/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	// FullRetirementAge is the age at which the unadjusted benefit is paid
	FullRetirementAge = 67
	// EarliestClaimAge is the first age at which benefits can start
	EarliestClaimAge = 62
	// maxDelayYears caps delayed retirement credits at age 70
	maxDelayYears = 3
)

var (
	delayCreditPerYear  = decimal.NewFromFloat(0.08)
	earlyReductionPerYr = decimal.NewFromFloat(0.06)
	earlyClaimFloor     = decimal.NewFromFloat(0.70)
)

// AnnualAtClaim converts a full-retirement-age monthly benefit into the annual
// benefit for a given claiming age. Delay adds 8% per year up to three years;
// early claiming removes 6% per year, floored at 70% of the FRA amount.
// A non-positive benefit or a claim before 62 yields zero.
func AnnualAtClaim(fraMonthly decimal.Decimal, claimAge int) decimal.Decimal {
	if !fraMonthly.IsPositive() || claimAge < EarliestClaimAge {
		return decimal.Zero
	}
	annual := fraMonthly.Mul(money.Twelve)

	if claimAge >= FullRetirementAge {
		years := claimAge - FullRetirementAge
		if years > maxDelayYears {
			years = maxDelayYears
		}
		factor := decimal.NewFromInt(1).Add(delayCreditPerYear.Mul(decimal.NewFromInt(int64(years))))
		return annual.Mul(factor)
	}

	factor := decimal.NewFromInt(1).Sub(earlyReductionPerYr.Mul(decimal.NewFromInt(int64(FullRetirementAge - claimAge))))
	return annual.Mul(decimal.Max(earlyClaimFloor, factor))
}

// BenefitForYear returns the benefit paid in a calendar year. The claim year is
// prorated from the start month through December; later years compound COLA.
func BenefitForYear(year, firstYear, startMonth int, baseAnnual, cola decimal.Decimal) decimal.Decimal {
	if year < firstYear || !baseAnnual.IsPositive() {
		return decimal.Zero
	}
	k := year - firstYear
	full := baseAnnual
	if k > 0 {
		full = baseAnnual.Mul(decimal.NewFromInt(1).Add(cola).Pow(decimal.NewFromInt(int64(k))))
	}
	if year > firstYear {
		return full
	}

	months := 13 - startMonth
	if months < 0 {
		months = 0
	}
	if months > 12 {
		months = 12
	}
	return full.Mul(decimal.NewFromInt(int64(months))).Div(money.Twelve)
}

// FirstClaimYear returns the first calendar year of benefits for someone born in
// birthYear who claims at claimAge, relative to the run's start year.
func FirstClaimYear(birthYear, claimAge, startYear int) int {
	return startYear + (claimAge - (startYear - birthYear))
}

// Claimant bundles one person's derived claim values for a run
type Claimant struct {
	BaseAnnual decimal.Decimal
	FirstYear  int
	StartMonth int
}

// NewClaimant derives the annual benefit and first payment year for a claim
func NewClaimant(fraMonthly decimal.Decimal, claimAge, startMonth, birthYear, startYear int) Claimant {
	return Claimant{
		BaseAnnual: AnnualAtClaim(fraMonthly, claimAge),
		FirstYear:  FirstClaimYear(birthYear, claimAge, startYear),
		StartMonth: startMonth,
	}
}

// BenefitFor returns the claimant's benefit for a projection year
func (c Claimant) BenefitFor(year int, cola decimal.Decimal) decimal.Decimal {
	return BenefitForYear(year, c.FirstYear, c.StartMonth, c.BaseAnnual, cola)
}
