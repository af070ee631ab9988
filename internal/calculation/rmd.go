package calculation

import (
	"sort"

	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// RMDCalculator sizes required minimum distributions from the Uniform Lifetime table
type RMDCalculator struct {
	policy   dateutil.RMDPolicy
	divisors map[int]decimal.Decimal
	maxAge   int
}

// NewRMDCalculator creates an RMD calculator from the rule set tables
func NewRMDCalculator(rules domain.RMDRules) *RMDCalculator {
	policy := rules.StartAge
	if len(policy.Bands) == 0 && policy.DefaultAge == 0 {
		policy = dateutil.DefaultRMDPolicy
	}
	ages := make([]int, 0, len(rules.UniformDivisors))
	for age := range rules.UniformDivisors {
		ages = append(ages, age)
	}
	sort.Ints(ages)
	maxAge := 0
	if len(ages) > 0 {
		maxAge = ages[len(ages)-1]
	}
	return &RMDCalculator{policy: policy, divisors: rules.UniformDivisors, maxAge: maxAge}
}

// StartAge returns the age at which distributions begin for a birth year
func (c *RMDCalculator) StartAge(birthYear int) int {
	return c.policy.StartAge(birthYear)
}

// Divisor returns the life expectancy divisor for an age. Ages past the end of
// the table use its last entry.
func (c *RMDCalculator) Divisor(age int) (decimal.Decimal, bool) {
	if c.maxAge > 0 && age > c.maxAge {
		age = c.maxAge
	}
	d, ok := c.divisors[age]
	if !ok || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// RequiredMinimum returns the distribution required this year from an account
// holding priorBalance at the end of last year
func (c *RMDCalculator) RequiredMinimum(priorBalance decimal.Decimal, birthYear, age int) decimal.Decimal {
	if !priorBalance.IsPositive() || age < c.StartAge(birthYear) {
		return decimal.Zero
	}
	d, ok := c.Divisor(age)
	if !ok {
		return decimal.Zero
	}
	return priorBalance.Div(d)
}
