package money

import (
	"github.com/shopspring/decimal"
)

var (
	// Hundred is used to convert between fractions and percentages
	Hundred = decimal.NewFromInt(100)
	// Twelve is the number of months in a year
	Twelve = decimal.NewFromInt(12)
)

// NonNegative clamps an amount at zero
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Clamp limits d to the closed range [lo, hi]
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.LessThan(lo) {
		return lo
	}
	if d.GreaterThan(hi) {
		return hi
	}
	return d
}

// Round rounds to cents, or to whole dollars when whole is true
func Round(d decimal.Decimal, whole bool) decimal.Decimal {
	if whole {
		return d.Round(0)
	}
	return d.Round(2)
}

// Sum adds a list of amounts
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// FromPercent converts a percentage (4.75) into a fraction (0.0475)
func FromPercent(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(Hundred)
}

// Ptr returns a pointer to d
func Ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
