package statetax

import (
	"github.com/rgehrsitz/retireright/pkg/money"
	"github.com/shopspring/decimal"
)

// FlatRate applies fixed state and local percentages to federal taxable income
type FlatRate struct {
	Code     string
	StatePct decimal.Decimal
	LocalPct decimal.Decimal
}

// NewFlatRate creates a flat-rate calculator. Rates are percentages (3.07 = 3.07%).
func NewFlatRate(code string, statePct, localPct decimal.Decimal) *FlatRate {
	return &FlatRate{Code: code, StatePct: statePct, LocalPct: localPct}
}

func (f *FlatRate) Name() string {
	if f.Code == "" {
		return "flat"
	}
	return f.Code
}

// Compute returns max(0, taxable) * (state + local) / 100
func (f *FlatRate) Compute(in Input) Result {
	base := money.NonNegative(in.TaxableIncome)
	return Result{
		StateTax: base.Mul(money.FromPercent(f.StatePct)),
		LocalTax: base.Mul(money.FromPercent(f.LocalPct)),
	}
}
