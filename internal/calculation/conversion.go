package calculation

import (
	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/pkg/money"
	"github.com/shopspring/decimal"
)

// ConversionMove transfers an amount between two accounts before the year's
// withdrawals. Moving money out of a pre-tax account into any other class is
// taxed as ordinary income.
type ConversionMove struct {
	From   string
	To     string
	Amount decimal.Decimal
}

// ConversionContext is the read-only view handed to a ConversionPolicy
type ConversionContext struct {
	Year      int
	YearIndex int
	Config    *domain.Configuration
	Balances  map[string]decimal.Decimal
}

// ConversionPolicy decides Roth conversions for a year. The engine invokes it
// exactly once per projection year.
type ConversionPolicy interface {
	Name() string
	Plan(ctx ConversionContext) []ConversionMove
}

// NoopConversionPolicy never converts. The conversion settings in a
// configuration are accepted but have no effect under this policy.
type NoopConversionPolicy struct{}

func (NoopConversionPolicy) Name() string                           { return "none" }
func (NoopConversionPolicy) Plan(ConversionContext) []ConversionMove { return nil }

// applyConversions runs the policy and returns the ordinary income it created
func (pe *ProjectionEngine) applyConversions(st *runState, year int) decimal.Decimal {
	in := st.cfg.Inputs
	snapshot := make(map[string]decimal.Decimal, len(st.balances))
	for k, v := range st.balances {
		snapshot[k] = v
	}
	moves := pe.Conversions.Plan(ConversionContext{
		Year:      year,
		YearIndex: year - in.StartYear,
		Config:    st.cfg,
		Balances:  snapshot,
	})

	classOf := make(map[string]domain.TaxClass, len(in.Accounts))
	for _, a := range in.Accounts {
		classOf[a.Name] = a.TaxClass
	}

	income := decimal.Zero
	for _, m := range moves {
		fromClass, okFrom := classOf[m.From]
		_, okTo := classOf[m.To]
		if !okFrom || !okTo || m.From == m.To {
			pe.Logger.Warnf("%d: %s ignored conversion %q -> %q", year, pe.Conversions.Name(), m.From, m.To)
			continue
		}
		amount := decimal.Min(money.NonNegative(m.Amount), st.balances[m.From])
		if !amount.IsPositive() {
			continue
		}
		st.balances[m.From] = st.balances[m.From].Sub(amount)
		st.balances[m.To] = st.balances[m.To].Add(amount)
		if fromClass == domain.TaxClassPreTax && classOf[m.To] != domain.TaxClassPreTax {
			income = income.Add(amount)
		}
		pe.Logger.Debugf("%d: converted %s from %s to %s", year, amount.StringFixed(2), m.From, m.To)
	}
	return income
}
