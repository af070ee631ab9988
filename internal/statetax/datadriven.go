package statetax

import (
	"strings"

	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/pkg/money"
	"github.com/shopspring/decimal"
)

// DataDriven computes tax from a jurisdiction table: a state rate, a local
// rate per locality, a per-senior deduction from AGI and an income-capped
// senior credit tiered by how many filers are 65 or older.
type DataDriven struct {
	Code  string
	Rules domain.JurisdictionRules
}

// NewDataDriven creates a data-driven calculator for one jurisdiction
func NewDataDriven(code string, rules domain.JurisdictionRules) *DataDriven {
	return &DataDriven{Code: code, Rules: rules}
}

func (d *DataDriven) Name() string { return d.Code }

// LocalRatePct returns the locality's rate, or the jurisdiction default when
// the county is blank or not listed
func (d *DataDriven) LocalRatePct(county string) decimal.Decimal {
	key := strings.ToLower(strings.TrimSpace(county))
	if key != "" {
		if rate, ok := d.Rules.Localities[key]; ok {
			return rate
		}
	}
	return d.Rules.LocalRatePct
}

// SeniorCredit returns the credit for the household, zero when disabled or
// when AGI is at or above the cap
func (d *DataDriven) SeniorCredit(in Input) decimal.Decimal {
	sc := d.Rules.SeniorCredit
	if !in.SeniorCreditOn || sc == nil {
		return decimal.Zero
	}
	if sc.AGICap.IsPositive() && in.AGI.GreaterThanOrEqual(sc.AGICap) {
		return decimal.Zero
	}
	switch seniors := in.Seniors(); {
	case seniors >= 2:
		return sc.Both
	case seniors == 1:
		return sc.One
	default:
		return decimal.Zero
	}
}

func (d *DataDriven) Compute(in Input) Result {
	seniors := decimal.NewFromInt(int64(in.Seniors()))
	taxable := money.NonNegative(in.AGI.Sub(d.Rules.SeniorDeduction.Mul(seniors)))

	stateRate := money.FromPercent(d.Rules.StateRatePct)
	localRate := money.FromPercent(d.LocalRatePct(in.County))
	gross := taxable.Mul(stateRate.Add(localRate))
	total := money.NonNegative(gross.Sub(d.SeniorCredit(in)))

	// The credit is taken against the state share first
	local := decimal.Min(taxable.Mul(localRate), total)
	return Result{StateTax: total.Sub(local), LocalTax: local}
}
