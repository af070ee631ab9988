package statetax

import (
	"testing"

	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func marylandRules() domain.JurisdictionRules {
	return domain.JurisdictionRules{
		Name:         "Maryland",
		Kind:         domain.JurisdictionData,
		StateRatePct: d(4.75),
		LocalRatePct: d(3.20),
		Localities: map[string]decimal.Decimal{
			"worcester": d(2.25),
		},
		SeniorDeduction: d(1000),
		SeniorCredit:    &domain.SeniorCredit{One: d(1000), Both: d(1750), AGICap: d(150000)},
	}
}

func TestInput_Seniors(t *testing.T) {
	assert.Equal(t, 0, Input{}.Seniors())
	assert.Equal(t, 1, Input{Ages: []int{65, 64}}.Seniors())
	assert.Equal(t, 2, Input{Ages: []int{70, 66}}.Seniors())
}

func TestFlatRate_Compute(t *testing.T) {
	f := NewFlatRate("PA", d(3.07), d(1))

	res := f.Compute(Input{TaxableIncome: d(100000)})
	assert.True(t, d(3070).Equal(res.StateTax))
	assert.True(t, d(1000).Equal(res.LocalTax))
	assert.True(t, d(4070).Equal(res.Total()))

	neg := f.Compute(Input{TaxableIncome: d(-5000)})
	assert.True(t, neg.Total().IsZero(), "negative income clamps to zero")

	assert.Equal(t, "PA", f.Name())
	assert.Equal(t, "flat", NewFlatRate("", d(0), d(0)).Name())
}

func TestDataDriven_Compute(t *testing.T) {
	md := NewDataDriven("MD", marylandRules())

	tests := []struct {
		name      string
		in        Input
		wantState float64
		wantLocal float64
	}{
		{
			name:      "no seniors, default locality",
			in:        Input{AGI: d(100000), Ages: []int{60, 58}, SeniorCreditOn: true},
			wantState: 4750,
			wantLocal: 3200,
		},
		{
			name: "listed locality",
			in:   Input{AGI: d(100000), Ages: []int{60}, County: " Worcester "},
			// 100000 * 4.75% and 2.25%
			wantState: 4750,
			wantLocal: 2250,
		},
		{
			name: "one senior with credit",
			in:   Input{AGI: d(100000), Ages: []int{66, 60}, SeniorCreditOn: true},
			// taxable 99000; gross 99000*7.95% = 7870.50; less 1000 credit = 6870.50; local 3168
			wantState: 3702.5,
			wantLocal: 3168,
		},
		{
			name: "both seniors with credit",
			in:   Input{AGI: d(100000), Ages: []int{70, 68}, SeniorCreditOn: true},
			// taxable 98000; gross 7791; less 1750 = 6041; local 3136
			wantState: 2905,
			wantLocal: 3136,
		},
		{
			name: "credit switched off",
			in:   Input{AGI: d(100000), Ages: []int{70, 68}, SeniorCreditOn: false},
			// taxable 98000; gross 7791
			wantState: 4655,
			wantLocal: 3136,
		},
		{
			name: "AGI at cap gets no credit",
			in:   Input{AGI: d(150000), Ages: []int{70}, SeniorCreditOn: true},
			// taxable 149000; state 7077.50; local 4768
			wantState: 7077.5,
			wantLocal: 4768,
		},
		{
			name:      "credit larger than tax clamps at zero",
			in:        Input{AGI: d(15000), Ages: []int{70, 70}, SeniorCreditOn: true},
			wantState: 0,
			wantLocal: 0,
		},
		{
			name:      "deduction larger than AGI",
			in:        Input{AGI: d(1500), Ages: []int{70, 70}},
			wantState: 0,
			wantLocal: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := md.Compute(tt.in)
			assert.True(t, d(tt.wantState).Equal(res.StateTax), "state: got %s want %v", res.StateTax, tt.wantState)
			assert.True(t, d(tt.wantLocal).Equal(res.LocalTax), "local: got %s want %v", res.LocalTax, tt.wantLocal)
			assert.False(t, res.StateTax.IsNegative())
			assert.False(t, res.LocalTax.IsNegative())
		})
	}
}

func TestDataDriven_CreditEatsIntoLocalOnlyAfterState(t *testing.T) {
	rules := marylandRules()
	rules.SeniorCredit = &domain.SeniorCredit{One: d(5000), Both: d(5000), AGICap: d(0)}
	md := NewDataDriven("MD", rules)

	// taxable 49000; gross 3895.50 less 5000 clamps to 0
	res := md.Compute(Input{AGI: d(50000), Ages: []int{70}, SeniorCreditOn: true})
	assert.True(t, res.Total().IsZero())

	// taxable 99000; gross 7870.50 - 5000 = 2870.50; local 3168 capped at total
	res = md.Compute(Input{AGI: d(100000), Ages: []int{70}, SeniorCreditOn: true})
	assert.True(t, d(2870.5).Equal(res.LocalTax))
	assert.True(t, res.StateTax.IsZero())
}

func TestRegistry(t *testing.T) {
	rules := &domain.RegulatoryConfig{
		Jurisdictions: map[string]domain.JurisdictionRules{
			"MD": marylandRules(),
			"pa": {Name: "Pennsylvania", Kind: domain.JurisdictionFlat, StateRatePct: d(3.07)},
		},
	}
	reg := NewRegistry(rules)

	c, ok := reg.Lookup("md")
	require.True(t, ok)
	assert.IsType(t, &DataDriven{}, c)

	c, ok = reg.Lookup("PA")
	require.True(t, ok)
	assert.IsType(t, &FlatRate{}, c)

	_, ok = reg.Lookup("ZZ")
	assert.False(t, ok)

	fallback := reg.Resolve("zz", d(5), d(1))
	assert.Equal(t, "ZZ", fallback.Name())
	res := fallback.Compute(Input{TaxableIncome: d(1000)})
	assert.True(t, d(50).Equal(res.StateTax))
	assert.True(t, d(10).Equal(res.LocalTax))

	zero := reg.Resolve("", decimal.Zero, decimal.Zero)
	assert.True(t, zero.Compute(Input{TaxableIncome: d(1000)}).Total().IsZero(), "unknown code taxes at zero by default")

	list := reg.Jurisdictions()
	require.Len(t, list, 2)
	assert.Equal(t, "MD", list[0].Code)
	assert.Equal(t, []string{"worcester"}, list[0].Localities)
	assert.Equal(t, "PA", list[1].Code)
}

func TestNewRegistry_NilRules(t *testing.T) {
	reg := NewRegistry(nil)
	assert.Empty(t, reg.Jurisdictions())
	assert.NotNil(t, reg.Resolve("MD", decimal.Zero, decimal.Zero))
}
