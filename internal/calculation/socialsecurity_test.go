package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestAnnualAtClaim(t *testing.T) {
	fra := decimal.NewFromInt(1000)
	tests := []struct {
		name     string
		claimAge int
		expected float64
	}{
		{"before 62 fails closed", 61, 0},
		{"62 hits the 70% floor", 62, 8400},
		{"63", 63, 9120},
		{"66", 66, 11280},
		{"full retirement age", 67, 12000},
		{"68 earns one credit", 68, 12960},
		{"70 earns three credits", 70, 14880},
		{"credits cap at three years", 72, 14880},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnnualAtClaim(fra, tt.claimAge)
			assert.True(t, dec(tt.expected).Equal(got), "got %s want %v", got, tt.expected)
		})
	}

	assert.True(t, AnnualAtClaim(decimal.Zero, 67).IsZero())
	assert.True(t, AnnualAtClaim(dec(-5), 67).IsZero())
}

func TestAnnualAtClaim_FloorIsExact(t *testing.T) {
	fra := decimal.NewFromInt(2981)
	expected := fra.Mul(decimal.NewFromInt(12)).Mul(dec(0.70))
	assert.True(t, expected.Equal(AnnualAtClaim(fra, 62)))
}

func TestAnnualAtClaim_MonotonicInClaimAge(t *testing.T) {
	for _, fra := range []float64{1, 850.5, 2981, 4873} {
		prev := decimal.Zero
		for age := 62; age <= 70; age++ {
			got := AnnualAtClaim(dec(fra), age)
			assert.True(t, got.GreaterThanOrEqual(prev), "fra %v: age %d gave %s below %s", fra, age, got, prev)
			prev = got
		}
	}
}

func TestBenefitForYear(t *testing.T) {
	base := decimal.NewFromInt(12000)
	cola := dec(0.02)

	assert.True(t, BenefitForYear(2024, 2025, 1, base, cola).IsZero(), "before first year")
	assert.True(t, BenefitForYear(2025, 2025, 1, decimal.Zero, cola).IsZero(), "no base benefit")
	assert.True(t, dec(12000).Equal(BenefitForYear(2025, 2025, 1, base, cola)), "month 1 is a full year")
	assert.True(t, dec(1000).Equal(BenefitForYear(2025, 2025, 12, base, cola)), "month 12 is one month")
	assert.True(t, dec(4000).Equal(BenefitForYear(2025, 2025, 9, base, cola)), "month 9 is four months")
	assert.True(t, dec(12240).Equal(BenefitForYear(2026, 2025, 9, base, cola)), "later years unprorated with COLA")
	assert.True(t, dec(12484.8).Equal(BenefitForYear(2027, 2025, 9, base, cola)))
}

func TestBenefitForYear_ClaimYearProration(t *testing.T) {
	base := dec(44357.28)
	for month := 1; month <= 12; month++ {
		want := base.Mul(decimal.NewFromInt(int64(13 - month))).Div(decimal.NewFromInt(12))
		for _, cola := range []float64{0, 0.025, 0.1} {
			got := BenefitForYear(2030, 2030, month, base, dec(cola))
			assert.True(t, want.Equal(got), "month %d cola %v: got %s want %s", month, cola, got, want)
		}
	}
}

func TestFirstClaimYear(t *testing.T) {
	assert.Equal(t, 2025, FirstClaimYear(1958, 67, 2025))
	assert.Equal(t, 2030, FirstClaimYear(1960, 70, 2025))
	assert.Equal(t, 2020, FirstClaimYear(1958, 62, 2025), "claim already started before the run")
}

func TestClaimant(t *testing.T) {
	c := NewClaimant(decimal.NewFromInt(2981), 70, 1, 1955, 2025)
	assert.Equal(t, 2025, c.FirstYear)
	assert.True(t, dec(44357.28).Equal(c.BaseAnnual))
	assert.True(t, dec(44357.28).Equal(c.BenefitFor(2025, decimal.Zero)))
	assert.True(t, c.BenefitFor(2024, decimal.Zero).IsZero())
}
