package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNonNegative(t *testing.T) {
	assert.True(t, NonNegative(decimal.NewFromInt(-5)).IsZero())
	assert.True(t, NonNegative(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(5)))
}

func TestClamp(t *testing.T) {
	lo, hi := decimal.Zero, decimal.NewFromInt(10)
	assert.True(t, Clamp(decimal.NewFromInt(-1), lo, hi).Equal(lo))
	assert.True(t, Clamp(decimal.NewFromInt(11), lo, hi).Equal(hi))
	assert.True(t, Clamp(decimal.NewFromInt(4), lo, hi).Equal(decimal.NewFromInt(4)))
}

func TestRound(t *testing.T) {
	v := decimal.RequireFromString("1234.567")
	assert.Equal(t, "1234.57", Round(v, false).StringFixed(2))
	assert.Equal(t, "1235", Round(v, true).String())
}

func TestSumAndPercent(t *testing.T) {
	total := Sum(decimal.NewFromInt(1), decimal.NewFromInt(2), decimal.NewFromInt(3))
	assert.True(t, total.Equal(decimal.NewFromInt(6)))
	assert.True(t, FromPercent(decimal.RequireFromString("4.75")).Equal(decimal.RequireFromString("0.0475")))
}
