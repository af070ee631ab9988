package tuistyles

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.Zero, "$0"},
		{decimal.NewFromInt(999), "$999"},
		{decimal.NewFromInt(1000), "$1,000"},
		{decimal.NewFromFloat(44357.28), "$44,357"},
		{decimal.NewFromInt(1234567), "$1,234,567"},
		{decimal.NewFromInt(-45000), "-$45,000"},
		{decimal.NewFromFloat(-0.2), "$0"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTrendIndicator(t *testing.T) {
	if TrendIndicator(true) != "↑" || TrendIndicator(false) != "↓" {
		t.Error("unexpected trend arrows")
	}
}
