package output

import (
	"strconv"

	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal value as currency (basic, no locale separators)
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatWholeCurrency formats a decimal value as whole dollars
func FormatWholeCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(0)
}

// FormatPercentage formats a decimal value as percentage (value already in percent units)
func FormatPercentage(value decimal.Decimal) string {
	return value.StringFixed(2) + "%"
}

// FormatRate formats a fractional rate such as 0.1193 as a percentage
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(rate.Mul(decimal.NewFromInt(100)))
}

// spouseAge renders the optional spouse age column.
func spouseAge(row domain.ProjectionRow) string {
	if row.SpouseAge == nil {
		return ""
	}
	return strconv.Itoa(*row.SpouseAge)
}

// rawCells returns a row's values in Header() order as plain numbers.
func rawCells(table *domain.ProjectionTable, row domain.ProjectionRow) []string {
	cells := []string{
		strconv.Itoa(row.Year),
		strconv.Itoa(row.PrimaryAge),
		spouseAge(row),
		row.SocialSecurity.StringFixed(2),
		row.SSTaxable.StringFixed(2),
		row.OrdinaryIncome.StringFixed(2),
		row.GainsIncome().StringFixed(2),
		row.TotalIncome.StringFixed(2),
		row.StandardDeduction.StringFixed(2),
		row.TaxableIncome.StringFixed(2),
		row.MarginalBracket,
		row.FederalTax.StringFixed(2),
		row.StateTax.StringFixed(2),
		row.TotalTax.StringFixed(2),
		row.EffectiveRate.StringFixed(4),
	}
	for _, name := range table.AccountNames {
		cells = append(cells, row.Balances[name].StringFixed(2))
	}
	return cells
}

// displayCells returns a row's values in Header() order formatted for people.
func displayCells(table *domain.ProjectionTable, row domain.ProjectionRow) []string {
	cells := []string{
		strconv.Itoa(row.Year),
		strconv.Itoa(row.PrimaryAge),
		spouseAge(row),
		FormatWholeCurrency(row.SocialSecurity),
		FormatWholeCurrency(row.SSTaxable),
		FormatWholeCurrency(row.OrdinaryIncome),
		FormatWholeCurrency(row.GainsIncome()),
		FormatWholeCurrency(row.TotalIncome),
		FormatWholeCurrency(row.StandardDeduction),
		FormatWholeCurrency(row.TaxableIncome),
		row.MarginalBracket,
		FormatWholeCurrency(row.FederalTax),
		FormatWholeCurrency(row.StateTax),
		FormatWholeCurrency(row.TotalTax),
		FormatRate(row.EffectiveRate),
	}
	for _, name := range table.AccountNames {
		cells = append(cells, FormatWholeCurrency(row.Balances[name]))
	}
	return cells
}

// DisplayCells exposes the human-formatted cells of a row for other renderers.
func DisplayCells(table *domain.ProjectionTable, row domain.ProjectionRow) []string {
	return displayCells(table, row)
}

// summaryLines returns the lifetime totals printed under human-readable reports.
func summaryLines(table *domain.ProjectionTable) [][2]string {
	return [][2]string{
		{"Rules Version", table.RulesVersion},
		{"Years Projected", strconv.Itoa(len(table.Rows))},
		{"Lifetime Social Security", FormatCurrency(table.LifetimeSocialSecurity())},
		{"Lifetime Taxes", FormatCurrency(table.LifetimeTax())},
		{"Final Balance", FormatCurrency(table.FinalBalance())},
	}
}
