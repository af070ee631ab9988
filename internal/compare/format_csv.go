package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Lifetime Taxes",
		"Lifetime Social Security",
		"Final Balance",
		"First Year Tax",
		"Depletion Year",
		"Tax Diff from Base",
		"SS Diff from Base",
		"Balance Diff from Base",
		"Balance % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.LifetimeTaxes.StringFixed(2),
		result.LifetimeSocialSecurity.StringFixed(2),
		result.FinalBalance.StringFixed(2),
		result.FirstYearTax.StringFixed(2),
		formatInt(result.DepletionYear),
		result.TaxDiffFromBase.StringFixed(2),
		result.SSDiffFromBase.StringFixed(2),
		result.BalanceDiffFromBase.StringFixed(2),
		result.BalancePctFromBase.StringFixed(2),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
