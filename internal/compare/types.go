package compare

import (
	"fmt"

	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                  `json:"scenarioName"`
	Description  string                  `json:"description"`
	Table        *domain.ProjectionTable `json:"-"`

	// Key Metrics
	LifetimeTaxes          decimal.Decimal `json:"lifetimeTaxes"`
	LifetimeSocialSecurity decimal.Decimal `json:"lifetimeSocialSecurity"`
	FinalBalance           decimal.Decimal `json:"finalBalance"`
	FirstYearTax           decimal.Decimal `json:"firstYearTax"`
	DepletionYear          int             `json:"depletionYear,omitempty"` // first year all balances reach zero

	// Comparison to Base
	TaxDiffFromBase     decimal.Decimal `json:"taxDiffFromBase"`
	SSDiffFromBase      decimal.Decimal `json:"ssDiffFromBase"`
	BalanceDiffFromBase decimal.Decimal `json:"balanceDiffFromBase"`
	BalancePctFromBase  decimal.Decimal `json:"balancePctFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	RulesVersion       string             `json:"rulesVersion"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// MetricsCalculator extracts key metrics from projection tables
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a projection
func (mc *MetricsCalculator) CalculateMetrics(name string, table *domain.ProjectionTable) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:           name,
		Table:                  table,
		LifetimeTaxes:          table.LifetimeTax(),
		LifetimeSocialSecurity: table.LifetimeSocialSecurity(),
		FinalBalance:           table.FinalBalance(),
		DepletionYear:          mc.depletionYear(table),
	}
	if len(table.Rows) > 0 {
		result.FirstYearTax = table.Rows[0].TotalTax
	}
	return result
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TaxDiffFromBase = scenario.LifetimeTaxes.Sub(base.LifetimeTaxes)
	scenario.SSDiffFromBase = scenario.LifetimeSocialSecurity.Sub(base.LifetimeSocialSecurity)
	scenario.BalanceDiffFromBase = scenario.FinalBalance.Sub(base.FinalBalance)

	if !base.FinalBalance.IsZero() {
		scenario.BalancePctFromBase = scenario.BalanceDiffFromBase.
			Div(base.FinalBalance).
			Mul(decimal.NewFromInt(100))
	}

	return scenario
}

// depletionYear returns the first year whose ending balances are all zero,
// or 0 when money remains through the end of the projection
func (mc *MetricsCalculator) depletionYear(table *domain.ProjectionTable) int {
	if len(table.AccountNames) == 0 {
		return 0
	}
	for _, row := range table.Rows {
		total := decimal.Zero
		for _, name := range table.AccountNames {
			total = total.Add(row.Balances[name])
		}
		if total.IsZero() {
			return row.Year
		}
	}
	return 0
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}

	// Find highest ending balance
	bestBalance := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FinalBalance.GreaterThan(bestBalance.FinalBalance) {
			bestBalance = alt
		}
	}

	if bestBalance != compSet.BaseResult {
		diff := bestBalance.FinalBalance.Sub(compSet.BaseResult.FinalBalance)
		recommendations = append(recommendations,
			"Largest Estate: "+bestBalance.ScenarioName+" ends with $"+diff.StringFixed(0)+
				" more than the base scenario")
	}

	// Find most Social Security
	bestSS := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.LifetimeSocialSecurity.GreaterThan(bestSS.LifetimeSocialSecurity) {
			bestSS = alt
		}
	}

	if bestSS != compSet.BaseResult {
		diff := bestSS.LifetimeSocialSecurity.Sub(compSet.BaseResult.LifetimeSocialSecurity)
		recommendations = append(recommendations,
			"Most Social Security: "+bestSS.ScenarioName+" collects $"+diff.StringFixed(0)+
				" more over the projection")
	}

	// Find lowest tax burden
	lowestTax := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.LifetimeTaxes.LessThan(lowestTax.LifetimeTaxes) {
			lowestTax = alt
		}
	}

	if lowestTax != compSet.BaseResult {
		taxSavings := compSet.BaseResult.LifetimeTaxes.Sub(lowestTax.LifetimeTaxes)
		recommendations = append(recommendations,
			"Lowest Taxes: "+lowestTax.ScenarioName+" saves $"+taxSavings.StringFixed(0)+
				" in lifetime taxes")
	}

	// Warn about any scenario that runs out of money
	for _, alt := range compSet.AlternativeResults {
		if alt.DepletionYear > 0 && (compSet.BaseResult.DepletionYear == 0 || alt.DepletionYear < compSet.BaseResult.DepletionYear) {
			recommendations = append(recommendations,
				fmt.Sprintf("Caution: %s exhausts all accounts in %d", alt.ScenarioName, alt.DepletionYear))
		}
	}

	return recommendations
}
