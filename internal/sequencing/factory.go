package sequencing

import (
	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/pkg/money"
	"github.com/shopspring/decimal"
)

// CreateStrategy creates a sequencing strategy for a withdrawal policy
func CreateStrategy(policy domain.WithdrawalPolicy) SequencingStrategy {
	switch policy.Mode {
	case domain.WithdrawalWeighted:
		return NewWeightedStrategy()
	default:
		return NewManualStrategy()
	}
}

// CreateStrategyContext creates a StrategyContext for one projection year
func CreateStrategyContext(year int, policy domain.WithdrawalPolicy, enforceRMD bool) StrategyContext {
	return StrategyContext{
		Year:       year,
		NeedAmount: policy.TotalAnnual,
		Weights:    policy.Weights,
		EnforceRMD: enforceRMD,
	}
}

// CreateWithdrawalSources builds sources from the accounts and their current
// balances. pendingRMD may be nil.
func CreateWithdrawalSources(
	accounts []domain.Account,
	balances map[string]decimal.Decimal,
	pendingRMD map[string]decimal.Decimal,
) []WithdrawalSource {
	sources := make([]WithdrawalSource, 0, len(accounts))
	for _, a := range accounts {
		sources = append(sources, WithdrawalSource{
			Name:         a.Name,
			TaxClass:     a.TaxClass,
			Balance:      balances[a.Name],
			Configured:   a.AnnualWithdrawal,
			TaxTreatment: TreatmentFor(a.TaxClass),
			PendingRMD:   pendingRMD[a.Name],
		})
	}
	return sources
}

// allocate clamps a request to the source balance, applies the RMD floor when
// enforced, and records the allocation on the plan
func allocate(plan *WithdrawalPlan, src WithdrawalSource, requested decimal.Decimal, ctx StrategyContext) {
	if requested.IsNegative() {
		requested = decimal.Zero
	}
	alloc := WithdrawalAllocation{Source: src.Name, TaxClass: src.TaxClass, Requested: requested}
	if ctx.EnforceRMD && src.PendingRMD.GreaterThan(requested) {
		alloc.Requested = src.PendingRMD
		alloc.RMDFloorApplied = true
	}

	withdraw := money.Clamp(alloc.Requested, decimal.Zero, decimal.Max(src.Balance, decimal.Zero))
	alloc.Gross = withdraw

	if src.TaxTreatment == OrdinaryIncome {
		alloc.OrdinaryPortion = withdraw
	}

	plan.Allocations = append(plan.Allocations, alloc)
	plan.TotalSourced = plan.TotalSourced.Add(withdraw)
	plan.OrdinarySourced = plan.OrdinarySourced.Add(alloc.OrdinaryPortion)
}
