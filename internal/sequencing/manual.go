package sequencing

import "github.com/shopspring/decimal"

// ManualStrategy withdraws each account's configured annual amount, the same
// every year, clamped to the available balance.
type ManualStrategy struct{}

func NewManualStrategy() *ManualStrategy { return &ManualStrategy{} }

func (s *ManualStrategy) Name() string { return "manual" }

func (s *ManualStrategy) Plan(sources []WithdrawalSource, ctx StrategyContext) WithdrawalPlan {
	plan := WithdrawalPlan{StrategyUsed: s.Name(), Allocations: []WithdrawalAllocation{}}

	requested := decimal.Zero
	for _, src := range sources {
		allocate(&plan, src, src.Configured, ctx)
		requested = requested.Add(plan.Allocations[len(plan.Allocations)-1].Requested)
	}

	plan.Requested = requested
	plan.RemainingNeed = requested.Sub(plan.TotalSourced)
	if plan.RemainingNeed.IsPositive() {
		plan.Notes = append(plan.Notes, "insufficient balances to meet request")
	}
	return plan
}
