package sequencing

import (
	"fmt"

	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/pkg/money"
	"github.com/shopspring/decimal"
)

// WeightedStrategy splits a single annual target across tax classes by weight,
// then across each class's funded accounts by balance share. A class that
// cannot meet its target leaves the shortfall unmet; nothing spills over to
// other classes.
type WeightedStrategy struct{}

func NewWeightedStrategy() *WeightedStrategy { return &WeightedStrategy{} }

func (s *WeightedStrategy) Name() string { return "weighted" }

// NormalizeWeights scales the weights to sum to one. An all-zero vector is
// divided by one, leaving every class at zero.
func NormalizeWeights(weights map[domain.TaxClass]decimal.Decimal) map[domain.TaxClass]decimal.Decimal {
	sum := decimal.Zero
	for _, w := range weights {
		if w.IsPositive() {
			sum = sum.Add(w)
		}
	}
	if sum.IsZero() {
		sum = decimal.NewFromInt(1)
	}
	out := make(map[domain.TaxClass]decimal.Decimal, len(weights))
	for tc, w := range weights {
		if !w.IsPositive() {
			out[tc] = decimal.Zero
			continue
		}
		out[tc] = w.Div(sum)
	}
	return out
}

func (s *WeightedStrategy) Plan(sources []WithdrawalSource, ctx StrategyContext) WithdrawalPlan {
	plan := WithdrawalPlan{
		Requested:    decimal.Max(ctx.NeedAmount, decimal.Zero),
		StrategyUsed: s.Name(),
		Allocations:  []WithdrawalAllocation{},
		ClassTargets: map[domain.TaxClass]decimal.Decimal{},
	}
	weights := NormalizeWeights(ctx.Weights)

	// Funded balance per class and the index of its last funded account, which
	// takes the remainder so rounding never pushes a class over its target.
	classBalance := map[domain.TaxClass]decimal.Decimal{}
	lastFunded := map[domain.TaxClass]int{}
	for i, src := range sources {
		if src.Balance.IsPositive() {
			classBalance[src.TaxClass] = classBalance[src.TaxClass].Add(src.Balance)
			lastFunded[src.TaxClass] = i
		}
	}
	for tc, w := range weights {
		plan.ClassTargets[tc] = plan.Requested.Mul(w)
	}

	assigned := map[domain.TaxClass]decimal.Decimal{}
	for i, src := range sources {
		target := plan.ClassTargets[src.TaxClass]
		request := decimal.Zero
		if src.Balance.IsPositive() && target.IsPositive() {
			if i == lastFunded[src.TaxClass] {
				request = target.Sub(assigned[src.TaxClass])
			} else {
				request = target.Mul(src.Balance).Div(classBalance[src.TaxClass])
			}
			request = money.Clamp(request, decimal.Zero, src.Balance)
			assigned[src.TaxClass] = assigned[src.TaxClass].Add(request)
		}
		allocate(&plan, src, request, ctx)
	}

	// An enforced RMD floor may take a class past its target.
	sourced := map[domain.TaxClass]decimal.Decimal{}
	for _, a := range plan.Allocations {
		sourced[a.TaxClass] = sourced[a.TaxClass].Add(a.Gross)
	}

	plan.RemainingNeed = decimal.Max(plan.Requested.Sub(plan.TotalSourced), decimal.Zero)
	for _, tc := range domain.TaxClasses {
		target := plan.ClassTargets[tc]
		if target.IsPositive() && classBalance[tc].LessThan(target) {
			plan.Notes = append(plan.Notes, fmt.Sprintf("%s target %s exceeds available balance %s",
				tc, target.StringFixed(2), classBalance[tc].StringFixed(2)))
		}
		if sourced[tc].GreaterThan(target) {
			plan.Notes = append(plan.Notes, fmt.Sprintf("%s RMD floor raised withdrawals to %s over target %s",
				tc, sourced[tc].StringFixed(2), target.StringFixed(2)))
		}
	}
	return plan
}
