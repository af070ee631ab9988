package sequencing

import (
	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxTreatment represents how a withdrawal from a source is taxed
// Ordinary: fully taxable as ordinary income (pre-tax accounts)
// TaxFree: no current year tax impact (Roth, HSA, cash)
// CapitalGains: brokerage; the withdrawal itself is basis-neutral, gains are
// recognized separately through the account's realize fraction
type TaxTreatment int

const (
	TaxFree TaxTreatment = iota
	OrdinaryIncome
	CapitalGains
)

func (tt TaxTreatment) String() string {
	switch tt {
	case TaxFree:
		return "tax_free"
	case OrdinaryIncome:
		return "ordinary"
	case CapitalGains:
		return "capital_gains"
	default:
		return "unknown"
	}
}

// TreatmentFor maps an account tax class onto its withdrawal treatment
func TreatmentFor(tc domain.TaxClass) TaxTreatment {
	switch tc {
	case domain.TaxClassPreTax:
		return OrdinaryIncome
	case domain.TaxClassBrokerage:
		return CapitalGains
	default:
		return TaxFree
	}
}

// WithdrawalSource is one account available for withdrawal this year
// Name: account name (unique within a run)
// TaxClass: the account's classification
// Balance: balance at the start of the year
// Configured: the account's fixed annual withdrawal (manual mode)
// PendingRMD: required minimum distribution for this year (zero when none applies)
type WithdrawalSource struct {
	Name         string
	TaxClass     domain.TaxClass
	Balance      decimal.Decimal
	Configured   decimal.Decimal
	TaxTreatment TaxTreatment
	PendingRMD   decimal.Decimal
}

// WithdrawalAllocation captures the withdrawal decided for one source
// Requested: amount the strategy asked for before clamping to balance
// Gross: amount actually withdrawn
// OrdinaryPortion: amount treated as ordinary income
type WithdrawalAllocation struct {
	Source          string
	TaxClass        domain.TaxClass
	Requested       decimal.Decimal
	Gross           decimal.Decimal
	OrdinaryPortion decimal.Decimal
	RMDFloorApplied bool
}

// WithdrawalPlan aggregates one year's allocations
// Requested: total the strategy attempted to source
// TotalSourced: sum of Gross across allocations
// RemainingNeed: unmet portion when balances are insufficient
// OrdinarySourced: sum of OrdinaryPortion across allocations
// ClassTargets: per-class target (weighted mode only)
type WithdrawalPlan struct {
	Requested       decimal.Decimal
	Allocations     []WithdrawalAllocation
	TotalSourced    decimal.Decimal
	RemainingNeed   decimal.Decimal
	OrdinarySourced decimal.Decimal
	ClassTargets    map[domain.TaxClass]decimal.Decimal
	Notes           []string
	StrategyUsed    string
}

// AmountFor returns the gross withdrawal planned for a source
func (p WithdrawalPlan) AmountFor(source string) decimal.Decimal {
	for _, a := range p.Allocations {
		if a.Source == source {
			return a.Gross
		}
	}
	return decimal.Zero
}

// StrategyContext provides inputs required by sequencing strategies
// Year: the projection year being planned
// NeedAmount: total annual target (weighted mode)
// Weights: per-class weights, normalized by the strategy
// EnforceRMD: raise pre-tax requests to their pending RMD
type StrategyContext struct {
	Year       int
	NeedAmount decimal.Decimal
	Weights    map[domain.TaxClass]decimal.Decimal
	EnforceRMD bool
}

// SequencingStrategy defines the interface for withdrawal allocation algorithms
type SequencingStrategy interface {
	Name() string
	Plan(sources []WithdrawalSource, ctx StrategyContext) WithdrawalPlan
}
