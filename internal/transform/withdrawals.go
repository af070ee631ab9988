package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/shopspring/decimal"
)

// SetWithdrawalMode switches between manual and weighted withdrawals
type SetWithdrawalMode struct {
	Mode domain.WithdrawalMode
}

func (swm *SetWithdrawalMode) Name() string {
	return "set_withdrawal_mode"
}

func (swm *SetWithdrawalMode) Description() string {
	return fmt.Sprintf("Use %s withdrawals", swm.Mode)
}

func (swm *SetWithdrawalMode) Validate(base *domain.Configuration) error {
	if swm.Mode != domain.WithdrawalManual && swm.Mode != domain.WithdrawalWeighted {
		return NewTransformError(swm.Name(), "validate", fmt.Sprintf("mode must be manual or weighted, got %q", swm.Mode), nil)
	}
	return requireBase(swm.Name(), base)
}

func (swm *SetWithdrawalMode) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.Clone()
	modified.Inputs.Withdrawals.Mode = swm.Mode
	return modified, nil
}

// SetFixedWithdrawal sets the manual-mode annual withdrawal of one account
type SetFixedWithdrawal struct {
	Account string
	Amount  decimal.Decimal
}

func (sfw *SetFixedWithdrawal) Name() string {
	return "set_fixed_withdrawal"
}

func (sfw *SetFixedWithdrawal) Description() string {
	return fmt.Sprintf("Withdraw $%s a year from %s", sfw.Amount.StringFixed(0), sfw.Account)
}

func (sfw *SetFixedWithdrawal) Validate(base *domain.Configuration) error {
	if sfw.Amount.IsNegative() {
		return NewTransformError(sfw.Name(), "validate", fmt.Sprintf("amount cannot be negative, got %s", sfw.Amount), nil)
	}
	if err := requireBase(sfw.Name(), base); err != nil {
		return err
	}
	if accountIndex(base, sfw.Account) < 0 {
		return NewTransformError(sfw.Name(), "validate", fmt.Sprintf("account %s not found in configuration", sfw.Account), nil)
	}
	return nil
}

func (sfw *SetFixedWithdrawal) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.Clone()
	modified.Inputs.Accounts[accountIndex(modified, sfw.Account)].AnnualWithdrawal = sfw.Amount
	return modified, nil
}

// SetWeightedTarget switches to weighted mode with a new annual total and,
// when given, a new set of class weights
type SetWeightedTarget struct {
	Total   decimal.Decimal
	Weights map[domain.TaxClass]decimal.Decimal
}

func (swt *SetWeightedTarget) Name() string {
	return "set_weighted_target"
}

func (swt *SetWeightedTarget) Description() string {
	desc := fmt.Sprintf("Withdraw $%s a year by tax-class weight", swt.Total.StringFixed(0))
	if len(swt.Weights) == 0 {
		return desc
	}
	parts := make([]string, 0, len(swt.Weights))
	for class, w := range swt.Weights {
		parts = append(parts, fmt.Sprintf("%s=%s", class, w))
	}
	sort.Strings(parts)
	return desc + " (" + strings.Join(parts, ", ") + ")"
}

func (swt *SetWeightedTarget) Validate(base *domain.Configuration) error {
	if swt.Total.IsNegative() {
		return NewTransformError(swt.Name(), "validate", fmt.Sprintf("total cannot be negative, got %s", swt.Total), nil)
	}
	for class, w := range swt.Weights {
		if !class.Valid() {
			return NewTransformError(swt.Name(), "validate", fmt.Sprintf("unknown tax class %q", class), nil)
		}
		if w.IsNegative() {
			return NewTransformError(swt.Name(), "validate", fmt.Sprintf("weight for %s cannot be negative", class), nil)
		}
	}
	return requireBase(swt.Name(), base)
}

func (swt *SetWeightedTarget) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.Clone()
	w := &modified.Inputs.Withdrawals
	w.Mode = domain.WithdrawalWeighted
	w.TotalAnnual = swt.Total
	if len(swt.Weights) > 0 {
		w.Weights = make(map[domain.TaxClass]decimal.Decimal, len(swt.Weights))
		for class, v := range swt.Weights {
			w.Weights[class] = v
		}
	}
	return modified, nil
}

func accountIndex(cfg *domain.Configuration, name string) int {
	for i, a := range cfg.Inputs.Accounts {
		if a.Name == name {
			return i
		}
	}
	return -1
}
