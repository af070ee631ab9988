package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	// Social Security
	registry.Register("delay_ss", createDelaySSClaim)
	registry.Register("set_claim_month", createSetClaimMonth)

	// Withdrawals
	registry.Register("set_withdrawal_mode", createSetWithdrawalMode)
	registry.Register("set_fixed_withdrawal", createSetFixedWithdrawal)
	registry.Register("set_weighted_target", createSetWeightedTarget)

	// Assumptions
	registry.Register("set_return", createSetReturn)
	registry.Register("set_state", createSetState)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "delay_ss:person=primary,age=70"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformChain parses several specs joined with '+', applied left to right.
// Example: "delay_ss:person=primary,age=70+set_state:state=FL"
func (r *TransformRegistry) ParseTransformChain(chain string) ([]ScenarioTransform, error) {
	var out []ScenarioTransform
	for _, spec := range strings.Split(chain, "+") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty transform chain")
	}
	return out, nil
}

// Factory functions for each transform

func personParam(params map[string]string) string {
	if p, ok := params["person"]; ok {
		return strings.ToLower(p)
	}
	return PersonPrimary
}

func createDelaySSClaim(params map[string]string) (ScenarioTransform, error) {
	ageStr, ok := params["age"]
	if !ok {
		return nil, fmt.Errorf("delay_ss requires 'age' parameter")
	}

	age, err := strconv.Atoi(ageStr)
	if err != nil {
		return nil, fmt.Errorf("invalid age value: %w", err)
	}

	return &DelaySSClaim{
		Person: personParam(params),
		NewAge: age,
	}, nil
}

func createSetClaimMonth(params map[string]string) (ScenarioTransform, error) {
	monthStr, ok := params["month"]
	if !ok {
		return nil, fmt.Errorf("set_claim_month requires 'month' parameter")
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return nil, fmt.Errorf("invalid month value: %w", err)
	}

	return &SetClaimMonth{
		Person: personParam(params),
		Month:  month,
	}, nil
}

func createSetWithdrawalMode(params map[string]string) (ScenarioTransform, error) {
	mode, ok := params["mode"]
	if !ok {
		return nil, fmt.Errorf("set_withdrawal_mode requires 'mode' parameter")
	}

	return &SetWithdrawalMode{
		Mode: domain.WithdrawalMode(strings.ToLower(mode)),
	}, nil
}

func createSetFixedWithdrawal(params map[string]string) (ScenarioTransform, error) {
	account, ok := params["account"]
	if !ok {
		return nil, fmt.Errorf("set_fixed_withdrawal requires 'account' parameter")
	}

	amountStr, ok := params["amount"]
	if !ok {
		return nil, fmt.Errorf("set_fixed_withdrawal requires 'amount' parameter")
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid amount value: %w", err)
	}

	return &SetFixedWithdrawal{
		Account: account,
		Amount:  amount,
	}, nil
}

// createSetWeightedTarget reads 'total' plus one optional weight per tax class,
// e.g. "set_weighted_target:total=60000,pre_tax=0.6,brokerage=0.4"
func createSetWeightedTarget(params map[string]string) (ScenarioTransform, error) {
	totalStr, ok := params["total"]
	if !ok {
		return nil, fmt.Errorf("set_weighted_target requires 'total' parameter")
	}

	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid total value: %w", err)
	}

	weights := map[domain.TaxClass]decimal.Decimal{}
	for key, value := range params {
		if key == "total" {
			continue
		}
		class := domain.TaxClass(strings.ToLower(key))
		if !class.Valid() {
			return nil, fmt.Errorf("set_weighted_target: unknown parameter %q", key)
		}
		w, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("invalid weight for %s: %w", key, err)
		}
		weights[class] = w
	}

	return &SetWeightedTarget{
		Total:   total,
		Weights: weights,
	}, nil
}

func createSetReturn(params map[string]string) (ScenarioTransform, error) {
	rateStr, ok := params["rate"]
	if !ok {
		return nil, fmt.Errorf("set_return requires 'rate' parameter")
	}

	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid rate value: %w", err)
	}

	return &SetReturn{
		Account: params["account"],
		Rate:    rate,
	}, nil
}

func createSetState(params map[string]string) (ScenarioTransform, error) {
	state, ok := params["state"]
	if !ok {
		return nil, fmt.Errorf("set_state requires 'state' parameter")
	}

	return &SetState{
		State:  state,
		County: params["county"],
	}, nil
}
