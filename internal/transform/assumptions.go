package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/shopspring/decimal"
)

var minusOne = decimal.NewFromInt(-1)

// SetReturn changes the annual return of one account, or of every account
// when Account is empty
type SetReturn struct {
	Account string
	Rate    decimal.Decimal // 0.05 = 5%
}

func (sr *SetReturn) Name() string {
	return "set_return"
}

func (sr *SetReturn) Description() string {
	target := "all accounts"
	if sr.Account != "" {
		target = sr.Account
	}
	return fmt.Sprintf("Change return on %s to %s%%", target, sr.Rate.Mul(decimal.NewFromInt(100)).StringFixed(1))
}

func (sr *SetReturn) Validate(base *domain.Configuration) error {
	if sr.Rate.LessThanOrEqual(minusOne) {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("rate must be greater than -1, got %s", sr.Rate), nil)
	}
	if err := requireBase(sr.Name(), base); err != nil {
		return err
	}
	if sr.Account != "" && accountIndex(base, sr.Account) < 0 {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("account %s not found in configuration", sr.Account), nil)
	}
	return nil
}

func (sr *SetReturn) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.Clone()
	for i := range modified.Inputs.Accounts {
		if sr.Account == "" || modified.Inputs.Accounts[i].Name == sr.Account {
			modified.Inputs.Accounts[i].ReturnRate = sr.Rate
		}
	}
	return modified, nil
}

// SetState moves the household to another jurisdiction. The county is
// replaced too, since localities belong to one state.
type SetState struct {
	State  string
	County string
}

func (ss *SetState) Name() string {
	return "set_state"
}

func (ss *SetState) Description() string {
	state := strings.ToUpper(strings.TrimSpace(ss.State))
	if county := strings.TrimSpace(ss.County); county != "" {
		return fmt.Sprintf("Move to %s, %s", county, state)
	}
	return fmt.Sprintf("Move to %s", state)
}

func (ss *SetState) Validate(base *domain.Configuration) error {
	if strings.TrimSpace(ss.State) == "" {
		return NewTransformError(ss.Name(), "validate", "state cannot be empty", nil)
	}
	return requireBase(ss.Name(), base)
}

func (ss *SetState) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.Clone()
	modified.Household.State = strings.ToUpper(strings.TrimSpace(ss.State))
	modified.Household.County = strings.TrimSpace(ss.County)
	return modified, nil
}
