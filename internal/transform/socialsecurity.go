package transform

import (
	"fmt"

	"github.com/rgehrsitz/retireright/internal/config"
	"github.com/rgehrsitz/retireright/internal/domain"
)

// Person names which household member a Social Security transform targets
const (
	PersonPrimary = "primary"
	PersonSpouse  = "spouse"
)

// claimFor returns the claim a transform should edit on a cloned configuration
func claimFor(cfg *domain.Configuration, person string) *domain.ClaimParams {
	if person == PersonSpouse {
		return cfg.Inputs.SocialSecurity.Spouse
	}
	return &cfg.Inputs.SocialSecurity.Primary
}

func validatePerson(name string, base *domain.Configuration, person string) error {
	switch person {
	case PersonPrimary:
		return nil
	case PersonSpouse:
		if base.Inputs.SocialSecurity.Spouse == nil {
			return NewTransformError(name, "validate", "spouse has no Social Security claim", nil)
		}
		return nil
	default:
		return NewTransformError(name, "validate", fmt.Sprintf("person must be %q or %q, got %q", PersonPrimary, PersonSpouse, person), nil)
	}
}

// DelaySSClaim changes the Social Security claiming age for one person.
// Each year past 67 adds 8% to the benefit, up to age 70.
type DelaySSClaim struct {
	Person string // primary | spouse
	NewAge int    // 62-70
}

func (dss *DelaySSClaim) Name() string {
	return "delay_ss"
}

func (dss *DelaySSClaim) Description() string {
	return fmt.Sprintf("Change %s Social Security claim age to %d", dss.Person, dss.NewAge)
}

func (dss *DelaySSClaim) Validate(base *domain.Configuration) error {
	if dss.NewAge < config.MinClaimAge || dss.NewAge > config.MaxClaimAge {
		return NewTransformError(dss.Name(), "validate",
			fmt.Sprintf("SS claim age must be between %d and %d, got %d", config.MinClaimAge, config.MaxClaimAge, dss.NewAge), nil)
	}
	if err := requireBase(dss.Name(), base); err != nil {
		return err
	}
	return validatePerson(dss.Name(), base, dss.Person)
}

func (dss *DelaySSClaim) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.Clone()
	claimFor(modified, dss.Person).ClaimAge = dss.NewAge
	return modified, nil
}

// SetClaimMonth changes the calendar month benefits begin in the claim year
type SetClaimMonth struct {
	Person string
	Month  int // 1-12
}

func (scm *SetClaimMonth) Name() string {
	return "set_claim_month"
}

func (scm *SetClaimMonth) Description() string {
	return fmt.Sprintf("Start %s Social Security in month %d of the claim year", scm.Person, scm.Month)
}

func (scm *SetClaimMonth) Validate(base *domain.Configuration) error {
	if scm.Month < 1 || scm.Month > 12 {
		return NewTransformError(scm.Name(), "validate", fmt.Sprintf("month must be between 1 and 12, got %d", scm.Month), nil)
	}
	if err := requireBase(scm.Name(), base); err != nil {
		return err
	}
	return validatePerson(scm.Name(), base, scm.Person)
}

func (scm *SetClaimMonth) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.Clone()
	claimFor(modified, scm.Person).StartMonth = scm.Month
	return modified, nil
}
