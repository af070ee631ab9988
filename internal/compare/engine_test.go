package compare

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/retireright/internal/config"
	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadHousehold(t *testing.T) *domain.Configuration {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(filepath.Join("..", "..", "testdata", "household.yaml"))
	require.NoError(t, err)
	return cfg
}

func TestCompareEngine_ResolveAlternative(t *testing.T) {
	ce := NewCompareEngine(nil)

	alt, err := ce.ResolveAlternative("DELAY_SS_70")
	require.NoError(t, err)
	assert.Equal(t, "delay_ss_70", alt.Name)
	assert.Len(t, alt.Transforms, 1)

	alt, err = ce.ResolveAlternative("delay_ss:person=spouse,age=70+set_state:state=FL")
	require.NoError(t, err)
	assert.Len(t, alt.Transforms, 2)
	assert.Equal(t, "Change spouse Social Security claim age to 70; Move to FL", alt.Description)

	_, err = ce.ResolveAlternative("no_such_template")
	assert.EqualError(t, err, "template no_such_template not found")

	_, err = ce.ResolveAlternative("bogus:x=1")
	assert.Error(t, err)
}

func TestCompareEngine_Compare(t *testing.T) {
	base := loadHousehold(t)
	ce := NewCompareEngine(nil)

	compSet, err := ce.Compare(context.Background(), base, []string{
		"delay_ss_67",
		"set_state:state=FL",
		"low_returns",
	})
	require.NoError(t, err)

	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, "base", compSet.BaseScenarioName)
	assert.Equal(t, "2025.v1", compSet.RulesVersion)
	require.Len(t, compSet.AlternativeResults, 3)
	assert.Equal(t, "delay_ss_67", compSet.AlternativeResults[0].ScenarioName)
	assert.Equal(t, "set_state:state=FL", compSet.AlternativeResults[1].ScenarioName)

	// Same base run as a standalone projection
	table, err := ce.CalcEngine.Run(context.Background(), base)
	require.NoError(t, err)
	assert.True(t, table.LifetimeTax().Equal(compSet.BaseResult.LifetimeTaxes))
	assert.True(t, table.FinalBalance().Equal(compSet.BaseResult.FinalBalance))

	// Florida has no income tax, so moving there only lowers the bill
	fl := compSet.AlternativeResults[1]
	assert.True(t, fl.TaxDiffFromBase.IsNegative(), "FL tax diff %s", fl.TaxDiffFromBase)
	assert.True(t, fl.SSDiffFromBase.IsZero())

	// Claiming at 67 instead of 70 changes lifetime benefits
	ss67 := compSet.AlternativeResults[0]
	assert.False(t, ss67.SSDiffFromBase.IsZero())

	// Lower returns shrink the estate
	low := compSet.AlternativeResults[2]
	assert.True(t, low.BalanceDiffFromBase.IsNegative())

	for _, alt := range compSet.AlternativeResults {
		assert.True(t, alt.TaxDiffFromBase.Equal(alt.LifetimeTaxes.Sub(compSet.BaseResult.LifetimeTaxes)))
		assert.True(t, alt.BalanceDiffFromBase.Equal(alt.FinalBalance.Sub(compSet.BaseResult.FinalBalance)))
		assert.NotNil(t, alt.Table)
	}
}

func TestCompareEngine_CompareDoesNotMutateBase(t *testing.T) {
	base := loadHousehold(t)
	claimAge := base.Inputs.SocialSecurity.Primary.ClaimAge

	_, err := NewCompareEngine(nil).Compare(context.Background(), base, []string{"delay_ss:age=62", "set_return:rate=0.01"})
	require.NoError(t, err)

	assert.Equal(t, claimAge, base.Inputs.SocialSecurity.Primary.ClaimAge)
	assert.False(t, base.Inputs.Accounts[0].ReturnRate.Equal(decimal.NewFromFloat(0.01)))
}

func TestCompareEngine_TransformFailure(t *testing.T) {
	base := loadHousehold(t)

	_, err := NewCompareEngine(nil).Compare(context.Background(), base, []string{"set_fixed_withdrawal:account=Nope,amount=1"})
	require.Error(t, err)

	var terr *transform.TransformError
	assert.True(t, errors.As(err, &terr))
}

// shortenHorizon passes transform validation but leaves an end year the engine rejects
type shortenHorizon struct{}

func (shortenHorizon) Name() string                              { return "shorten_horizon" }
func (shortenHorizon) Description() string                       { return "End before the start year" }
func (shortenHorizon) Validate(base *domain.Configuration) error { return nil }

func (shortenHorizon) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	out := base.Clone()
	out.Inputs.EndYear = out.Inputs.StartYear - 1
	return out, nil
}

func TestCompareEngine_ProjectionFailure(t *testing.T) {
	base := loadHousehold(t)

	_, err := NewCompareEngine(nil).CompareAlternatives(context.Background(), base, []Alternative{{
		Name:       "broken",
		Transforms: []transform.ScenarioTransform{shortenHorizon{}},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to calculate scenario broken")

	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestCompareEngine_InvalidBase(t *testing.T) {
	base := loadHousehold(t)
	base.Inputs.EndYear = base.Inputs.StartYear - 1

	_, err := NewCompareEngine(nil).Compare(context.Background(), base, []string{"delay_ss_70"})
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "inputs.end_year", verr.Field)

	_, err = NewCompareEngine(nil).Compare(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestCompareEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCompareEngine(nil).Compare(ctx, loadHousehold(t), []string{"delay_ss_70"})
	assert.ErrorIs(t, err, context.Canceled)
}
