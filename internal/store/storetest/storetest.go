// Package storetest holds the behavior checks every store.Store must pass.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SampleRun returns a small run with one account and two years.
func SampleRun(name string) *store.SavedRun {
	return &store.SavedRun{
		Name: name,
		Config: &domain.Configuration{
			Household: domain.Household{
				FilingStatus:     domain.FilingJoint,
				PrimaryBirthDate: "1960-03-15",
				State:            "MD",
				County:           "Montgomery",
			},
			Inputs: domain.Inputs{
				StartYear: 2025,
				EndYear:   2026,
				Accounts: []domain.Account{{
					Name:         "IRA",
					TaxClass:     domain.TaxClassPreTax,
					StartBalance: decimal.NewFromInt(100000),
					ReturnRate:   decimal.NewFromFloat(0.05),
				}},
			},
			Assumptions: domain.Assumptions{RulesVersion: "2025.v1"},
		},
		Table: &domain.ProjectionTable{
			RulesVersion: "2025.v1",
			AccountNames: []string{"IRA"},
			Rows: []domain.ProjectionRow{
				{Year: 2025, PrimaryAge: 65, MarginalBracket: "0%", Balances: map[string]decimal.Decimal{"IRA": decimal.NewFromInt(105000)}},
				{Year: 2026, PrimaryAge: 66, MarginalBracket: "0%", Balances: map[string]decimal.Decimal{"IRA": decimal.NewFromFloat(110250)}},
			},
		},
	}
}

// Run exercises save, load, list and not-found behavior against s.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("SaveAssignsIDAndTime", func(t *testing.T) {
		run := SampleRun("first")
		require.NoError(t, s.SaveRun(ctx, run))
		assert.NotEqual(t, uuid.Nil, run.ID)
		assert.False(t, run.CreatedAt.IsZero())
	})

	t.Run("GetRoundTrips", func(t *testing.T) {
		run := SampleRun("round trip")
		require.NoError(t, s.SaveRun(ctx, run))

		got, err := s.GetRun(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, run.ID, got.ID)
		assert.Equal(t, "round trip", got.Name)
		assert.True(t, run.CreatedAt.Equal(got.CreatedAt), "created %s vs %s", run.CreatedAt, got.CreatedAt)
		assert.Equal(t, "Montgomery", got.Config.Household.County)
		assert.True(t, got.Config.Inputs.Accounts[0].StartBalance.Equal(decimal.NewFromInt(100000)))
		require.Len(t, got.Table.Rows, 2)
		assert.True(t, got.Table.FinalBalance().Equal(decimal.NewFromInt(110250)))
	})

	t.Run("DuplicateIDRejected", func(t *testing.T) {
		run := SampleRun("dup")
		require.NoError(t, s.SaveRun(ctx, run))
		again := SampleRun("dup again")
		again.ID = run.ID
		assert.Error(t, s.SaveRun(ctx, again))
	})

	t.Run("MissingRunIsNotFound", func(t *testing.T) {
		_, err := s.GetRun(ctx, uuid.New())
		assert.True(t, errors.Is(err, store.ErrNotFound), "got %v", err)
	})

	t.Run("IncompleteRunRejected", func(t *testing.T) {
		assert.Error(t, s.SaveRun(ctx, &store.SavedRun{Name: "empty"}))
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		older := SampleRun("older")
		older.CreatedAt = time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)
		newer := SampleRun("newer")
		newer.CreatedAt = time.Now().UTC().Add(time.Hour).Truncate(time.Microsecond)
		require.NoError(t, s.SaveRun(ctx, older))
		require.NoError(t, s.SaveRun(ctx, newer))

		all, err := s.ListRuns(ctx, 0)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(all), 2)
		want := store.Summarize(newer)
		assert.Equal(t, want.ID, all[0].ID)
		assert.Equal(t, want.Name, all[0].Name)
		assert.Equal(t, 2, all[0].Years)
		assert.Equal(t, "2025.v1", all[0].RulesVersion)
		assert.True(t, want.CreatedAt.Equal(all[0].CreatedAt))

		limited, err := s.ListRuns(ctx, 1)
		require.NoError(t, err)
		require.Len(t, limited, 1)
		assert.Equal(t, newer.ID, limited[0].ID)
	})
}
