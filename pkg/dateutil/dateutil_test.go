package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeInYear(t *testing.T) {
	tests := []struct {
		name      string
		birthYear int
		startYear int
		year      int
		expected  int
	}{
		{"start year", 1959, 2025, 2025, 66},
		{"later year", 1959, 2025, 2034, 75},
		{"spouse", 1961, 2025, 2030, 69},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AgeInYear(tt.birthYear, tt.startYear, tt.year))
		})
	}
}

func TestRMDStartAge(t *testing.T) {
	tests := []struct {
		birthYear int
		expected  int
	}{
		{1945, 72},
		{1950, 72},
		{1951, 73},
		{1955, 73},
		{1959, 73},
		{1960, 75},
		{1975, 75},
	}

	for _, tt := range tests {
		dob := time.Date(tt.birthYear, 6, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, tt.expected, RMDStartAge(dob), "birth year %d", tt.birthYear)
	}
}

func TestRMDPolicy_CustomTable(t *testing.T) {
	policy := RMDPolicy{
		Bands:      []RMDBand{{MinBirthYear: 1970, Age: 77}},
		DefaultAge: 74,
	}

	assert.Equal(t, 77, policy.StartAge(1971))
	assert.Equal(t, 74, policy.StartAge(1965))
	assert.Equal(t, 72, RMDPolicy{}.StartAge(1940), "empty policy falls back to the default age")
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 1959-12-31 ")
	require.NoError(t, err)
	assert.Equal(t, 1959, d.Year())
	assert.Equal(t, time.December, d.Month())

	_, err = ParseDate("12/31/1959")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}
