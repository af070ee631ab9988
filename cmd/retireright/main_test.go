package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var householdPath = filepath.Join("..", "..", "testdata", "household.yaml")

// run executes the CLI with args against a throwaway SQLite database
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(envDatabaseURL, "")
	if os.Getenv(envDB) == "" {
		t.Setenv(envDB, filepath.Join(t.TempDir(), "runs.db"))
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "retireright", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	registered := map[string]bool{}
	for _, c := range cmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range []string{"calculate", "validate", "compare", "serve", "tui", "jurisdictions", "runs", "version"} {
		assert.True(t, registered[name], "missing command %s", name)
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "calculate")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "retireright dev"))
}

func TestCalculate_Console(t *testing.T) {
	out, err := run(t, "calculate", householdPath)
	require.NoError(t, err)
	assert.Contains(t, out, "RETIREMENT PROJECTION")
	assert.Contains(t, out, "2054")
	assert.Contains(t, out, "Lifetime Taxes:")
}

func TestCalculate_CSV(t *testing.T) {
	out, err := run(t, "calculate", householdPath, "--format", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 31)
	assert.Equal(t, "Year", records[0][0])
	assert.Equal(t, "2025", records[1][0])
}

func TestCalculate_UnknownFormat(t *testing.T) {
	_, err := run(t, "calculate", householdPath, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Try one of:")
}

func TestCalculate_WriteFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	abs, err := filepath.Abs(householdPath)
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, err := run(t, "calculate", abs, "--format", "md", "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote retirement_projection_")

	matches, err := filepath.Glob(filepath.Join(dir, "retirement_projection_*.md"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestCalculate_SaveAndListRuns(t *testing.T) {
	t.Setenv(envDB, filepath.Join(t.TempDir(), "saved.db"))

	out, err := run(t, "calculate", householdPath, "--format", "json", "--save", "--name", "baseline")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved run ")

	out, err = run(t, "runs")
	require.NoError(t, err)
	assert.Contains(t, out, "baseline")
	assert.Contains(t, out, "30 years")
}

func TestRuns_Empty(t *testing.T) {
	t.Setenv(envDB, filepath.Join(t.TempDir(), "empty.db"))
	out, err := run(t, "runs")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved runs")
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", householdPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid: joint, 2025-2054")

	data, err := os.ReadFile(householdPath)
	require.NoError(t, err)
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, bytes.Replace(data, []byte("end_year: 2054"), []byte("end_year: 2000"), 1), 0o644))

	out, err = run(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, out, "Invalid field inputs.end_year")
}

func TestCompare(t *testing.T) {
	out, err := run(t, "compare", householdPath, "--with", "delay_ss_67", "--transform", "set_state:state=FL", "--format", "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, householdPath, decoded["configPath"])
	alts, ok := decoded["alternativeResults"].([]any)
	require.True(t, ok)
	assert.Len(t, alts, 2)
}

func TestCompare_Table(t *testing.T) {
	out, err := run(t, "compare", householdPath, "--with", "delay_ss_70")
	require.NoError(t, err)
	assert.Contains(t, out, "RETIREMENT SCENARIO COMPARISON")
}

func TestCompare_Errors(t *testing.T) {
	_, err := run(t, "compare", householdPath)
	assert.Error(t, err)

	_, err = run(t, "compare")
	assert.Error(t, err)

	_, err = run(t, "compare", householdPath, "--with", "no_such_template")
	assert.Error(t, err)
}

func TestCompare_ListTemplates(t *testing.T) {
	out, err := run(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "delay_ss_70")
}

func TestJurisdictions(t *testing.T) {
	out, err := run(t, "jurisdictions")
	require.NoError(t, err)
	assert.Contains(t, out, "MD")
	assert.Contains(t, out, "Rules version: 2025.v1")

	out, err = run(t, "jurisdictions", "--json")
	require.NoError(t, err)
	var list []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.NotEmpty(t, list)
}

func TestRegulatoryFlag_MissingFile(t *testing.T) {
	_, err := run(t, "calculate", householdPath, "--regulatory", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestTUI_MissingConfig(t *testing.T) {
	_, err := run(t, "tui", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}
