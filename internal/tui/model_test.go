package tui

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var householdPath = filepath.Join("..", "..", "testdata", "household.yaml")

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// step applies msg and runs any returned command synchronously
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	if cmd == nil {
		return nm, nil
	}
	return nm, cmd()
}

// loaded drives the model through config load and the first projection
func loaded(t *testing.T) Model {
	t.Helper()
	m := NewModel(householdPath, nil)
	msg := m.Init()()
	require.IsType(t, ConfigLoadedMsg{}, msg)

	m, msg = step(t, m, msg)
	require.IsType(t, ProjectionCompleteMsg{}, msg)
	m, _ = step(t, m, msg)
	require.NotNil(t, m.projection)
	return m
}

func TestModel_LoadAndProject(t *testing.T) {
	m := loaded(t)

	assert.False(t, m.loading)
	assert.NoError(t, m.err)
	assert.Len(t, m.projection.Rows, 30)
	assert.Len(t, m.grid.Rows(), 30)
	assert.Len(t, m.grid.Columns(), len(m.projection.Header()))

	view := m.View()
	assert.Contains(t, view, "Final Balance")
	assert.Contains(t, view, "Lifetime Taxes")
	assert.Contains(t, view, "Social Security")
}

func TestModel_QuitKeys(t *testing.T) {
	m := loaded(t)
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := m.Update(keyPress(k))
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd(), "key %s", k)
	}
}

func TestModel_RerunReloads(t *testing.T) {
	m := loaded(t)

	m, msg := step(t, m, keyPress("r"))
	assert.True(t, m.loading)
	require.IsType(t, ConfigLoadedMsg{}, msg)

	m, msg = step(t, m, msg)
	m, _ = step(t, m, msg)
	assert.False(t, m.loading)
	assert.Len(t, m.projection.Rows, 30)
}

func TestModel_MissingConfig(t *testing.T) {
	m := NewModel(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	m, _ = step(t, m, m.Init()())

	require.Error(t, m.err)
	assert.Contains(t, m.View(), "Error:")
}

func TestModel_ProjectionError(t *testing.T) {
	m := loaded(t)
	m, _ = step(t, m, ProjectionCompleteMsg{Err: errors.New("boom")})
	assert.EqualError(t, m.err, "boom")
}

func TestModel_CompareScene(t *testing.T) {
	m := loaded(t)

	m, _ = step(t, m, keyPress("tab"))
	assert.Equal(t, SceneCompare, m.currentScene)
	assert.Contains(t, m.View(), "Select alternatives to compare")

	// Enter with nothing selected does nothing
	m, msg := step(t, m, keyPress("enter"))
	assert.Nil(t, msg)

	idx := -1
	for i, name := range m.templates {
		if name == "delay_ss_67" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	for range idx {
		m, _ = step(t, m, keyPress("j"))
	}
	m, _ = step(t, m, keyPress(" "))
	assert.Equal(t, []string{"delay_ss_67"}, m.selectedTemplates())

	m, msg = step(t, m, keyPress("enter"))
	assert.True(t, m.loading)
	require.IsType(t, ComparisonCompleteMsg{}, msg)

	m, _ = step(t, m, msg)
	require.NotNil(t, m.comparison)
	require.Len(t, m.comparison.AlternativeResults, 1)
	assert.Contains(t, m.View(), "delay_ss_67")

	m, _ = step(t, m, keyPress("tab"))
	assert.Equal(t, SceneProjection, m.currentScene)
}

func TestModel_WindowResize(t *testing.T) {
	m := loaded(t)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 200, Height: 40})
	assert.Equal(t, 200, m.width)
	assert.Positive(t, m.grid.Height())
	assert.LessOrEqual(t, m.grid.Height(), 28)
}
