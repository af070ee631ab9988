package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	keyQuit    = key.NewBinding(key.WithKeys("ctrl+c", "q"))
	keyRerun   = key.NewBinding(key.WithKeys("r"))
	keySwitch  = key.NewBinding(key.WithKeys("tab", "c"))
	keyUp      = key.NewBinding(key.WithKeys("up", "k"))
	keyDown    = key.NewBinding(key.WithKeys("down", "j"))
	keyToggle  = key.NewBinding(key.WithKeys(" ", "x"))
	keyCompare = key.NewBinding(key.WithKeys("enter"))
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.err = nil
		m.loading = true
		m.loadingMessage = "Running projection..."
		return m, runProjectionCmd(m.engine, m.config)

	case ProjectionCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.setProjection(msg.Table)
		return m, nil

	case ComparisonCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.comparison = msg.Set
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyQuit):
		return m, tea.Quit

	case key.Matches(msg, keyRerun):
		// reload from disk so edits to the file show up
		m.loading = true
		m.loadingMessage = "Reloading configuration..."
		m.comparison = nil
		return m, loadConfigCmd(m.configPath, m.engine.Rules)

	case key.Matches(msg, keySwitch):
		if m.currentScene == SceneProjection {
			m.currentScene = SceneCompare
		} else {
			m.currentScene = SceneProjection
		}
		return m, nil
	}

	if m.loading || m.err != nil {
		return m, nil
	}

	if m.currentScene == SceneCompare {
		return m.updateCompare(msg)
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

// updateCompare handles template selection on the compare scene
func (m Model) updateCompare(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keyDown):
		if m.cursor < len(m.templates)-1 {
			m.cursor++
		}
	case key.Matches(msg, keyToggle):
		m.selected[m.cursor] = !m.selected[m.cursor]
	case key.Matches(msg, keyCompare):
		specs := m.selectedTemplates()
		if len(specs) == 0 || m.config == nil {
			return m, nil
		}
		m.loading = true
		m.loadingMessage = "Comparing scenarios..."
		return m, runComparisonCmd(m.comparer, m.config, specs)
	}
	return m, nil
}
