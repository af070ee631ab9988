package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/retireright/internal/calculation"
	"github.com/rgehrsitz/retireright/internal/compare"
	"github.com/rgehrsitz/retireright/internal/config"
	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/internal/output"
)

// Model represents the entire application state
type Model struct {
	currentScene Scene

	// Terminal dimensions
	width  int
	height int

	// Configuration and data
	configPath string
	config     *domain.Configuration

	engine   *calculation.ProjectionEngine
	comparer *compare.CompareEngine

	// Projection scene
	projection *domain.ProjectionTable
	grid       table.Model

	// Compare scene
	templates  []string
	selected   map[int]bool
	cursor     int
	comparison *compare.ComparisonSet

	err error

	loading        bool
	loadingMessage string
}

// NewModel creates a new application model. A nil engine uses the embedded rules.
func NewModel(configPath string, engine *calculation.ProjectionEngine) Model {
	if engine == nil {
		engine = calculation.NewProjectionEngine(nil, nil)
	}
	comparer := compare.NewCompareEngine(engine)

	grid := table.New(table.WithFocused(true), table.WithHeight(15))
	grid.SetStyles(gridStyles())

	return Model{
		currentScene:   SceneProjection,
		configPath:     configPath,
		engine:         engine,
		comparer:       comparer,
		grid:           grid,
		templates:      comparer.TemplateRegistry.List(),
		selected:       make(map[int]bool),
		width:          120,
		height:         30,
		loading:        true,
		loadingMessage: "Loading configuration...",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath, m.engine.Rules)
}

// loadConfigCmd returns a command that loads the configuration file
func loadConfigCmd(path string, rules *domain.RegulatoryConfig) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParserWithRules(rules).LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// runProjectionCmd runs the engine off the UI goroutine
func runProjectionCmd(engine *calculation.ProjectionEngine, cfg *domain.Configuration) tea.Cmd {
	return func() tea.Msg {
		t, err := engine.Run(context.Background(), cfg)
		return ProjectionCompleteMsg{Table: t, Err: err}
	}
}

// runComparisonCmd compares the configuration against the chosen templates
func runComparisonCmd(comparer *compare.CompareEngine, cfg *domain.Configuration, specs []string) tea.Cmd {
	return func() tea.Msg {
		set, err := comparer.Compare(context.Background(), cfg, specs)
		return ComparisonCompleteMsg{Set: set, Err: err}
	}
}

// selectedTemplates returns the chosen template names in list order
func (m Model) selectedTemplates() []string {
	var out []string
	for i, name := range m.templates {
		if m.selected[i] {
			out = append(out, name)
		}
	}
	return out
}

// setProjection loads a table into the scrollable grid
func (m *Model) setProjection(t *domain.ProjectionTable) {
	m.projection = t

	header := t.Header()
	rows := make([]table.Row, 0, len(t.Rows))
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, r := range t.Rows {
		cells := output.DisplayCells(t, r)
		for i, c := range cells {
			widths[i] = max(widths[i], len(c))
		}
		rows = append(rows, table.Row(cells))
	}

	cols := make([]table.Column, len(header))
	for i, h := range header {
		cols[i] = table.Column{Title: h, Width: widths[i]}
	}

	// rows must never outnumber columns while the grid re-renders
	m.grid.SetRows(nil)
	m.grid.SetColumns(cols)
	m.grid.SetRows(rows)
	m.grid.GotoTop()
}

// resize fits the grid to the terminal
func (m *Model) resize() {
	m.grid.SetWidth(m.width)
	m.grid.SetHeight(max(5, m.height-12))
}
