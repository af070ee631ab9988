package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/retireright/internal/tui/components"
	"github.com/rgehrsitz/retireright/internal/tui/tuistyles"
)

// gridStyles returns the projection grid styling
func gridStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(tuistyles.ColorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(tuistyles.ColorPrimary)
	return s
}

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = m.renderError()
	case m.loading:
		content = InfoStyle.Render(m.loadingMessage)
	case m.currentScene == SceneCompare:
		content = m.renderCompare()
	default:
		content = m.renderProjection()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("RetireRight - Household Retirement Projection")
	crumb := m.currentScene.String()
	if m.configPath != "" {
		crumb = fmt.Sprintf("%s / %s", crumb, m.configPath)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb), "")
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("↑/↓", "scroll"),
		formatShortcut("tab", "switch view"),
		formatShortcut("r", "re-run"),
		formatShortcut("q", "quit"),
	}
	if m.currentScene == SceneCompare {
		shortcuts = append([]string{
			formatShortcut("space", "select"),
			formatShortcut("enter", "compare"),
		}, shortcuts...)
	}
	return StatusBarStyle.Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderError() string {
	return BorderStyle.Render(ErrorStyle.Render("Error: ") + m.err.Error() + "\n\n" +
		SubtitleStyle.Render("Fix the configuration and press r to reload."))
}

// renderProjection shows lifetime totals above the year grid
func (m Model) renderProjection() string {
	if m.projection == nil {
		return SubtitleStyle.Render("No projection yet")
	}
	t := m.projection
	cards := []*components.MetricCard{
		components.NewMetricCard("Final Balance", t.FinalBalance()),
		components.NewMetricCard("Lifetime Taxes", t.LifetimeTax()),
		components.NewMetricCard("Lifetime Social Security", t.LifetimeSocialSecurity()),
	}
	summary := components.MetricGrid(cards, 3)
	rules := SubtitleStyle.Render(fmt.Sprintf("Rules %s • %d years", t.RulesVersion, len(t.Rows)))
	return lipgloss.JoinVertical(lipgloss.Left, summary, rules, m.grid.View())
}

// renderCompare shows the template picker and, once run, the comparison
func (m Model) renderCompare() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Select alternatives to compare"))
	b.WriteString("\n\n")

	for i, name := range m.templates {
		cursor := "  "
		if i == m.cursor {
			cursor = SelectedItemStyle.Render("❯ ")
		}
		box := "[ ] "
		if m.selected[i] {
			box = SelectedItemStyle.Render("[✓] ")
		}
		label := name
		if tmpl, ok := m.comparer.TemplateRegistry.Get(name); ok && tmpl.Description != "" {
			label += SubtitleStyle.Render(" - " + tmpl.Description)
		}
		b.WriteString(cursor + box + label + "\n")
	}

	if m.comparison == nil {
		return b.String()
	}

	b.WriteString("\n")
	base := m.comparison.BaseResult
	b.WriteString(components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("Base: Final Balance", base.FinalBalance),
		components.NewMetricCard("Base: Lifetime Taxes", base.LifetimeTaxes),
		components.NewMetricCard("Base: Lifetime SS", base.LifetimeSocialSecurity),
	}, 3))
	b.WriteString("\n")
	for _, alt := range m.comparison.AlternativeResults {
		b.WriteString(SelectedItemStyle.Render(alt.ScenarioName) + "\n")
		for _, card := range []*components.MetricCard{
			components.NewMetricCard("Final Balance", alt.FinalBalance).WithDelta(alt.BalanceDiffFromBase, false),
			components.NewMetricCard("Lifetime Taxes", alt.LifetimeTaxes).WithDelta(alt.TaxDiffFromBase, true),
			components.NewMetricCard("Lifetime SS", alt.LifetimeSocialSecurity).WithDelta(alt.SSDiffFromBase, false),
		} {
			b.WriteString("  " + card.RenderCompact() + "\n")
		}
	}
	for _, rec := range m.comparison.Recommendations {
		b.WriteString(InfoStyle.Render("• "+rec) + "\n")
	}
	return b.String()
}
