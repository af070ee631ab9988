package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/retireright/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard displays a single dollar metric with an optional change versus a base
type MetricCard struct {
	Label string
	Value decimal.Decimal
	Delta *Delta
	Width int
}

// Delta is a metric's change from the base scenario
type Delta struct {
	Amount decimal.Decimal
	// LowerIsBetter flips the coloring, e.g. for taxes
	LowerIsBetter bool
}

// Good reports whether the change is favorable
func (d Delta) Good() bool {
	if d.LowerIsBetter {
		return d.Amount.IsNegative()
	}
	return d.Amount.IsPositive()
}

// NewMetricCard creates a new metric card
func NewMetricCard(label string, value decimal.Decimal) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 30,
	}
}

// WithDelta attaches a change from the base scenario
func (m *MetricCard) WithDelta(amount decimal.Decimal, lowerIsBetter bool) *MetricCard {
	m.Delta = &Delta{Amount: amount, LowerIsBetter: lowerIsBetter}
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) deltaLine() string {
	if m.Delta == nil || m.Delta.Amount.IsZero() {
		return ""
	}
	style := tuistyles.MetricTrendStyle(m.Delta.Good())
	arrow := tuistyles.TrendIndicator(m.Delta.Amount.IsPositive())
	return style.Render(fmt.Sprintf("%s %s", arrow, tuistyles.FormatCurrency(m.Delta.Amount.Abs())))
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.MetricValueStyle.Render(tuistyles.FormatCurrency(m.Value))
	if d := m.deltaLine(); d != "" {
		content += "\n" + d
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns an inline version without border
func (m *MetricCard) RenderCompact() string {
	out := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " +
		tuistyles.MetricValueStyle.Render(tuistyles.FormatCurrency(m.Value))
	if d := m.deltaLine(); d != "" {
		out += " " + d
	}
	return out
}

// MetricGrid renders cards left to right, wrapping after columns cards
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 || columns <= 0 {
		return ""
	}

	rows := []string{}
	currentRow := []string{}
	for i, card := range cards {
		currentRow = append(currentRow, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = []string{}
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
