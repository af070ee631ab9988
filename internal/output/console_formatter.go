package output

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/retireright/internal/domain"
)

// ConsoleFormatter renders the projection as a bordered text table.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(t *domain.ProjectionTable) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "RETIREMENT PROJECTION")
	fmt.Fprintln(&buf, "================================")

	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, displayCells(t, r))
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Header()...).
		Rows(rows...)
	fmt.Fprintln(&buf, tbl.String())

	fmt.Fprintln(&buf)
	for _, line := range summaryLines(t) {
		fmt.Fprintf(&buf, "%-26s %s\n", line[0]+":", line[1])
	}
	return buf.Bytes(), nil
}
