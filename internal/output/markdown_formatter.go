package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/retireright/internal/domain"
)

// MarkdownFormatter renders a pipe table followed by lifetime totals and assumptions.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(t *domain.ProjectionTable) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# Retirement Projection")
	fmt.Fprintln(&buf)

	header := t.Header()
	fmt.Fprintf(&buf, "| %s |\n", strings.Join(header, " | "))
	seps := make([]string, len(header))
	for i := range seps {
		seps[i] = "---"
	}
	fmt.Fprintf(&buf, "| %s |\n", strings.Join(seps, " | "))
	for _, r := range t.Rows {
		fmt.Fprintf(&buf, "| %s |\n", strings.Join(displayCells(t, r), " | "))
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "## Summary")
	fmt.Fprintln(&buf)
	for _, line := range summaryLines(t) {
		fmt.Fprintf(&buf, "- **%s:** %s\n", line[0], line[1])
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "## Key Assumptions")
	fmt.Fprintln(&buf)
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "- %s\n", a)
	}
	return buf.Bytes(), nil
}
