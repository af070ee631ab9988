package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/retireright/internal/domain"
)

// Formatter converts a projection table into a serialized representation.
type Formatter interface {
	Format(table *domain.ProjectionTable) ([]byte, error)
	Name() string
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(*domain.ProjectionTable) ([]byte, error)
}

func (f FormatterFunc) Format(t *domain.ProjectionTable) ([]byte, error) { return f.F(t) }
func (f FormatterFunc) Name() string                                      { return f.ID }

// WriteFormatted writes the formatted table to a timestamped file in the
// working directory and returns the file name.
func WriteFormatted(f Formatter, table *domain.ProjectionTable, ext string) (string, error) {
	data, err := f.Format(table)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("retirement_projection_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

var builtInFormatters = map[string]func() Formatter{
	"console":  func() Formatter { return ConsoleFormatter{} },
	"csv":      func() Formatter { return CSVFormatter{} },
	"json":     func() Formatter { return JSONFormatter{} },
	"markdown": func() Formatter { return MarkdownFormatter{} },
	"html":     func() Formatter { return HTMLFormatter{} },
}

// aliasMap maps user-facing alternate names onto canonical formatter names.
var aliasMap = map[string]string{
	"table":       "console",
	"text":        "console",
	"md":          "markdown",
	"json-pretty": "json",
	"html-report": "html",
}

// NormalizeFormatName resolves an alias to its canonical formatter name.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliasMap[n]; ok {
		return canonical
	}
	return n
}

// GetFormatterByName returns a formatter by canonical name or alias.
func GetFormatterByName(name string) Formatter {
	if ctor, ok := builtInFormatters[NormalizeFormatName(name)]; ok {
		return ctor()
	}
	return nil
}

// AvailableFormatterNames returns the sorted canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for k := range builtInFormatters {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns a copy of the alias map.
func AvailableFormatAliases() map[string]string {
	out := make(map[string]string, len(aliasMap))
	for k, v := range aliasMap {
		out[k] = v
	}
	return out
}

// FormatTable renders a table with the named formatter; an empty name means console.
func FormatTable(table *domain.ProjectionTable, format string) ([]byte, error) {
	if strings.TrimSpace(format) == "" {
		format = "console"
	}
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("unsupported report format %q. Try one of: %s", format, strings.Join(AvailableFormatterNames(), ", "))
	}
	return f.Format(table)
}

// Extension returns the file extension used when saving a format to disk.
func Extension(format string) string {
	switch NormalizeFormatName(format) {
	case "markdown":
		return "md"
	case "console", "":
		return "txt"
	default:
		return NormalizeFormatName(format)
	}
}
