package compare

import (
	"encoding/json"
	"fmt"
	"strings"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(compSet, "", "  ")
	} else {
		data, err = json.Marshal(compSet)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// FormatComparison renders a comparison set as "table", "csv" or "json"
func FormatComparison(compSet *ComparisonSet, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table", "console":
		return (&TableFormatter{}).Format(compSet), nil
	case "csv":
		return (&CSVFormatter{}).Format(compSet)
	case "json":
		return (&JSONFormatter{Pretty: true}).Format(compSet)
	default:
		return "", fmt.Errorf("unsupported comparison format %q. Try one of: table, csv, json", format)
	}
}
