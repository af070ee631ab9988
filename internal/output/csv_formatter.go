package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/retireright/internal/domain"
)

// CSVFormatter writes one header row then one record per projection year.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(t *domain.ProjectionTable) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header()); err != nil {
		return nil, err
	}
	for _, r := range t.Rows {
		if err := w.Write(rawCells(t, r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
