package bank

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ErrEmptySource is returned for a source with no header or no document body.
var ErrEmptySource = errors.New("empty question source")

// ParseCSV reads a header-led CSV table of questions. Short rows are padded
// with empty values rather than rejected.
func ParseCSV(r io.Reader, source string) ([]Question, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptySource)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = normalizeKey(header[i])
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	var out []Question
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		rec := make(record, len(header))
		for i, name := range header {
			if i < len(fields) {
				rec[name] = fields[i]
			}
		}
		out = append(out, cols.question(rec, source, row))
	}
	return out, nil
}
