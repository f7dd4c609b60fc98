// Package npfmt renders 2-D numeric arrays as numpy literals that can be
// pasted straight into a Python script.
package npfmt

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// fieldWidth is the right-justified width of every value.
const fieldWidth = 10

// Format renders rows as
//
//	np.array([
//		[     1.000,	     2.000],
//		[     3.000,	     4.000]
//	])
//
// Single-row and single-column arrays use 6 decimals, everything else 3.
// All rows must have the same length.
func Format(rows [][]float64) (string, error) {
	h := len(rows)
	w := 0
	if h > 0 {
		w = len(rows[0])
	}
	for i, row := range rows {
		if len(row) != w {
			return "", fmt.Errorf("row %d has %d values, want %d", i, len(row), w)
		}
	}

	precision := 3
	if h == 1 || w == 1 {
		precision = 6
	}

	lines := make([]string, 0, h)
	for _, row := range rows {
		fields := make([]string, 0, len(row))
		for _, v := range row {
			fields = append(fields, fmt.Sprintf("%*s", fieldWidth, formatValue(v, precision)))
		}
		lines = append(lines, "\t["+strings.Join(fields, ",\t")+"]")
	}

	return "np.array([\n" + strings.Join(lines, ",\n") + "\n])", nil
}

// formatValue prints v with fixed precision, spelling non-finite values the
// way Python does.
func formatValue(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// ParseCSV reads comma-separated numeric rows. Blank lines are ignored and
// surrounding spaces are trimmed from each value.
func ParseCSV(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows [][]float64
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		row := make([]float64, 0, len(record))
		for col, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				line, _ := cr.FieldPos(col)
				return nil, fmt.Errorf("line %d, column %d: invalid number %q", line, col+1, field)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
