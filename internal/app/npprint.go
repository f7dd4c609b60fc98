package app

import (
	"io"

	"github.com/udesa-vision/i308-utils/internal/npfmt"
)

// FormatArray reads CSV rows from r and returns them as a NumPy array literal.
func FormatArray(r io.Reader) (string, error) {
	rows, err := npfmt.ParseCSV(r)
	if err != nil {
		return "", NewFormatError("failed to read array", err)
	}
	out, err := npfmt.Format(rows)
	if err != nil {
		return "", NewFormatError("failed to format array", err)
	}
	return out, nil
}
