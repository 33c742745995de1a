package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// PrintCSV writes a header record followed by one record per row.
func PrintCSV(w io.Writer, data TableRenderer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(data.Headers()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range data.Rows() {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// PrintValue writes rows without headers, values separated by a space.
// Multi-line cells are folded onto one line.
func PrintValue(w io.Writer, data TableRenderer) error {
	for _, row := range data.Rows() {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ReplaceAll(c, "\n", " ")
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, " ")); err != nil {
			return err
		}
	}
	return nil
}
