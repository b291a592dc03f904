package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the header row followed by every row of doc.
func WriteCSV(w io.Writer, doc *Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(doc.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(doc.Rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}
