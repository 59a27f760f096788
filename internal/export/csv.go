// Package export serializes the interaction log for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"coteach/internal/store"
)

// Header is the column order of the CSV export.
var Header = []string{"id", "timestamp", "topic", "question"}

// WriteCSV writes records to w with a header row, one row per interaction,
// in the order given (the store scans ascending by id).
func WriteCSV(w io.Writer, records []store.Interaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			strconv.FormatInt(rec.ID, 10),
			rec.Timestamp.Format(store.TimeLayout),
			string(rec.Topic),
			rec.Text,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row %d: %w", rec.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	return nil
}
