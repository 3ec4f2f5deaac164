package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/de-tools/ga-atlas/pkg/models/domain"
)

// WriteCSV writes a report as CSV: a header of index names followed by
// column names, then one record per row (index tuple, then metric values).
func WriteCSV(w io.Writer, report *domain.Report) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	cw := csv.NewWriter(w)

	header := make([]string, 0, len(report.IndexNames)+len(report.Columns))
	header = append(header, report.IndexNames...)
	header = append(header, report.Columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for i, values := range report.Rows {
		record := make([]string, 0, len(header))
		record = append(record, report.Index[i]...)
		record = append(record, values...)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
