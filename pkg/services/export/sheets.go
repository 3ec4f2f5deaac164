package export

import (
	"context"
	"fmt"

	"github.com/de-tools/ga-atlas/pkg/models/domain"
	"google.golang.org/api/sheets/v4"
)

// SheetWriter pushes report tables into tabs of a single spreadsheet.
type SheetWriter struct {
	svc           *sheets.Service
	spreadsheetID string
}

func NewSheetWriter(svc *sheets.Service, spreadsheetID string) (*SheetWriter, error) {
	if svc == nil {
		return nil, fmt.Errorf("sheets service cannot be nil")
	}
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id cannot be empty")
	}
	return &SheetWriter{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Push clears the tab and writes the report into it, header row first.
func (sw *SheetWriter) Push(ctx context.Context, tab string, report *domain.Report) error {
	if tab == "" {
		return fmt.Errorf("sheet tab cannot be empty")
	}
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	_, err := sw.svc.Spreadsheets.Values.
		Clear(sw.spreadsheetID, tab, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear sheet tab %q: %w", tab, err)
	}

	valueRange := &sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         SheetValues(report),
	}
	_, err = sw.svc.Spreadsheets.Values.
		Update(sw.spreadsheetID, tab, valueRange).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update sheet tab %q: %w", tab, err)
	}

	return nil
}

// SheetValues flattens a report into the row-major cell grid the Sheets
// API expects: index names + column names, then one row per report row.
func SheetValues(report *domain.Report) [][]interface{} {
	values := make([][]interface{}, 0, len(report.Rows)+1)

	header := make([]interface{}, 0, len(report.IndexNames)+len(report.Columns))
	for _, name := range report.IndexNames {
		header = append(header, name)
	}
	for _, col := range report.Columns {
		header = append(header, col)
	}
	values = append(values, header)

	for i, row := range report.Rows {
		cells := make([]interface{}, 0, len(header))
		for _, v := range report.Index[i] {
			cells = append(cells, v)
		}
		for _, v := range row {
			cells = append(cells, v)
		}
		values = append(values, cells)
	}

	return values
}
