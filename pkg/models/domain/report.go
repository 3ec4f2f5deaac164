package domain

import "fmt"

// Report is the final shape of a fetched report: a table whose rows are
// metric value tuples and whose composite row index is built from the
// dimension values of each row. len(Index) == len(Rows) always holds;
// Index[i] has one entry per index level, Rows[i] one entry per column.
type Report struct {
	Name       string
	Columns    []string   // metric display names, in request order
	IndexNames []string   // dimension display names, one per index level
	Index      [][]string // dimension value tuple per row
	Rows       [][]string // metric value tuple per row
}

// Len returns the number of rows in the report.
func (r *Report) Len() int {
	return len(r.Rows)
}

// Column returns the values of the named column, top to bottom.
func (r *Report) Column(name string) ([]string, error) {
	for i, col := range r.Columns {
		if col != name {
			continue
		}
		values := make([]string, 0, len(r.Rows))
		for _, row := range r.Rows {
			if i >= len(row) {
				return nil, fmt.Errorf("row %d has no value for column %q", len(values), name)
			}
			values = append(values, row[i])
		}
		return values, nil
	}
	return nil, fmt.Errorf("column %q not found", name)
}
