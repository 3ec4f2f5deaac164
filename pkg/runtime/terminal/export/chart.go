package export

import (
	"fmt"
	"strconv"

	"github.com/de-tools/ga-atlas/pkg/models/domain"
	"github.com/guptarohit/asciigraph"
)

// RenderChart plots one metric column of the report as an ASCII line
// chart. Every value of the column must parse as a number.
func RenderChart(report *domain.Report, column string, width, height int) (string, error) {
	if report == nil || report.Len() == 0 {
		return "", fmt.Errorf("report contains no rows")
	}

	values, err := report.Column(column)
	if err != nil {
		return "", err
	}

	data := make([]float64, 0, len(values))
	for i, raw := range values {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", fmt.Errorf("row %d of column %q is not numeric: %w", i, column, err)
		}
		data = append(data, v)
	}

	// Ensure minimum dimensions
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	caption := column
	if report.Name != "" {
		caption = fmt.Sprintf("%s: %s", report.Name, column)
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}
