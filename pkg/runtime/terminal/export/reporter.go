package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/ga-atlas/pkg/models/domain"
)

type TableConfig struct {
	CellWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		CellWidth: 16,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

// Handle renders the report as a fixed-width table: one leading column
// per index level, then one column per metric.
func (c *Reporter) Handle(report *domain.Report) error {
	if report == nil || report.Len() == 0 {
		_, err := fmt.Fprintln(c.writer, "No data.")
		return err
	}

	funcMap := template.FuncMap{
		"formatRow": func(cells []string) string {
			padded := make([]string, 0, len(cells))
			for _, cell := range cells {
				padded = append(padded,
					fmt.Sprintf("%-*s", c.config.CellWidth, truncate(cell, c.config.CellWidth)))
			}
			return "| " + strings.Join(padded, " | ") + " |"
		},
		"separator": func() string {
			columns := len(report.IndexNames) + len(report.Columns)
			cell := strings.Repeat("-", c.config.CellWidth+2)
			return "+" + strings.Repeat(cell+"+", columns)
		},
	}

	tmpl := `
{{.Title}} ({{.RowCount}} rows)

{{separator}}
{{formatRow .Header}}
{{separator}}
{{range .Rows}}{{formatRow .}}
{{end}}{{separator}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	header := make([]string, 0, len(report.IndexNames)+len(report.Columns))
	header = append(header, report.IndexNames...)
	header = append(header, report.Columns...)

	rows := make([][]string, 0, report.Len())
	for i, values := range report.Rows {
		row := make([]string, 0, len(header))
		row = append(row, report.Index[i]...)
		row = append(row, values...)
		rows = append(rows, row)
	}

	title := report.Name
	if title == "" {
		title = "report"
	}

	return t.Execute(c.writer, struct {
		Title    string
		RowCount int
		Header   []string
		Rows     [][]string
	}{
		Title:    title,
		RowCount: report.Len(),
		Header:   header,
		Rows:     rows,
	})
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
