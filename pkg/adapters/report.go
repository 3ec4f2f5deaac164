package adapters

import (
	"github.com/de-tools/ga-atlas/pkg/models/api"
	"github.com/de-tools/ga-atlas/pkg/models/domain"
	ar "google.golang.org/api/analyticsreporting/v4"
)

// MapReportRowsGAToDomain assembles the final report table from
// concatenated wire rows. Columns come from the query's metric display
// names, index levels from its dimension display names; metric values are
// taken from the first (only) date range of each row.
func MapReportRowsGAToDomain(query domain.Query, rows []*ar.ReportRow) *domain.Report {
	report := &domain.Report{
		Name:       query.Name,
		Columns:    make([]string, 0, len(query.Metrics)),
		IndexNames: make([]string, 0, len(query.Dimensions)),
		Index:      make([][]string, 0, len(rows)),
		Rows:       make([][]string, 0, len(rows)),
	}

	for _, m := range query.Metrics {
		report.Columns = append(report.Columns, m.DisplayName())
	}
	for _, d := range query.Dimensions {
		report.IndexNames = append(report.IndexNames, d.DisplayName())
	}

	for _, row := range rows {
		report.Index = append(report.Index, row.Dimensions)
		var values []string
		if len(row.Metrics) > 0 {
			values = row.Metrics[0].Values
		}
		report.Rows = append(report.Rows, values)
	}

	return report
}

func MapReportDomainToApi(report *domain.Report) api.Report {
	if report == nil {
		return api.Report{
			Columns:    []string{},
			IndexNames: []string{},
			Index:      [][]string{},
			Rows:       [][]string{},
		}
	}
	return api.Report{
		Name:       report.Name,
		Columns:    report.Columns,
		IndexNames: report.IndexNames,
		Index:      report.Index,
		Rows:       report.Rows,
		RowCount:   report.Len(),
	}
}

func MapReportApiToDomain(report api.Report) *domain.Report {
	return &domain.Report{
		Name:       report.Name,
		Columns:    report.Columns,
		IndexNames: report.IndexNames,
		Index:      report.Index,
		Rows:       report.Rows,
	}
}

func MapViewDomainToApi(view domain.View) api.View {
	return api.View{Name: view.Name, ID: view.ID}
}
