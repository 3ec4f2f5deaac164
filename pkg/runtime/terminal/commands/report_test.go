package commands

import (
	"bytes"
	"testing"

	"github.com/de-tools/ga-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCmd_BuildQuery(t *testing.T) {
	rc := &ReportCmd{
		name:          "weekly sessions",
		metrics:       []string{"sessions", "ga:customMetric1"},
		dimensions:    []string{"date", "country"},
		orderBy:       []string{"sessions:desc"},
		startDate:     "2025-08-01",
		endDate:       "2025-08-07",
		samplingLevel: "LARGE",
		pageSize:      250,
	}

	query, err := rc.buildQuery()
	require.NoError(t, err)

	assert.Equal(t, "weekly sessions", query.Name)
	assert.Equal(t, domain.SamplingLevelLarge, query.SamplingLevel)
	assert.Equal(t, domain.DateRange{Start: "2025-08-01", End: "2025-08-07"}, query.DateRange)
	assert.Equal(t, int64(250), query.PageSize)

	require.Len(t, query.Metrics, 2)
	assert.Equal(t, domain.Metric{Expression: "ga:sessions", Alias: "sessions"}, query.Metrics[0])
	assert.Equal(t, "ga:customMetric1", query.Metrics[1].Expression)

	require.Len(t, query.Dimensions, 2)
	assert.Equal(t, "ga:country", query.Dimensions[1].Name)

	require.Len(t, query.OrderBys, 1)
	assert.Equal(t, domain.OrderBy{
		FieldName: "ga:sessions",
		SortOrder: domain.SortOrderDescending,
	}, query.OrderBys[0])
}

func TestReportCmd_BuildQuery_RequiresMetrics(t *testing.T) {
	rc := &ReportCmd{}
	_, err := rc.buildQuery()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--metrics")
}

func TestReportCmd_ValidateFormat(t *testing.T) {
	for _, format := range []string{"table", "csv", "chart"} {
		rc := &ReportCmd{format: format}
		assert.NoError(t, rc.validateFormat())
	}

	rc := &ReportCmd{format: "sheet"}
	assert.Error(t, rc.validateFormat(), "sheet format needs a spreadsheet id")

	rc = &ReportCmd{format: "sheet", spreadsheetID: "sheet-1"}
	assert.NoError(t, rc.validateFormat())

	rc = &ReportCmd{format: "xml"}
	assert.Error(t, rc.validateFormat())
}

func TestParseOrderBy(t *testing.T) {
	tests := []struct {
		clause   string
		expected domain.OrderBy
		wantErr  bool
	}{
		{clause: "sessions", expected: domain.OrderBy{FieldName: "ga:sessions"}},
		{clause: "sessions:asc", expected: domain.OrderBy{FieldName: "ga:sessions"}},
		{
			clause: "pageviews:desc",
			expected: domain.OrderBy{
				FieldName: "ga:pageviews",
				SortOrder: domain.SortOrderDescending,
			},
		},
		{clause: "ga:sessions", expected: domain.OrderBy{FieldName: "ga:sessions"}},
		{
			clause: "ga:customMetric1:desc",
			expected: domain.OrderBy{
				FieldName: "ga:customMetric1",
				SortOrder: domain.SortOrderDescending,
			},
		},
		{clause: "sessions:sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.clause, func(t *testing.T) {
			orderBy, err := parseOrderBy(tt.clause)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, orderBy)
		})
	}
}

func TestCatalogCmd(t *testing.T) {
	cmd := NewCatalogCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"metrics"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "ga:sessions")

	out.Reset()
	cmd.SetArgs([]string{"dimensions"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "ga:date")
}
