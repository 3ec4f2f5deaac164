package view

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/de-tools/ga-atlas/pkg/models/api"
	"github.com/de-tools/ga-atlas/pkg/models/domain"
	"github.com/de-tools/ga-atlas/pkg/services/catalog"
	"github.com/de-tools/ga-atlas/pkg/services/config"
	"github.com/de-tools/ga-atlas/pkg/services/export"
	"github.com/de-tools/ga-atlas/pkg/services/reporting"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAccountExplorer struct {
	mock.Mock
}

func (m *mockAccountExplorer) ListViews(ctx context.Context) ([]domain.View, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.View), args.Error(1)
}

func (m *mockAccountExplorer) GetViewReporter(
	ctx context.Context,
	view domain.View,
) (reporting.Reporter, error) {
	args := m.Called(ctx, view)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(reporting.Reporter), args.Error(1)
}

func (m *mockAccountExplorer) GetSheetWriter(
	ctx context.Context,
	view domain.View,
	spreadsheetID string,
) (*export.SheetWriter, error) {
	args := m.Called(ctx, view, spreadsheetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*export.SheetWriter), args.Error(1)
}

type mockViewReporter struct {
	mock.Mock
}

func (m *mockViewReporter) GetReport(ctx context.Context, query domain.Query) (*domain.Report, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func TestListViews(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mockAccountExplorer)
		expectedStatus int
		expectedBody   []api.View
	}{
		{
			name: "successful response",
			setupMock: func(m *mockAccountExplorer) {
				m.On("ListViews", mock.Anything).Return(
					[]domain.View{
						{Name: "production", ID: "123456"},
						{Name: "staging", ID: "654321"},
					},
					nil,
				)
			},
			expectedStatus: http.StatusOK,
			expectedBody: []api.View{
				{Name: "production", ID: "123456"},
				{Name: "staging", ID: "654321"},
			},
		},
		{
			name: "empty views list",
			setupMock: func(m *mockAccountExplorer) {
				m.On("ListViews", mock.Anything).Return(
					[]domain.View{},
					nil,
				)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []api.View{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			explorer := new(mockAccountExplorer)
			tt.setupMock(explorer)
			handler := NewHandler(explorer)

			req := httptest.NewRequest("GET", "/views", nil)
			rec := httptest.NewRecorder()

			handler.ListViews(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var response []api.View
			err := json.NewDecoder(rec.Body).Decode(&response)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, response)

			explorer.AssertExpectations(t)
		})
	}
}

func TestGetReport(t *testing.T) {
	sessionsQuery := domain.Query{
		Name:       "daily sessions",
		DateRange:  domain.DateRange{Start: "2025-08-01", End: "2025-08-05"},
		Metrics:    []domain.Metric{{Expression: "ga:sessions", Alias: "sessions"}},
		Dimensions: []domain.Dimension{{Name: "ga:date", Alias: "date"}},
	}

	tests := []struct {
		name           string
		view           string
		query          string
		setupMock      func(*mockAccountExplorer, *mockViewReporter)
		expectedStatus int
		expectedBody   *api.Report
	}{
		{
			name:  "successful response",
			view:  "production",
			query: "metrics=sessions&dimensions=date&from=2025-08-01&to=2025-08-05&name=daily+sessions",
			setupMock: func(me *mockAccountExplorer, mr *mockViewReporter) {
				me.On("GetViewReporter", mock.Anything, domain.View{Name: "production"}).
					Return(mr, nil)
				mr.On("GetReport", mock.Anything, sessionsQuery).
					Return(&domain.Report{
						Name:       "daily sessions",
						Columns:    []string{"sessions"},
						IndexNames: []string{"date"},
						Index:      [][]string{{"20250801"}, {"20250802"}},
						Rows:       [][]string{{"10"}, {"20"}},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: &api.Report{
				Name:       "daily sessions",
				Columns:    []string{"sessions"},
				IndexNames: []string{"date"},
				Index:      [][]string{{"20250801"}, {"20250802"}},
				Rows:       [][]string{{"10"}, {"20"}},
				RowCount:   2,
			},
		},
		{
			name:  "empty report",
			view:  "production",
			query: "metrics=sessions",
			setupMock: func(me *mockAccountExplorer, mr *mockViewReporter) {
				me.On("GetViewReporter", mock.Anything, domain.View{Name: "production"}).
					Return(mr, nil)
				mr.On("GetReport", mock.Anything, mock.Anything).
					Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: &api.Report{
				Columns:    []string{},
				IndexNames: []string{},
				Index:      [][]string{},
				Rows:       [][]string{},
			},
		},
		{
			name:           "missing metrics",
			view:           "production",
			query:          "dimensions=date",
			setupMock:      func(me *mockAccountExplorer, mr *mockViewReporter) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid from date",
			view:           "production",
			query:          "metrics=sessions&from=01-08-2025",
			setupMock:      func(me *mockAccountExplorer, mr *mockViewReporter) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid sampling level",
			view:           "production",
			query:          "metrics=sessions&sampling_level=TINY",
			setupMock:      func(me *mockAccountExplorer, mr *mockViewReporter) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid page size",
			view:           "production",
			query:          "metrics=sessions&page_size=-5",
			setupMock:      func(me *mockAccountExplorer, mr *mockViewReporter) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "unknown view",
			view:  "missing",
			query: "metrics=sessions",
			setupMock: func(me *mockAccountExplorer, mr *mockViewReporter) {
				me.On("GetViewReporter", mock.Anything, domain.View{Name: "missing"}).
					Return(nil, fmt.Errorf("profile %q: %w", "missing", config.ErrProfileNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:  "upstream failure",
			view:  "production",
			query: "metrics=sessions",
			setupMock: func(me *mockAccountExplorer, mr *mockViewReporter) {
				me.On("GetViewReporter", mock.Anything, domain.View{Name: "production"}).
					Return(mr, nil)
				mr.On("GetReport", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("backendError"))
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			explorer := new(mockAccountExplorer)
			reporter := new(mockViewReporter)
			tt.setupMock(explorer, reporter)
			handler := NewHandler(explorer)

			req := httptest.NewRequest("GET", "/views/"+tt.view+"/report?"+tt.query, nil)
			rec := httptest.NewRecorder()

			// Set up chi context with URL parameters
			ctx := chi.NewRouteContext()
			ctx.URLParams.Add("view", tt.view)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))

			handler.GetReport(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedBody != nil {
				var response api.Report
				err := json.NewDecoder(rec.Body).Decode(&response)
				assert.NoError(t, err)
				assert.Equal(t, *tt.expectedBody, response)
			}

			explorer.AssertExpectations(t)
			reporter.AssertExpectations(t)
		})
	}
}

func TestCatalogEndpoints(t *testing.T) {
	handler := NewHandler(new(mockAccountExplorer))

	t.Run("metrics", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/catalog/metrics", nil)
		rec := httptest.NewRecorder()

		handler.ListMetrics(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var entries []api.CatalogEntry
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&entries))
		assert.Len(t, entries, len(catalog.Metrics()))
		assert.Contains(t, entries, api.CatalogEntry{Name: "sessions", Expression: "ga:sessions"})
	})

	t.Run("dimensions", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/catalog/dimensions", nil)
		rec := httptest.NewRecorder()

		handler.ListDimensions(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var entries []api.CatalogEntry
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&entries))
		assert.Len(t, entries, len(catalog.Dimensions()))
		assert.Contains(t, entries, api.CatalogEntry{Name: "date", Expression: "ga:date"})
	})
}

func TestQueryFromParams_OrderBy(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []domain.OrderBy
		wantErr  bool
	}{
		{
			name:  "field only",
			query: "metrics=sessions&order_by=sessions",
			expected: []domain.OrderBy{
				{FieldName: "ga:sessions"},
			},
		},
		{
			name:  "descending direction",
			query: "metrics=sessions&order_by=sessions:desc",
			expected: []domain.OrderBy{
				{FieldName: "ga:sessions", SortOrder: domain.SortOrderDescending},
			},
		},
		{
			name:  "multiple clauses",
			query: "metrics=sessions&order_by=date:asc,sessions:desc",
			expected: []domain.OrderBy{
				{FieldName: "ga:date"},
				{FieldName: "ga:sessions", SortOrder: domain.SortOrderDescending},
			},
		},
		{
			name:  "raw expression",
			query: "metrics=sessions&order_by=ga:customMetric1:desc",
			expected: []domain.OrderBy{
				{FieldName: "ga:customMetric1", SortOrder: domain.SortOrderDescending},
			},
		},
		{
			name:    "invalid direction",
			query:   "metrics=sessions&order_by=sessions:sideways",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/report?"+tt.query, nil)
			query, err := queryFromParams(req)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, query.OrderBys)
		})
	}
}
