package reporting

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadQuery_ValidYAML_ResolvesCatalogNames(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "sessions.yaml")
	// YAML forbids tab indentation, keep the block flush left.
	content := `name: "weekly sessions"
sampling_level: "LARGE"
start_date: "2025-08-01"
end_date: "2025-08-07"
metrics:
- sessions
- ga:customMetric1
dimensions:
- date
- country
order_by:
- field: sessions
  order: DESCENDING
page_size: 250`
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("failed to write test query: %v", err)
	}

	// When
	query, err := LoadQuery(path)

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if query.Name != "weekly sessions" {
		t.Errorf("expected Name=weekly sessions, got %s", query.Name)
	}
	if query.SamplingLevel != "LARGE" {
		t.Errorf("expected SamplingLevel=LARGE, got %s", query.SamplingLevel)
	}
	if query.DateRange.Start != "2025-08-01" || query.DateRange.End != "2025-08-07" {
		t.Errorf("unexpected date range: %+v", query.DateRange)
	}
	if len(query.Metrics) != 2 {
		t.Fatalf("expected 2 metrics, got %d", len(query.Metrics))
	}
	if query.Metrics[0].Expression != "ga:sessions" || query.Metrics[0].Alias != "sessions" {
		t.Errorf("catalog metric not resolved: %+v", query.Metrics[0])
	}
	if query.Metrics[1].Expression != "ga:customMetric1" {
		t.Errorf("raw metric not passed through: %+v", query.Metrics[1])
	}
	if len(query.Dimensions) != 2 {
		t.Fatalf("expected 2 dimensions, got %d", len(query.Dimensions))
	}
	if query.Dimensions[1].Name != "ga:country" {
		t.Errorf("catalog dimension not resolved: %+v", query.Dimensions[1])
	}
	if len(query.OrderBys) != 1 {
		t.Fatalf("expected 1 order-by, got %d", len(query.OrderBys))
	}
	if query.OrderBys[0].FieldName != "ga:sessions" {
		t.Errorf("order-by field not resolved: %+v", query.OrderBys[0])
	}
	if query.OrderBys[0].SortOrder != "DESCENDING" {
		t.Errorf("expected SortOrder=DESCENDING, got %s", query.OrderBys[0].SortOrder)
	}
	if query.PageSize != 250 {
		t.Errorf("expected PageSize=250, got %d", query.PageSize)
	}
}

func TestLoadQuery_MissingMetrics_ReturnsError(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	err := os.WriteFile(path, []byte(`name: "no metrics"`), 0o644)
	if err != nil {
		t.Fatalf("failed to write test query: %v", err)
	}

	// When
	_, err = LoadQuery(path)

	// Then
	if err == nil {
		t.Error("expected error for query without metrics, got nil")
	}
}

func TestLoadQuery_InvalidYAML_ReturnsError(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	err := os.WriteFile(path, []byte("metrics: [sessions: bad"), 0o644)
	if err != nil {
		t.Fatalf("failed to write bad query: %v", err)
	}

	// When
	_, err = LoadQuery(path)

	// Then
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}
