package domain

import "strings"

type SamplingLevel string

const (
	SamplingLevelDefault SamplingLevel = "DEFAULT"
	SamplingLevelSmall   SamplingLevel = "SMALL"
	SamplingLevelLarge   SamplingLevel = "LARGE"
)

type OrderType string

const (
	OrderTypeValue              OrderType = "VALUE"
	OrderTypeDelta              OrderType = "DELTA"
	OrderTypeSmart              OrderType = "SMART"
	OrderTypeHistogramBucket    OrderType = "HISTOGRAM_BUCKET"
	OrderTypeDimensionAsInteger OrderType = "DIMENSION_AS_INTEGER"
)

type SortOrder string

const (
	SortOrderAscending  SortOrder = "ASCENDING"
	SortOrderDescending SortOrder = "DESCENDING"
)

// Metric is a single reporting metric. Expression is the wire name
// (e.g. "ga:sessions"); Alias names the column in the resulting report.
type Metric struct {
	Expression string
	Alias      string
	Formatting string // INTEGER, FLOAT, CURRENCY, PERCENT, TIME
}

// DisplayName returns the alias, falling back to the expression with
// the "ga:" prefix trimmed.
func (m Metric) DisplayName() string {
	if m.Alias != "" {
		return m.Alias
	}
	return strings.TrimPrefix(m.Expression, "ga:")
}

// Dimension is a single reporting dimension, e.g. "ga:date".
type Dimension struct {
	Name  string
	Alias string
}

func (d Dimension) DisplayName() string {
	if d.Alias != "" {
		return d.Alias
	}
	return strings.TrimPrefix(d.Name, "ga:")
}

// OrderBy describes the sort order of report rows. Zero values for
// OrderType and SortOrder mean VALUE and ASCENDING respectively; the
// defaults are applied when the value is serialized to the wire shape.
type OrderBy struct {
	FieldName string
	OrderType OrderType
	SortOrder SortOrder
}

// DateRange bounds a query. Start and End accept YYYY-MM-DD as well as
// the relative forms the API understands ("7daysAgo", "today").
type DateRange struct {
	Start string
	End   string
}

// Query describes one report request before pagination.
type Query struct {
	Name          string
	SamplingLevel SamplingLevel
	DateRange     DateRange
	Metrics       []Metric
	Dimensions    []Dimension
	OrderBys      []OrderBy
	PageSize      int64
}
