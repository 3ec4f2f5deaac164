package adapters

import (
	"github.com/de-tools/ga-atlas/pkg/models/domain"
	ar "google.golang.org/api/analyticsreporting/v4"
)

// MapQueryDomainToGA builds the wire request for a single page of the
// query. Exactly one date range is ever attached.
func MapQueryDomainToGA(query domain.Query, viewID string, pageToken string) *ar.ReportRequest {
	request := &ar.ReportRequest{
		ViewId:        viewID,
		SamplingLevel: string(query.SamplingLevel),
		DateRanges: []*ar.DateRange{{
			StartDate: query.DateRange.Start,
			EndDate:   query.DateRange.End,
		}},
		PageSize:  query.PageSize,
		PageToken: pageToken,
	}

	for _, m := range query.Metrics {
		request.Metrics = append(request.Metrics, MapMetricDomainToGA(m))
	}
	for _, d := range query.Dimensions {
		request.Dimensions = append(request.Dimensions, MapDimensionDomainToGA(d))
	}
	for _, o := range query.OrderBys {
		request.OrderBys = append(request.OrderBys, MapOrderByDomainToGA(o))
	}

	return request
}

func MapMetricDomainToGA(m domain.Metric) *ar.Metric {
	return &ar.Metric{
		Expression:     m.Expression,
		Alias:          m.Alias,
		FormattingType: m.Formatting,
	}
}

func MapDimensionDomainToGA(d domain.Dimension) *ar.Dimension {
	return &ar.Dimension{Name: d.Name}
}

// MapOrderByDomainToGA serializes an order-by, defaulting the order type
// to VALUE and the sort order to ASCENDING.
func MapOrderByDomainToGA(o domain.OrderBy) *ar.OrderBy {
	orderType := o.OrderType
	if orderType == "" {
		orderType = domain.OrderTypeValue
	}
	sortOrder := o.SortOrder
	if sortOrder == "" {
		sortOrder = domain.SortOrderAscending
	}
	return &ar.OrderBy{
		FieldName: o.FieldName,
		OrderType: string(orderType),
		SortOrder: string(sortOrder),
	}
}
