package reporting

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/de-tools/ga-atlas/pkg/adapters"
	"github.com/de-tools/ga-atlas/pkg/models/domain"
	"github.com/de-tools/ga-atlas/pkg/services/catalog"
	ar "google.golang.org/api/analyticsreporting/v4"
	"google.golang.org/api/googleapi"
)

const (
	// DefaultPageSize is applied when a query does not set one.
	DefaultPageSize int64 = 10000

	DefaultStartDate = "7daysAgo"
	DefaultEndDate   = "today"

	maxAttempts = 5
)

// transientReasons are the API error reasons worth retrying.
var transientReasons = map[string]struct{}{
	"userRateLimitExceeded": {},
	"quotaExceeded":         {},
	"internalServerError":   {},
	"backendError":          {},
}

// Reporter fetches complete reports for a single view.
type Reporter interface {
	GetReport(ctx context.Context, query domain.Query) (*domain.Report, error)
}

// Settings configure a Client. ViewID is required; SamplingLevel and
// PageSize default to DEFAULT and DefaultPageSize.
type Settings struct {
	ViewID        string
	SamplingLevel domain.SamplingLevel
	PageSize      int64
}

// Client is a synchronous client for the reporting service: one request
// at a time, sequential pagination, a bounded retry loop as the only wait.
type Client struct {
	svc           *ar.Service
	viewID        string
	samplingLevel domain.SamplingLevel
	pageSize      int64
	sleep         func(time.Duration)
}

func NewClient(svc *ar.Service, settings Settings) (*Client, error) {
	if svc == nil {
		return nil, fmt.Errorf("reporting service cannot be nil")
	}
	if settings.ViewID == "" {
		return nil, fmt.Errorf("view id cannot be empty")
	}

	samplingLevel := settings.SamplingLevel
	if samplingLevel == "" {
		samplingLevel = domain.SamplingLevelDefault
	}
	pageSize := settings.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &Client{
		svc:           svc,
		viewID:        settings.ViewID,
		samplingLevel: samplingLevel,
		pageSize:      pageSize,
		sleep:         time.Sleep,
	}, nil
}

// FetchPage requests a single page of the query. Failures with a
// transient reason are retried up to 5 total attempts with exponential
// backoff (2^n seconds plus up to a second of jitter); any other failure
// aborts immediately. When every attempt fails the last error is returned.
func (c *Client) FetchPage(ctx context.Context, query domain.Query, pageToken string) (*ar.Report, error) {
	query = c.normalize(query)
	request := &ar.GetReportsRequest{
		ReportRequests: []*ar.ReportRequest{
			adapters.MapQueryDomainToGA(query, c.viewID, pageToken),
		},
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			c.sleep(backoffDelay(attempt - 1))
		}

		response, err := c.svc.Reports.BatchGet(request).Context(ctx).Do()
		if err != nil {
			if !isTransient(err) {
				return nil, err
			}
			lastErr = err
			continue
		}

		if len(response.Reports) == 0 {
			return nil, fmt.Errorf("response contains no reports")
		}
		return response.Reports[0], nil
	}

	return nil, lastErr
}

// GetReport fetches every page of the query and assembles the rows, in
// arrival order, into a single table indexed by dimension values. A first
// page without rows yields a nil report and no error.
func (c *Client) GetReport(ctx context.Context, query domain.Query) (*domain.Report, error) {
	if len(query.Metrics) == 0 {
		return nil, fmt.Errorf("query must contain at least one metric")
	}
	query = c.normalize(query)

	page, err := c.FetchPage(ctx, query, "")
	if err != nil {
		return nil, err
	}
	if page == nil || page.Data == nil || len(page.Data.Rows) == 0 {
		return nil, nil
	}

	rows := append([]*ar.ReportRow{}, page.Data.Rows...)
	for page.NextPageToken != "" {
		page, err = c.FetchPage(ctx, query, page.NextPageToken)
		if err != nil {
			return nil, err
		}
		if page == nil || page.Data == nil {
			break
		}
		rows = append(rows, page.Data.Rows...)
	}

	return adapters.MapReportRowsGAToDomain(query, rows), nil
}

// normalize applies client and query defaults. Idempotent.
func (c *Client) normalize(query domain.Query) domain.Query {
	if query.SamplingLevel == "" {
		query.SamplingLevel = c.samplingLevel
	}
	if query.DateRange.Start == "" {
		query.DateRange.Start = DefaultStartDate
	}
	if query.DateRange.End == "" {
		query.DateRange.End = DefaultEndDate
	}
	if len(query.Dimensions) == 0 {
		query.Dimensions = []domain.Dimension{catalog.DimensionDate}
	}
	if query.PageSize <= 0 {
		query.PageSize = c.pageSize
	}
	return query
}

func backoffDelay(n int) time.Duration {
	return time.Duration(1<<n)*time.Second + rand.N(time.Second)
}

func isTransient(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, item := range apiErr.Errors {
		if _, ok := transientReasons[item.Reason]; ok {
			return true
		}
	}
	return false
}
