// Package catalog names the commonly used Google Analytics reporting
// metrics and dimensions so callers can refer to "sessions" instead of
// "ga:sessions". Unknown names resolve to their raw wire form.
package catalog

import (
	"maps"
	"slices"
	"strings"

	"github.com/de-tools/ga-atlas/pkg/models/domain"
)

// DimensionDate is the default dimension applied when a query names none.
var DimensionDate = domain.Dimension{Name: "ga:date", Alias: "date"}

var metrics = map[string]domain.Metric{
	"users":                 {Expression: "ga:users", Alias: "users"},
	"new_users":             {Expression: "ga:newUsers", Alias: "new_users"},
	"sessions":              {Expression: "ga:sessions", Alias: "sessions"},
	"sessions_per_user":     {Expression: "ga:sessionsPerUser", Alias: "sessions_per_user"},
	"bounces":               {Expression: "ga:bounces", Alias: "bounces"},
	"bounce_rate":           {Expression: "ga:bounceRate", Alias: "bounce_rate"},
	"session_duration":      {Expression: "ga:sessionDuration", Alias: "session_duration"},
	"avg_session_duration":  {Expression: "ga:avgSessionDuration", Alias: "avg_session_duration"},
	"hits":                  {Expression: "ga:hits", Alias: "hits"},
	"pageviews":             {Expression: "ga:pageviews", Alias: "pageviews"},
	"unique_pageviews":      {Expression: "ga:uniquePageviews", Alias: "unique_pageviews"},
	"pageviews_per_session": {Expression: "ga:pageviewsPerSession", Alias: "pageviews_per_session"},
	"time_on_page":          {Expression: "ga:timeOnPage", Alias: "time_on_page"},
	"avg_time_on_page":      {Expression: "ga:avgTimeOnPage", Alias: "avg_time_on_page"},
	"entrances":             {Expression: "ga:entrances", Alias: "entrances"},
	"exits":                 {Expression: "ga:exits", Alias: "exits"},
	"exit_rate":             {Expression: "ga:exitRate", Alias: "exit_rate"},
	"page_load_time":        {Expression: "ga:pageLoadTime", Alias: "page_load_time"},
	"avg_page_load_time":    {Expression: "ga:avgPageLoadTime", Alias: "avg_page_load_time"},
	"organic_searches":      {Expression: "ga:organicSearches", Alias: "organic_searches"},
	"transactions":          {Expression: "ga:transactions", Alias: "transactions"},
	"transaction_revenue":   {Expression: "ga:transactionRevenue", Alias: "transaction_revenue"},
	"goal_completions":      {Expression: "ga:goalCompletionsAll", Alias: "goal_completions"},
	"goal_conversion_rate":  {Expression: "ga:goalConversionRateAll", Alias: "goal_conversion_rate"},
}

var dimensions = map[string]domain.Dimension{
	"date":             {Name: "ga:date", Alias: "date"},
	"year":             {Name: "ga:year", Alias: "year"},
	"month":            {Name: "ga:month", Alias: "month"},
	"week":             {Name: "ga:week", Alias: "week"},
	"day":              {Name: "ga:day", Alias: "day"},
	"hour":             {Name: "ga:hour", Alias: "hour"},
	"user_type":        {Name: "ga:userType", Alias: "user_type"},
	"session_count":    {Name: "ga:sessionCount", Alias: "session_count"},
	"country":          {Name: "ga:country", Alias: "country"},
	"region":           {Name: "ga:region", Alias: "region"},
	"city":             {Name: "ga:city", Alias: "city"},
	"continent":        {Name: "ga:continent", Alias: "continent"},
	"language":         {Name: "ga:language", Alias: "language"},
	"browser":          {Name: "ga:browser", Alias: "browser"},
	"operating_system": {Name: "ga:operatingSystem", Alias: "operating_system"},
	"device_category":  {Name: "ga:deviceCategory", Alias: "device_category"},
	"source":           {Name: "ga:source", Alias: "source"},
	"medium":           {Name: "ga:medium", Alias: "medium"},
	"source_medium":    {Name: "ga:sourceMedium", Alias: "source_medium"},
	"campaign":         {Name: "ga:campaign", Alias: "campaign"},
	"keyword":          {Name: "ga:keyword", Alias: "keyword"},
	"social_network":   {Name: "ga:socialNetwork", Alias: "social_network"},
	"channel_grouping": {Name: "ga:channelGrouping", Alias: "channel_grouping"},
	"page_path":        {Name: "ga:pagePath", Alias: "page_path"},
	"page_title":       {Name: "ga:pageTitle", Alias: "page_title"},
	"landing_page":     {Name: "ga:landingPagePath", Alias: "landing_page"},
	"exit_page":        {Name: "ga:exitPagePath", Alias: "exit_page"},
	"hostname":         {Name: "ga:hostname", Alias: "hostname"},
}

// Metric looks up a metric by its catalog name.
func Metric(name string) (domain.Metric, bool) {
	m, ok := metrics[name]
	return m, ok
}

// Dimension looks up a dimension by its catalog name.
func Dimension(name string) (domain.Dimension, bool) {
	d, ok := dimensions[name]
	return d, ok
}

// Metrics returns every catalog metric sorted by name.
func Metrics() []domain.Metric {
	out := make([]domain.Metric, 0, len(metrics))
	for _, name := range slices.Sorted(maps.Keys(metrics)) {
		out = append(out, metrics[name])
	}
	return out
}

// Dimensions returns every catalog dimension sorted by name.
func Dimensions() []domain.Dimension {
	out := make([]domain.Dimension, 0, len(dimensions))
	for _, name := range slices.Sorted(maps.Keys(dimensions)) {
		out = append(out, dimensions[name])
	}
	return out
}

// ResolveMetric maps a user-supplied name to a metric: catalog names hit
// their entry, anything else passes through as a raw expression with the
// "ga:" prefix added when missing.
func ResolveMetric(name string) domain.Metric {
	if m, ok := metrics[name]; ok {
		return m
	}
	return domain.Metric{Expression: wireName(name)}
}

// ResolveDimension maps a user-supplied name to a dimension, with the
// same passthrough rule as ResolveMetric.
func ResolveDimension(name string) domain.Dimension {
	if d, ok := dimensions[name]; ok {
		return d
	}
	return domain.Dimension{Name: wireName(name)}
}

// ResolveField maps a user-supplied order-by field to its wire name,
// checking metrics first, then dimensions.
func ResolveField(name string) string {
	if m, ok := metrics[name]; ok {
		return m.Expression
	}
	if d, ok := dimensions[name]; ok {
		return d.Name
	}
	return wireName(name)
}

func wireName(name string) string {
	if strings.HasPrefix(name, "ga:") {
		return name
	}
	return "ga:" + name
}
