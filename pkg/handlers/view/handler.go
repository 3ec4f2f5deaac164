package view

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/ga-atlas/pkg/adapters"
	"github.com/de-tools/ga-atlas/pkg/models/api"
	"github.com/de-tools/ga-atlas/pkg/models/domain"
	"github.com/de-tools/ga-atlas/pkg/services/account"
	"github.com/de-tools/ga-atlas/pkg/services/catalog"
	"github.com/de-tools/ga-atlas/pkg/services/config"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

var relativeDate = regexp.MustCompile(`^(today|yesterday|\d+daysAgo)$`)

type Handler struct {
	account account.Explorer
}

func NewHandler(account account.Explorer) *Handler {
	return &Handler{account: account}
}

func (h *Handler) ListViews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	views, err := h.account.ListViews(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list views")
		http.Error(w, "failed to list views", http.StatusInternalServerError)
		return
	}

	response := make([]api.View, 0, len(views))
	for _, v := range views {
		response = append(response, adapters.MapViewDomainToApi(v))
	}

	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode views")
	}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	viewName := chi.URLParam(r, "view")

	query, err := queryFromParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reporter, err := h.account.GetViewReporter(ctx, domain.View{Name: viewName})
	if err != nil {
		if errors.Is(err, config.ErrProfileNotFound) {
			http.Error(w, fmt.Sprintf("unknown view %q", viewName), http.StatusNotFound)
			return
		}
		logger.Error().
			Err(err).
			Str("view", viewName).
			Msg("failed to build view reporter")
		http.Error(w, "failed to initialize reporting client", http.StatusInternalServerError)
		return
	}

	report, err := reporter.GetReport(ctx, *query)
	if err != nil {
		logger.Error().
			Err(err).
			Str("view", viewName).
			Msg("failed to fetch report")
		http.Error(w, "failed to fetch report", http.StatusBadGateway)
		return
	}

	err = json.NewEncoder(w).Encode(adapters.MapReportDomainToApi(report))
	if err != nil {
		logger.Error().
			Err(err).
			Str("view", viewName).
			Msg("failed to encode report")
	}
}

func (h *Handler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	entries := make([]api.CatalogEntry, 0)
	for _, m := range catalog.Metrics() {
		entries = append(entries, api.CatalogEntry{Name: m.Alias, Expression: m.Expression})
	}

	err := json.NewEncoder(w).Encode(entries)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode metrics catalog")
	}
}

func (h *Handler) ListDimensions(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	entries := make([]api.CatalogEntry, 0)
	for _, d := range catalog.Dimensions() {
		entries = append(entries, api.CatalogEntry{Name: d.Alias, Expression: d.Name})
	}

	err := json.NewEncoder(w).Encode(entries)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode dimensions catalog")
	}
}

// queryFromParams builds a report query from the request's query string.
// Catalog names are resolved to wire expressions; anything unknown passes
// through with the "ga:" prefix added.
func queryFromParams(r *http.Request) (*domain.Query, error) {
	params := r.URL.Query()

	metrics := splitParam(params.Get("metrics"))
	if len(metrics) == 0 {
		return nil, fmt.Errorf("at least one metric is required")
	}

	query := domain.Query{Name: params.Get("name")}
	for _, name := range metrics {
		query.Metrics = append(query.Metrics, catalog.ResolveMetric(name))
	}
	for _, name := range splitParam(params.Get("dimensions")) {
		query.Dimensions = append(query.Dimensions, catalog.ResolveDimension(name))
	}

	from := params.Get("from")
	if from != "" && !validDate(from) {
		return nil, fmt.Errorf("invalid 'from' date %q. Expected YYYY-MM-DD or a relative date like 7daysAgo", from)
	}
	to := params.Get("to")
	if to != "" && !validDate(to) {
		return nil, fmt.Errorf("invalid 'to' date %q. Expected YYYY-MM-DD or a relative date like 7daysAgo", to)
	}
	query.DateRange = domain.DateRange{Start: from, End: to}

	for _, clause := range splitParam(params.Get("order_by")) {
		orderBy, err := parseOrderBy(clause)
		if err != nil {
			return nil, err
		}
		query.OrderBys = append(query.OrderBys, orderBy)
	}

	switch level := params.Get("sampling_level"); domain.SamplingLevel(level) {
	case "", domain.SamplingLevelDefault, domain.SamplingLevelSmall, domain.SamplingLevelLarge:
		query.SamplingLevel = domain.SamplingLevel(level)
	default:
		return nil, fmt.Errorf("invalid sampling level %q", level)
	}

	if raw := params.Get("page_size"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid page size %q", raw)
		}
		query.PageSize = size
	}

	return &query, nil
}

// parseOrderBy accepts "field", "field:asc" or "field:desc", where field
// may itself be a raw "ga:" expression.
func parseOrderBy(clause string) (domain.OrderBy, error) {
	field := clause
	var direction string
	if i := strings.LastIndex(clause, ":"); i >= 0 && !strings.EqualFold(clause[:i], "ga") {
		field, direction = clause[:i], clause[i+1:]
	}

	orderBy := domain.OrderBy{FieldName: catalog.ResolveField(field)}
	switch strings.ToLower(direction) {
	case "", "asc":
	case "desc":
		orderBy.SortOrder = domain.SortOrderDescending
	default:
		return domain.OrderBy{}, fmt.Errorf("invalid sort direction %q in order_by %q", direction, clause)
	}
	return orderBy, nil
}

func validDate(value string) bool {
	if _, err := time.Parse("2006-01-02", value); err == nil {
		return true
	}
	return relativeDate.MatchString(value)
}

func splitParam(value string) []string {
	var parts []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
