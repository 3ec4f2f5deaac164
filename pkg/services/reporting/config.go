package reporting

import (
	"fmt"

	"github.com/de-tools/ga-atlas/pkg/models/domain"
	"github.com/de-tools/ga-atlas/pkg/services/catalog"
	"github.com/spf13/viper"
)

// QueryConfig is the YAML shape of a stored query definition. Metric,
// dimension and order-by fields accept catalog names as well as raw
// "ga:" expressions.
type QueryConfig struct {
	Name          string          `mapstructure:"name"`
	SamplingLevel string          `mapstructure:"sampling_level"`
	StartDate     string          `mapstructure:"start_date"`
	EndDate       string          `mapstructure:"end_date"`
	Metrics       []string        `mapstructure:"metrics"`
	Dimensions    []string        `mapstructure:"dimensions"`
	OrderBy       []OrderByConfig `mapstructure:"order_by"`
	PageSize      int64           `mapstructure:"page_size"`
}

type OrderByConfig struct {
	Field string `mapstructure:"field"`
	Type  string `mapstructure:"type"`
	Order string `mapstructure:"order"`
}

// LoadQuery reads a query definition file and resolves it into a domain
// query.
func LoadQuery(path string) (*domain.Query, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read query file: %w", err)
	}

	var cfg QueryConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse query file: %w", err)
	}

	if len(cfg.Metrics) == 0 {
		return nil, fmt.Errorf("query file %q declares no metrics", path)
	}

	query := &domain.Query{
		Name:          cfg.Name,
		SamplingLevel: domain.SamplingLevel(cfg.SamplingLevel),
		DateRange:     domain.DateRange{Start: cfg.StartDate, End: cfg.EndDate},
		PageSize:      cfg.PageSize,
	}
	for _, m := range cfg.Metrics {
		query.Metrics = append(query.Metrics, catalog.ResolveMetric(m))
	}
	for _, d := range cfg.Dimensions {
		query.Dimensions = append(query.Dimensions, catalog.ResolveDimension(d))
	}
	for _, o := range cfg.OrderBy {
		query.OrderBys = append(query.OrderBys, domain.OrderBy{
			FieldName: catalog.ResolveField(o.Field),
			OrderType: domain.OrderType(o.Type),
			SortOrder: domain.SortOrder(o.Order),
		})
	}

	return query, nil
}
