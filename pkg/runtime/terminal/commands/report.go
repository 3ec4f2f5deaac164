package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/de-tools/ga-atlas/pkg/models/domain"
	"github.com/de-tools/ga-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/ga-atlas/pkg/services/account"
	"github.com/de-tools/ga-atlas/pkg/services/catalog"
	svcexport "github.com/de-tools/ga-atlas/pkg/services/export"
	"github.com/de-tools/ga-atlas/pkg/services/reporting"

	"github.com/spf13/cobra"
)

const (
	chartWidth  = 60
	chartHeight = 10
)

type ReportCmd struct {
	configPath    string
	profile       string
	queryPath     string
	name          string
	metrics       []string
	dimensions    []string
	orderBy       []string
	startDate     string
	endDate       string
	samplingLevel string
	pageSize      int64
	format        string
	column        string
	outPath       string
	spreadsheetID string
	tab           string

	factory account.ExplorerFactory
}

func NewReportCmd(factory account.ExplorerFactory) *cobra.Command {
	rc := &ReportCmd{factory: factory}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Fetch a report for a configured view",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.configPath, "config", DefaultConfigPath(), "Path to the profile config file")
	cmd.Flags().StringVar(&rc.profile, "profile", "", "Profile (view) to report on")
	cmd.Flags().StringVar(&rc.queryPath, "query", "", "Path to a YAML query definition")
	cmd.Flags().StringVar(&rc.name, "name", "", "Report name")
	cmd.Flags().StringSliceVar(&rc.metrics, "metrics", nil, "Metrics to fetch (catalog names or ga: expressions)")
	cmd.Flags().StringSliceVar(&rc.dimensions, "dimensions", nil, "Dimensions to group by (defaults to date)")
	cmd.Flags().StringSliceVar(&rc.orderBy, "order-by", nil, "Sort clauses, e.g. sessions:desc")
	cmd.Flags().StringVar(&rc.startDate, "from", "", "Start date (YYYY-MM-DD or a relative date like 7daysAgo)")
	cmd.Flags().StringVar(&rc.endDate, "to", "", "End date (YYYY-MM-DD or today)")
	cmd.Flags().StringVar(&rc.samplingLevel, "sampling-level", "", "Sampling level (DEFAULT, SMALL or LARGE)")
	cmd.Flags().Int64Var(&rc.pageSize, "page-size", 0, "Rows per page (defaults to 10000)")
	cmd.Flags().StringVar(&rc.format, "format", "table", "Output format: table, csv, chart or sheet")
	cmd.Flags().StringVar(&rc.column, "column", "", "Metric column to chart (defaults to the first)")
	cmd.Flags().StringVar(&rc.outPath, "out", "", "Write the output to a file instead of stdout")
	cmd.Flags().StringVar(&rc.spreadsheetID, "spreadsheet", "", "Spreadsheet id for the sheet format")
	cmd.Flags().StringVar(&rc.tab, "tab", "Report", "Sheet tab for the sheet format")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	query, err := rc.buildQuery()
	if err != nil {
		return err
	}
	if err := rc.validateFormat(); err != nil {
		return err
	}

	explorer, err := rc.factory(rc.configPath)
	if err != nil {
		return err
	}

	view := domain.View{Name: rc.profile}
	reporter, err := explorer.GetViewReporter(ctx, view)
	if err != nil {
		return fmt.Errorf("failed to build reporter for profile %q: %w", rc.profile, err)
	}

	report, err := reporter.GetReport(ctx, *query)
	if err != nil {
		return fmt.Errorf("failed to fetch report: %w", err)
	}

	if report == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No data.")
		return nil
	}

	if rc.format == "sheet" {
		return rc.pushSheet(ctx, cmd.OutOrStdout(), explorer, view, report)
	}

	if rc.outPath == "" {
		return rc.render(cmd.OutOrStdout(), report)
	}

	f, err := os.Create(rc.outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := rc.render(f, report); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// buildQuery resolves the command flags into a report query. A --query
// file takes the place of the individual query flags.
func (rc *ReportCmd) buildQuery() (*domain.Query, error) {
	if rc.queryPath != "" {
		return reporting.LoadQuery(rc.queryPath)
	}

	if len(rc.metrics) == 0 {
		return nil, fmt.Errorf("either --query or --metrics is required")
	}

	query := &domain.Query{
		Name:          rc.name,
		SamplingLevel: domain.SamplingLevel(rc.samplingLevel),
		DateRange:     domain.DateRange{Start: rc.startDate, End: rc.endDate},
		PageSize:      rc.pageSize,
	}
	for _, m := range rc.metrics {
		query.Metrics = append(query.Metrics, catalog.ResolveMetric(m))
	}
	for _, d := range rc.dimensions {
		query.Dimensions = append(query.Dimensions, catalog.ResolveDimension(d))
	}
	for _, clause := range rc.orderBy {
		orderBy, err := parseOrderBy(clause)
		if err != nil {
			return nil, err
		}
		query.OrderBys = append(query.OrderBys, orderBy)
	}

	return query, nil
}

func (rc *ReportCmd) validateFormat() error {
	switch rc.format {
	case "table", "csv", "chart":
		return nil
	case "sheet":
		if rc.spreadsheetID == "" {
			return fmt.Errorf("--spreadsheet is required for the sheet format")
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q. Supported formats: table, csv, chart, sheet", rc.format)
	}
}

func (rc *ReportCmd) render(out io.Writer, report *domain.Report) error {
	switch rc.format {
	case "csv":
		return svcexport.WriteCSV(out, report)
	case "chart":
		column := rc.column
		if column == "" && len(report.Columns) > 0 {
			column = report.Columns[0]
		}
		chart, err := export.RenderChart(report, column, chartWidth, chartHeight)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, chart)
		return err
	default:
		return export.NewReporter(out).Handle(report)
	}
}

func (rc *ReportCmd) pushSheet(
	ctx context.Context,
	out io.Writer,
	explorer account.Explorer,
	view domain.View,
	report *domain.Report,
) error {
	writer, err := explorer.GetSheetWriter(ctx, view, rc.spreadsheetID)
	if err != nil {
		return fmt.Errorf("failed to build sheet writer: %w", err)
	}

	if err := writer.Push(ctx, rc.tab, report); err != nil {
		return err
	}

	fmt.Fprintf(out, "Exported %d rows to tab %q.\n", report.Len(), rc.tab)
	return nil
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
		return domain.OrderBy{}, fmt.Errorf("invalid sort direction %q in order-by %q", direction, clause)
	}
	return orderBy, nil
}
