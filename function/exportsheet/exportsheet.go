// Package exportsheet is an HTTP-triggered cloud function that pulls a
// report from the GA Atlas web API and pushes it into a Google Sheet tab.
package exportsheet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/de-tools/ga-atlas/pkg/adapters"
	"github.com/de-tools/ga-atlas/pkg/models/api"
	"github.com/de-tools/ga-atlas/pkg/models/domain"
	"github.com/de-tools/ga-atlas/pkg/services/export"
	"google.golang.org/api/sheets/v4"
)

const defaultTab = "Report"

// forwardedParams are the report query parameters passed through from the
// trigger request to the reporting API.
var forwardedParams = []string{
	"metrics", "dimensions", "from", "to", "order_by",
	"sampling_level", "name", "page_size",
}

func init() {
	functions.HTTP("ExportReport", exportReport)
}

// exportReport reads the view and query parameters from the trigger
// request, fetches the report from the API named by REPORT_API_URL and
// writes it to a tab of the SPREADSHEET_ID spreadsheet.
func exportReport(w http.ResponseWriter, r *http.Request) {
	apiURL := os.Getenv("REPORT_API_URL")
	spreadsheetID := os.Getenv("SPREADSHEET_ID")
	if apiURL == "" || spreadsheetID == "" {
		http.Error(w, "REPORT_API_URL and SPREADSHEET_ID must be set", http.StatusInternalServerError)
		return
	}

	params := r.URL.Query()
	view := params.Get("view")
	if view == "" {
		http.Error(w, "view param missing", http.StatusBadRequest)
		return
	}

	target, err := reportURL(apiURL, view, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	report, err := fetchReport(ctx, http.DefaultClient, target)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if report.Len() == 0 {
		fmt.Fprintf(w, "no data for view %q\n", view)
		return
	}

	tab := params.Get("tab")
	if tab == "" {
		tab = defaultTab
	}

	svc, err := sheets.NewService(ctx)
	if err != nil {
		http.Error(w, "failed to create sheets service: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writer, err := export.NewSheetWriter(svc, spreadsheetID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := writer.Push(ctx, tab, report); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	fmt.Fprintf(w, "exported %d rows to tab %q\n", report.Len(), tab)
}

// reportURL builds the report endpoint address for the view, forwarding
// the query parameters the reporting API understands.
func reportURL(apiURL, view string, params url.Values) (string, error) {
	base, err := url.Parse(apiURL)
	if err != nil {
		return "", fmt.Errorf("invalid REPORT_API_URL: %w", err)
	}
	base = base.JoinPath("api", "v1", "views", view, "report")

	forwarded := url.Values{}
	for _, key := range forwardedParams {
		if v := params.Get(key); v != "" {
			forwarded.Set(key, v)
		}
	}
	base.RawQuery = forwarded.Encode()

	return base.String(), nil
}

func fetchReport(ctx context.Context, client *http.Client, target string) (*domain.Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build report request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("report request failed with status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var report api.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}

	return adapters.MapReportApiToDomain(report), nil
}
