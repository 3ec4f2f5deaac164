package account

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/de-tools/ga-atlas/pkg/models/domain"
	"github.com/de-tools/ga-atlas/pkg/services/auth"
	"github.com/de-tools/ga-atlas/pkg/services/config"
	"github.com/de-tools/ga-atlas/pkg/services/export"
	"github.com/de-tools/ga-atlas/pkg/services/reporting"
	ar "google.golang.org/api/analyticsreporting/v4"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Explorer resolves configured profiles into ready-to-use Analytics clients.
type Explorer interface {
	ListViews(ctx context.Context) ([]domain.View, error)
	GetViewReporter(ctx context.Context, view domain.View) (reporting.Reporter, error)
	GetSheetWriter(ctx context.Context, view domain.View, spreadsheetID string) (*export.SheetWriter, error)
}

// ExplorerFactory is a function type that creates an Explorer from a config path.
type ExplorerFactory func(configPath string) (Explorer, error)

// DefaultExplorerFactory builds an Explorer backed by the profile registry at configPath.
func DefaultExplorerFactory(configPath string) (Explorer, error) {
	registry, err := config.NewRegistry(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile registry: %w", err)
	}
	return NewExplorer(registry), nil
}

type accountExplorer struct {
	registry config.Registry
}

func NewExplorer(registry config.Registry) Explorer {
	return &accountExplorer{registry: registry}
}

func (a *accountExplorer) ListViews(ctx context.Context) ([]domain.View, error) {
	profiles, err := a.registry.GetProfiles(ctx)
	if err != nil {
		return nil, err
	}
	var views []domain.View
	for _, profile := range profiles {
		views = append(views, domain.View{Name: profile.Name, ID: profile.ViewID})
	}
	return views, nil
}

func (a *accountExplorer) GetViewReporter(ctx context.Context, view domain.View) (reporting.Reporter, error) {
	profile, err := a.registry.GetProfile(ctx, view.Name)
	if err != nil {
		return nil, err
	}

	authorizer, err := auth.NewAuthorizer(auth.Settings{
		SecretsPath: profile.ClientSecrets,
		TokenPath:   profile.TokenCache,
	})
	if err != nil {
		return nil, err
	}

	client, err := authorizer.Client(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := ar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create reporting service: %w", err)
	}

	return reporting.NewClient(svc, reporting.Settings{ViewID: profile.ViewID})
}

func (a *accountExplorer) GetSheetWriter(
	ctx context.Context,
	view domain.View,
	spreadsheetID string,
) (*export.SheetWriter, error) {
	profile, err := a.registry.GetProfile(ctx, view.Name)
	if err != nil {
		return nil, err
	}

	// The sheets scope invalidates read-only report tokens, so it gets its own cache.
	authorizer, err := auth.NewAuthorizer(auth.Settings{
		SecretsPath: profile.ClientSecrets,
		TokenPath:   filepath.Join(filepath.Dir(profile.TokenCache), profile.Name+".sheets.token.json"),
		Scopes:      []string{ar.AnalyticsReadonlyScope, sheets.SpreadsheetsScope},
	})
	if err != nil {
		return nil, err
	}

	client, err := authorizer.Client(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return export.NewSheetWriter(svc, spreadsheetID)
}
