package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/de-tools/ga-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// ErrProfileNotFound reports a profile name missing from the config file.
var ErrProfileNotFound = errors.New("profile not found")

// Registry exposes the reporting profiles declared in the ini config.
// Each profile section names a view id, a client-secrets file and an
// optional token cache:
//
//	[production]
//	view_id = 123456
//	client_secrets = client_secrets.json
//	token_cache = production.token.json
type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.ConfigProfile, error)
	GetProfile(ctx context.Context, name string) (*domain.ConfigProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
	dir string
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg, dir: filepath.Dir(path)}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]domain.ConfigProfile, error) {
	var profiles []domain.ConfigProfile
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		profile, err := cr.profileFromSection(section)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (*domain.ConfigProfile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, ErrProfileNotFound)
	}
	return cr.profileFromSection(section)
}

func (cr *cfgRegistry) profileFromSection(section *ini.Section) (*domain.ConfigProfile, error) {
	viewID := section.Key("view_id").String()
	if viewID == "" {
		return nil, fmt.Errorf("profile %q has no view_id", section.Name())
	}

	secrets := section.Key("client_secrets").String()
	if secrets == "" {
		return nil, fmt.Errorf("profile %q has no client_secrets", section.Name())
	}

	tokenCache := section.Key("token_cache").String()
	if tokenCache == "" {
		tokenCache = section.Name() + ".token.json"
	}

	return &domain.ConfigProfile{
		Name:          section.Name(),
		ViewID:        viewID,
		ClientSecrets: cr.resolve(secrets),
		TokenCache:    cr.resolve(tokenCache),
	}, nil
}

// resolve anchors relative paths at the config file's directory.
func (cr *cfgRegistry) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cr.dir, path)
}
