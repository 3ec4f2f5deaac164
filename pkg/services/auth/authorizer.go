package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	ar "google.golang.org/api/analyticsreporting/v4"
)

const defaultTokenPath = "analyticsreporting.json"

// Settings configure an Authorizer. SecretsPath is required; TokenPath
// defaults to analyticsreporting.json in the working directory and Scopes
// to readonly analytics access.
type Settings struct {
	SecretsPath string
	TokenPath   string
	Scopes      []string
}

// Authorizer turns an OAuth2 client-secrets file and a token cache into
// authorized HTTP clients, prompting for an authorization code when no
// usable token is cached.
type Authorizer struct {
	cfg       *oauth2.Config
	tokenPath string
	codeIn    io.Reader
	promptOut io.Writer
}

func NewAuthorizer(settings Settings) (*Authorizer, error) {
	if settings.SecretsPath == "" {
		return nil, fmt.Errorf("client secrets path cannot be empty")
	}

	secrets, err := os.ReadFile(settings.SecretsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read client secrets file: %w", err)
	}

	scopes := settings.Scopes
	if len(scopes) == 0 {
		scopes = []string{ar.AnalyticsReadonlyScope}
	}

	cfg, err := google.ConfigFromJSON(secrets, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secrets file: %w", err)
	}

	tokenPath := settings.TokenPath
	if tokenPath == "" {
		tokenPath = defaultTokenPath
	}

	return &Authorizer{
		cfg:       cfg,
		tokenPath: tokenPath,
		codeIn:    os.Stdin,
		promptOut: os.Stderr,
	}, nil
}

// Client returns an authorized HTTP client. A cached token is reused when
// it is still valid or refreshable; otherwise the interactive flow runs
// and the obtained token is persisted. Expired tokens with a refresh token
// are refreshed transparently by the returned client.
func (a *Authorizer) Client(ctx context.Context) (*http.Client, error) {
	token, err := a.cachedToken()
	if err != nil || !usable(token) {
		token, err = a.authorize(ctx)
		if err != nil {
			return nil, err
		}
		if err := a.saveToken(token); err != nil {
			return nil, err
		}
	}
	return a.cfg.Client(ctx, token), nil
}

func (a *Authorizer) authorize(ctx context.Context) (*oauth2.Token, error) {
	authURL := a.cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(a.promptOut,
		"Open the following link in your browser, then paste the authorization code:\n%v\n", authURL)

	var code string
	if _, err := fmt.Fscan(a.codeIn, &code); err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}

	token, err := a.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

func (a *Authorizer) cachedToken() (*oauth2.Token, error) {
	f, err := os.Open(a.tokenPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode cached token: %w", err)
	}
	return token, nil
}

func (a *Authorizer) saveToken(token *oauth2.Token) error {
	f, err := os.OpenFile(a.tokenPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create token cache file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return nil
}

func usable(token *oauth2.Token) bool {
	return token != nil && (token.Valid() || token.RefreshToken != "")
}
