package domain

import "fmt"

// ConfigProfile is one section of the profile config: a named reporting
// view together with the credential material needed to query it.
type ConfigProfile struct {
	Name          string
	ViewID        string
	ClientSecrets string // path to the OAuth2 client secrets JSON
	TokenCache    string // path to the cached token file
}

func (c ConfigProfile) String() string {
	return fmt.Sprintf("%s:%s", c.Name, c.ViewID)
}
