// Package youtube implements the platform.Client capability against the
// YouTube Data API v3, with OAuth sessions and per-session rate limiting.
package youtube

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/tubewarden/tubewarden/internal/config"
)

// Scopes required for comment moderation. force-ssl covers comment deletion.
var oauthScopes = []string{
	"https://www.googleapis.com/auth/youtube.force-ssl",
	"https://www.googleapis.com/auth/youtube",
}

// OAuthConfig builds the Google OAuth2 configuration for the service.
func OAuthConfig(cfg config.GoogleConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       oauthScopes,
		Endpoint:     google.Endpoint,
	}
}

// AuthURL returns the consent URL. Offline access plus a forced consent
// prompt so Google issues a refresh token on every authorization.
func AuthURL(conf *oauth2.Config, state string) string {
	return conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades an authorization code for a token.
func Exchange(ctx context.Context, conf *oauth2.Config, code string) (*oauth2.Token, error) {
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}
