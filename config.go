package oauthflow

import (
	"errors"
	"fmt"
	"net/url"
)

// Config holds per-application OAuth2 settings for a single provider.
// One Config is created per supported provider at startup and shared
// read-only for the lifetime of the process.
type Config struct {
	ClientID     string   `env:"OAUTH_CLIENT_ID,required"`
	ClientSecret string   `env:"OAUTH_CLIENT_SECRET,required"`
	RedirectURL  string   `env:"OAUTH_REDIRECT_URL" envDefault:""`
	Scopes       []string `env:"OAUTH_SCOPES" envSeparator:","`
	Provider     Provider `env:"-"`
}

// validate is called once at flow construction so that misconfiguration
// fails at startup rather than on the first login attempt.
func (c Config) validate() error {
	if c.ClientID == "" {
		return ErrMissingClientID
	}
	if c.ClientSecret == "" {
		return ErrMissingClientSecret
	}
	if c.Provider.AuthURL == "" || c.Provider.TokenURL == "" {
		return ErrMissingProvider
	}
	if err := validateAbsoluteURL(c.Provider.AuthURL); err != nil {
		return err
	}
	return validateAbsoluteURL(c.Provider.TokenURL)
}

// validateAbsoluteURL accepts http as well as https so that local
// development and httptest-backed tests can run without TLS.
func validateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Join(ErrInvalidURI, err)
	}
	if !u.IsAbs() || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return errors.Join(ErrInvalidURI, fmt.Errorf("not an absolute http(s) URL: %q", raw))
	}
	return nil
}
