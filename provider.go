package oauthflow

import (
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// Provider describes one OAuth2 provider's endpoints. Construct it from a
// preset, from ProviderByName, or from CustomProvider. A Provider is a plain
// value and safe to share read-only across goroutines.
type Provider struct {
	AuthURL  string
	TokenURL string
}

// CustomProvider builds a Provider from explicit endpoint URIs.
// Both must be absolute http(s) URIs; they are validated when the
// Provider is used to construct a Flow.
func CustomProvider(authURL, tokenURL string) Provider {
	return Provider{AuthURL: authURL, TokenURL: tokenURL}
}

// Well-known provider presets. Endpoint URLs come from golang.org/x/oauth2.
func GitHub() Provider    { return fromEndpoint(endpoints.GitHub) }
func Google() Provider    { return fromEndpoint(endpoints.Google) }
func Microsoft() Provider { return fromEndpoint(endpoints.AzureAD("common")) }
func Discord() Provider   { return fromEndpoint(endpoints.Discord) }
func GitLab() Provider    { return fromEndpoint(endpoints.GitLab) }
func Facebook() Provider  { return fromEndpoint(endpoints.Facebook) }
func Slack() Provider     { return fromEndpoint(endpoints.Slack) }
func Spotify() Provider   { return fromEndpoint(endpoints.Spotify) }
func Twitch() Provider    { return fromEndpoint(endpoints.Twitch) }

// ProviderByName resolves a preset by its lowercase name, for
// configuration-driven setups where the provider is a string.
// Returns false for unknown names.
func ProviderByName(name string) (Provider, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "github":
		return GitHub(), true
	case "google":
		return Google(), true
	case "microsoft":
		return Microsoft(), true
	case "discord":
		return Discord(), true
	case "gitlab":
		return GitLab(), true
	case "facebook":
		return Facebook(), true
	case "slack":
		return Slack(), true
	case "spotify":
		return Spotify(), true
	case "twitch":
		return Twitch(), true
	}
	return Provider{}, false
}

func fromEndpoint(e oauth2.Endpoint) Provider {
	return Provider{AuthURL: e.AuthURL, TokenURL: e.TokenURL}
}
