package oauthflow

import "context"

const (
	grantAuthorizationCode = "authorization_code"
	grantRefreshToken      = "refresh_token"
)

// TokenRequest is the grant presented to the token endpoint: either an
// authorization code or a refresh token. Construct it with
// AuthorizationCode or RefreshToken.
type TokenRequest struct {
	grantType string
	value     string
}

// AuthorizationCode builds a TokenRequest for the authorization_code grant.
func AuthorizationCode(code string) TokenRequest {
	return TokenRequest{grantType: grantAuthorizationCode, value: code}
}

// RefreshToken builds a TokenRequest for the refresh_token grant.
func RefreshToken(token string) TokenRequest {
	return TokenRequest{grantType: grantRefreshToken, value: token}
}

// GrantType returns the OAuth2 grant_type this request carries.
func (r TokenRequest) GrantType() string {
	return r.grantType
}

// Adapter performs all provider communication on behalf of the flow
// engine. The engine depends only on this interface, keeping it
// transport-agnostic; HTTPAdapter is the default implementation.
// Implementations must be safe for concurrent use across unrelated
// exchanges and must not retry a failed exchange (authorization codes
// are single-use).
type Adapter interface {
	// AuthorizationURL builds the absolute URL of the provider's
	// authorization endpoint with response_type, client_id, state,
	// redirect_uri (if configured) and scope (if any) query parameters.
	AuthorizationURL(cfg Config, state string, scopes []string) (string, error)

	// ExchangeCode trades a grant for a token at the provider's token
	// endpoint. A bounded timeout must come from the transport or from ctx.
	ExchangeCode(ctx context.Context, cfg Config, req TokenRequest) (*Token, error)
}
