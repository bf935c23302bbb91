package oauthflow

import (
	"errors"
	"strconv"
	"time"
)

// Token is the normalized result of a successful token exchange.
type Token struct {
	AccessToken  string
	TokenType    string
	RefreshToken string         // empty if the provider did not issue one
	ExpiresIn    time.Duration  // zero if the provider did not report expiry
	Raw          map[string]any // full decoded token endpoint payload
}

// Extra returns a provider-specific field from the raw token endpoint
// payload, such as "id_token" or "scope". Returns nil if absent.
func (t *Token) Extra(key string) any {
	if t.Raw == nil {
		return nil
	}
	return t.Raw[key]
}

// parseToken normalizes a decoded token endpoint payload. Providers vary:
// expires_in arrives as a JSON number from most, as a string from some.
func parseToken(raw map[string]any) (*Token, error) {
	access, ok := raw["access_token"].(string)
	if !ok || access == "" {
		return nil, errors.Join(ErrExchangeFailure, ErrMissingAccessToken)
	}

	t := &Token{AccessToken: access, Raw: raw}
	if v, ok := raw["token_type"].(string); ok {
		t.TokenType = v
	}
	if v, ok := raw["refresh_token"].(string); ok {
		t.RefreshToken = v
	}
	switch v := raw["expires_in"].(type) {
	case float64:
		t.ExpiresIn = time.Duration(v) * time.Second
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			t.ExpiresIn = time.Duration(n) * time.Second
		}
	}

	return t, nil
}

// TokenResponse ties a Token to the provider marker type M. M carries no
// data and is never inspected; it exists so that tokens obtained from
// different providers cannot be mixed up in calling code:
//
//	type GitHubUser struct{}
//	type GoogleUser struct{}
//
//	var gh *oauthflow.TokenResponse[GitHubUser]
//	var gg *oauthflow.TokenResponse[GoogleUser]
//	// gh = gg does not compile
type TokenResponse[M any] struct {
	Token
}
