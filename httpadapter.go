package oauthflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultExchangeTimeout bounds the token exchange when no custom client
// is supplied, so a stalled provider cannot block a request handler forever.
const defaultExchangeTimeout = 30 * time.Second

// HTTPAdapter is the default Adapter implementation, backed by net/http.
// It is stateless and safe for concurrent use; each exchange is an
// independent request with no shared mutable state.
type HTTPAdapter struct {
	client *http.Client
}

// NewHTTPAdapter creates the default adapter. A nil client selects a
// client with a bounded timeout and standard TLS verification; pass a
// custom client to control timeouts, proxies, or test transports.
func NewHTTPAdapter(client *http.Client) *HTTPAdapter {
	if client == nil {
		client = &http.Client{Timeout: defaultExchangeTimeout}
	}
	return &HTTPAdapter{client: client}
}

// AuthorizationURL builds the provider authorization URL. Existing query
// parameters on the configured endpoint are preserved; flow parameters are
// appended with standard percent-encoding.
func (a *HTTPAdapter) AuthorizationURL(cfg Config, state string, scopes []string) (string, error) {
	u, err := url.Parse(cfg.Provider.AuthURL)
	if err != nil {
		return "", errors.Join(ErrInvalidURI, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", errors.Join(ErrInvalidURI, fmt.Errorf("authorization endpoint is not absolute: %q", cfg.Provider.AuthURL))
	}

	q := u.Query()
	q.Set("response_type", "code")
	q.Set("client_id", cfg.ClientID)
	q.Set("state", state)
	if cfg.RedirectURL != "" {
		q.Set("redirect_uri", cfg.RedirectURL)
	}
	if len(scopes) > 0 {
		q.Set("scope", strings.Join(scopes, " "))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// ExchangeCode POSTs the grant to the token endpoint as a form-encoded
// body and normalizes the JSON response into a Token.
func (a *HTTPAdapter) ExchangeCode(ctx context.Context, cfg Config, req TokenRequest) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", req.grantType)
	switch req.grantType {
	case grantAuthorizationCode:
		form.Set("code", req.value)
		if cfg.RedirectURL != "" {
			form.Set("redirect_uri", cfg.RedirectURL)
		}
	case grantRefreshToken:
		form.Set("refresh_token", req.value)
	default:
		return nil, errors.Join(ErrExchangeFailure, fmt.Errorf("unsupported grant type %q", req.grantType))
	}
	form.Set("client_id", cfg.ClientID)
	form.Set("client_secret", cfg.ClientSecret)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.Provider.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Join(ErrInvalidURI, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, errors.Join(ErrExchangeFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &ExchangeError{StatusCode: resp.StatusCode}
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.Join(ErrExchangeFailure, fmt.Errorf("decode token response: %w", err))
	}

	return parseToken(raw)
}
