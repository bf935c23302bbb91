package oauthflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// Flow drives the OAuth2 authorization-code dance for a single provider:
// it issues the redirect to the provider, validates the callback against
// the pending CSRF state, and exchanges the authorization code for a token
// through the configured Adapter.
//
// The marker type M ties the resulting TokenResponse to this flow's
// provider at compile time; see TokenResponse.
//
// A Flow is immutable after construction and safe to share across
// concurrent requests. All per-attempt state lives in the StateStore.
type Flow[M any] struct {
	cfg     Config
	adapter Adapter
	states  StateStore
	log     *slog.Logger
}

// New validates cfg and builds a Flow for it.
// Returns a config error if required fields are missing or a provider
// endpoint does not parse as an absolute http(s) URI.
func New[M any](cfg Config, opts ...Option) (*Flow[M], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	o := defaultFlowOptions()
	for _, opt := range opts {
		opt(o)
	}

	adapter := o.adapter
	if adapter == nil {
		adapter = NewHTTPAdapter(o.httpClient)
	}

	return &Flow[M]{
		cfg:     cfg,
		adapter: adapter,
		states:  o.states,
		log:     o.log,
	}, nil
}

// Config returns the flow configuration.
func (f *Flow[M]) Config() Config {
	return f.cfg
}

// AuthorizationURL builds the provider authorization URL for a caller-managed
// state value. Most applications should use Redirect instead, which also
// generates and persists the state. Passing no scopes selects Config.Scopes.
func (f *Flow[M]) AuthorizationURL(state string, scopes ...string) (string, error) {
	return f.adapter.AuthorizationURL(f.cfg, state, f.scopes(scopes))
}

// Redirect starts a login attempt: it generates a fresh CSRF state,
// persists it in the StateStore, and writes an HTTP redirect to the
// provider's authorization endpoint. Passing no scopes selects
// Config.Scopes.
func (f *Flow[M]) Redirect(w http.ResponseWriter, r *http.Request, scopes ...string) error {
	if f.states == nil {
		return ErrNoStateStore
	}

	state, err := newState()
	if err != nil {
		return fmt.Errorf("oauthflow: generate state: %w", err)
	}

	// Build the URL before persisting the state so a build failure
	// cannot leave a dangling pending login attempt.
	uri, err := f.adapter.AuthorizationURL(f.cfg, state, f.scopes(scopes))
	if err != nil {
		return err
	}

	if err := f.states.Store(w, r, state); err != nil {
		return fmt.Errorf("oauthflow: store state: %w", err)
	}

	f.log.Debug("issuing authorization redirect", "auth_url", f.cfg.Provider.AuthURL)
	http.Redirect(w, r, uri, http.StatusFound)
	return nil
}

// HandleCallback completes a login attempt from the provider's callback
// request. The pending state is consumed before anything else, so it is
// single-use even when validation or the exchange fails: replaying the
// same callback always fails the second time.
//
// Returns ErrProviderDenied when the provider redirected back with an
// error parameter (no token-endpoint call is made), ErrMissingCode when
// the callback carries neither code nor error, and ErrStateMismatch when
// no state is pending or the received state does not match.
func (f *Flow[M]) HandleCallback(w http.ResponseWriter, r *http.Request) (*TokenResponse[M], error) {
	if f.states == nil {
		return nil, ErrNoStateStore
	}

	stored, err := f.states.LoadAndClear(w, r)
	if err != nil {
		return nil, fmt.Errorf("oauthflow: load state: %w", err)
	}

	q := r.URL.Query()

	if errCode := q.Get("error"); errCode != "" {
		f.log.Info("provider denied authorization",
			"error", errCode,
			"description", q.Get("error_description"),
		)
		return nil, errors.Join(ErrProviderDenied, fmt.Errorf("%s: %s", errCode, q.Get("error_description")))
	}

	code := q.Get("code")
	if code == "" {
		return nil, ErrMissingCode
	}

	if stored == "" || !stateEqual(stored, q.Get("state")) {
		f.log.Warn("state parameter mismatch, possible CSRF attempt",
			"remote_addr", r.RemoteAddr,
		)
		return nil, ErrStateMismatch
	}

	return f.Exchange(r.Context(), code)
}

// Exchange trades an authorization code for a token. There is no retry:
// authorization codes are single-use, and a second exchange of the same
// code surfaces the provider's own rejection as an *ExchangeError.
func (f *Flow[M]) Exchange(ctx context.Context, code string) (*TokenResponse[M], error) {
	return f.exchange(ctx, AuthorizationCode(code))
}

// Refresh trades a refresh token for a fresh access token.
func (f *Flow[M]) Refresh(ctx context.Context, refreshToken string) (*TokenResponse[M], error) {
	return f.exchange(ctx, RefreshToken(refreshToken))
}

func (f *Flow[M]) exchange(ctx context.Context, req TokenRequest) (*TokenResponse[M], error) {
	tok, err := f.adapter.ExchangeCode(ctx, f.cfg, req)
	if err != nil {
		f.log.Error("token exchange failed",
			"grant_type", req.grantType,
			"error", err,
		)
		return nil, err
	}
	return &TokenResponse[M]{Token: *tok}, nil
}

func (f *Flow[M]) scopes(s []string) []string {
	if len(s) == 0 {
		return f.cfg.Scopes
	}
	return s
}
