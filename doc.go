// Package oauthflow implements the OAuth2 authorization-code flow as an
// embeddable engine: redirect the user to the provider, validate the
// callback against a single-use CSRF state, and exchange the returned
// code (or a refresh token) for an access token.
//
// The engine is transport-agnostic. All provider communication goes
// through the Adapter interface; the default HTTPAdapter is backed by
// net/http with TLS verification and a bounded timeout. Hosting servers,
// routers, and user-profile parsing stay outside the package: the flow
// only consumes an *http.Request and produces a redirect or a token.
//
// # Features
//
//   - Authorization-code and refresh-token grants per RFC 6749
//   - Single-use, 256-bit CSRF state with constant-time verification
//   - Well-known provider presets (GitHub, Google, Microsoft, ...) and
//     custom providers from explicit endpoint URIs
//   - Pluggable Adapter for custom transports and tests
//   - Pluggable StateStore; signed-cookie and Redis backends in statestore
//   - Provider-tagged TokenResponse[M] so tokens from different providers
//     cannot be mixed up at compile time
//   - Sentinel errors with "oauthflow:" prefix for consistent handling
//
// # Usage
//
// Create one Flow per provider at startup and share it across requests:
//
//	type GitHubUser struct{}
//
//	states, err := statestore.NewCookie(os.Getenv("COOKIE_SECRET"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	flow, err := oauthflow.New[GitHubUser](oauthflow.Config{
//		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
//		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
//		RedirectURL:  "https://example.com/auth/github/callback",
//		Scopes:       []string{"read:user"},
//		Provider:     oauthflow.GitHub(),
//	}, oauthflow.WithStateStore(states))
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Wire the two legs of the flow into your router:
//
//	mux.HandleFunc("/login/github", func(w http.ResponseWriter, r *http.Request) {
//		if err := flow.Redirect(w, r); err != nil {
//			http.Error(w, "login unavailable", http.StatusInternalServerError)
//		}
//	})
//
//	mux.HandleFunc("/auth/github/callback", func(w http.ResponseWriter, r *http.Request) {
//		token, err := flow.HandleCallback(w, r)
//		if err != nil {
//			http.Error(w, "login failed", http.StatusForbidden)
//			return
//		}
//		// Use token.AccessToken against the provider's API.
//	})
//
// # Error Handling
//
// Failures are returned as typed errors, never panics, and the engine
// performs no automatic retries or provider fallback:
//
//   - ErrMissingClientID, ErrMissingClientSecret, ErrMissingProvider,
//     ErrInvalidURI: configuration problems, reported at construction
//   - ErrProviderDenied: the user or provider declined authorization
//   - ErrStateMismatch: callback state absent or wrong; a security event
//   - ErrMissingCode: malformed callback
//   - *ExchangeError: token endpoint returned a non-2xx status
//   - ErrExchangeFailure: transport failure or unparsable token response
//
// Check with errors.Is and errors.As:
//
//	token, err := flow.HandleCallback(w, r)
//	switch {
//	case errors.Is(err, oauthflow.ErrProviderDenied):
//		// user cancelled; show a friendly page
//	case errors.Is(err, oauthflow.ErrStateMismatch):
//		// reject; possibly a forged callback
//	}
//
//	var xerr *oauthflow.ExchangeError
//	if errors.As(err, &xerr) {
//		log.Printf("token endpoint status %d", xerr.StatusCode)
//	}
//
// # Security
//
//   - State values carry 256 bits of entropy and are consumed on first
//     use, even when validation fails; a replayed callback never matches
//   - State comparison is constant-time
//   - Use HTTPS redirect URIs in production; http is accepted only to
//     keep local development and httptest-based tests workable
//   - Authorization codes are single-use: the engine never caches or
//     retries an exchange
//   - Keep client secrets out of source control (use environment variables)
package oauthflow
