package oauthflow

import (
	"io"
	"log/slog"
	"net/http"
)

// Option configures a Flow.
type Option func(*flowOptions)

type flowOptions struct {
	httpClient *http.Client
	adapter    Adapter
	states     StateStore
	log        *slog.Logger
}

func defaultFlowOptions() *flowOptions {
	return &flowOptions{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithHTTPClient sets a custom HTTP client for the default adapter.
// This is useful for testing with httptest servers or injecting custom
// transports (e.g., logging, proxies). Ignored when WithAdapter is used.
func WithHTTPClient(client *http.Client) Option {
	return func(o *flowOptions) {
		o.httpClient = client
	}
}

// WithAdapter replaces the default HTTP adapter with a custom Adapter
// implementation. The flow engine never talks to the network directly,
// so swapping the adapter makes it fully transport-agnostic.
func WithAdapter(a Adapter) Option {
	return func(o *flowOptions) {
		if a != nil {
			o.adapter = a
		}
	}
}

// WithStateStore sets the CSRF-state persistence backend used by Redirect
// and HandleCallback. Required for the full browser flow; AuthorizationURL,
// Exchange, and Refresh work without one.
func WithStateStore(s StateStore) Option {
	return func(o *flowOptions) {
		if s != nil {
			o.states = s
		}
	}
}

// WithLogger sets the flow logger.
// If not set, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *flowOptions) {
		if l != nil {
			o.log = l
		}
	}
}
