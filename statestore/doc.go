// Package statestore provides ready-made backends for persisting the
// pending CSRF state between the redirect that starts an OAuth2 login
// attempt and the provider callback that completes it.
//
// Two backends are included, both implementing oauthflow.StateStore and
// both single-use: the state is invalidated the moment it is loaded.
//
// Cookie keeps the state in an HMAC-SHA256-signed, HttpOnly,
// SameSite=Lax cookie with a short embedded expiry. It needs no server
// infrastructure and scopes the state to the requesting browser:
//
//	states, err := statestore.NewCookie(secret,
//		statestore.WithCookieName("gh_oauth_state"),
//		statestore.WithSecure(true),
//	)
//
// Redis keeps the state server-side, keyed by the state value with a
// bounded TTL, and consumes it atomically with GETDEL. Use it when
// callbacks may land on a different instance than the one that issued
// the redirect and cookies are not an option:
//
//	states := statestore.NewRedis(client,
//		statestore.WithRedisTTL(5*time.Minute),
//	)
//
// State values are unguessable (256 bits of entropy), so keying by the
// value itself is sound; the TTL bounds the replay window.
package statestore
