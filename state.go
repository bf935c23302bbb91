package oauthflow

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
)

// stateBytes gives 256 bits of entropy, well above the minimum needed to
// resist guessing within the short validity window of a login attempt.
const stateBytes = 32

// newState returns a URL-safe random state value for CSRF protection.
func newState() (string, error) {
	buf := make([]byte, stateBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// stateEqual compares a stored and a received state value in constant time.
func stateEqual(stored, received string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(received)) == 1
}

// StateStore persists the pending CSRF state between the redirect that
// starts a login attempt and the provider callback that completes it.
// Implementations are expected to scope the state to the requesting
// browser (cookie) or to bound its lifetime server-side (TTL); see the
// statestore package for ready-made backends.
type StateStore interface {
	// Store persists the state for the pending login attempt.
	Store(w http.ResponseWriter, r *http.Request, state string) error

	// LoadAndClear returns the pending state and invalidates it, so a
	// state value can never be matched twice. It returns "" with a nil
	// error when no state is pending (including when a previous call
	// already consumed it); errors are reserved for storage failures.
	LoadAndClear(w http.ResponseWriter, r *http.Request) (string, error)
}
