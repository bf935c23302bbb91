package oauthflow

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingClientID is returned when the OAuth client ID is not provided.
	ErrMissingClientID = errors.New("oauthflow: missing client ID")

	// ErrMissingClientSecret is returned when the OAuth client secret is not provided.
	ErrMissingClientSecret = errors.New("oauthflow: missing client secret")

	// ErrMissingProvider is returned when the provider endpoints are not configured.
	ErrMissingProvider = errors.New("oauthflow: missing provider endpoints")

	// ErrInvalidURI is returned when an authorization or token endpoint URI
	// is not a valid absolute http(s) URI.
	ErrInvalidURI = errors.New("oauthflow: invalid URI")

	// ErrNoStateStore is returned when Redirect or HandleCallback is used
	// but no StateStore was configured on the flow.
	ErrNoStateStore = errors.New("oauthflow: no state store configured")

	// ErrStateMismatch is returned when the callback carries no state, no
	// state is pending, or the two do not match. Treat as a security event:
	// the request may be a forged callback.
	ErrStateMismatch = errors.New("oauthflow: state parameter mismatch")

	// ErrMissingCode is returned when the callback carries neither a code
	// nor an error parameter.
	ErrMissingCode = errors.New("oauthflow: missing code parameter")

	// ErrProviderDenied is returned when the provider redirected back with
	// an error parameter instead of a code. This is a failed login, not a bug.
	ErrProviderDenied = errors.New("oauthflow: provider denied authorization")

	// ErrExchangeFailure is returned when the token exchange fails before a
	// well-formed provider response is obtained: transport errors, an
	// unparsable body, or a body without an access token. The underlying
	// cause is joined for logging.
	ErrExchangeFailure = errors.New("oauthflow: token exchange failed")

	// ErrMissingAccessToken is returned when the token endpoint response
	// parses as JSON but does not contain an access_token field.
	ErrMissingAccessToken = errors.New("oauthflow: token response missing access_token")
)

// ExchangeError reports a non-2xx response from the token endpoint.
// The status code is preserved for diagnostics; OAuth2 providers return
// 4xx both for bad credentials and for already-redeemed authorization codes.
type ExchangeError struct {
	StatusCode int
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("oauthflow: token endpoint returned status %d", e.StatusCode)
}

// Is makes errors.Is(err, ErrExchangeFailure) match non-2xx responses
// too, so one sentinel catches every exchange problem; use errors.As
// when the status code matters.
func (e *ExchangeError) Is(target error) bool {
	return target == ErrExchangeFailure
}
