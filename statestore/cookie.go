package statestore

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/oauthflow"
)

// Errors.
var (
	ErrNoSecret  = errors.New("statestore: secret required")
	ErrBadSecret = errors.New("statestore: secret must be 32+ bytes")
)

const (
	defaultCookieName = "oauth_state"
	defaultCookieTTL  = 10 * time.Minute
)

// Cookie persists the pending CSRF state in a signed, short-lived,
// HttpOnly cookie with SameSite=Lax, so the browser sends it back on the
// provider's top-level redirect but not on cross-site subresource
// requests. The expiry is embedded in the signed value; a stale cookie
// is rejected even if the browser still presents it.
type Cookie struct {
	secret []byte
	name   string
	path   string
	domain string
	secure bool
	ttl    time.Duration
}

// CookieOption configures the Cookie store.
type CookieOption func(*Cookie)

// WithCookieName sets the cookie name. Use distinct names when running
// several flows on the same host. Default: "oauth_state".
func WithCookieName(name string) CookieOption {
	return func(c *Cookie) {
		if name != "" {
			c.name = name
		}
	}
}

// WithCookieTTL bounds how long a pending login attempt stays valid.
// Default: 10 minutes.
func WithCookieTTL(ttl time.Duration) CookieOption {
	return func(c *Cookie) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCookiePath sets the cookie path. Default: "/".
func WithCookiePath(path string) CookieOption {
	return func(c *Cookie) {
		if path != "" {
			c.path = path
		}
	}
}

// WithCookieDomain sets the cookie domain.
func WithCookieDomain(domain string) CookieOption {
	return func(c *Cookie) {
		c.domain = domain
	}
}

// WithSecure sets the Secure flag. Enable in production.
func WithSecure(secure bool) CookieOption {
	return func(c *Cookie) {
		c.secure = secure
	}
}

// NewCookie creates a cookie-backed state store.
// The secret signs the state value and must be at least 32 bytes.
func NewCookie(secret string, opts ...CookieOption) (*Cookie, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if len(secret) < 32 {
		return nil, ErrBadSecret
	}

	c := &Cookie{
		secret: []byte(secret),
		name:   defaultCookieName,
		path:   "/",
		ttl:    defaultCookieTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Store writes the signed state cookie for the pending login attempt.
// A second Store before the callback replaces the pending state.
func (c *Cookie) Store(w http.ResponseWriter, r *http.Request, state string) error {
	expiry := time.Now().Add(c.ttl).UnixNano()
	payload := state + "|" + strconv.FormatInt(expiry, 10)

	// Format: base64(state|expiry).base64(signature)
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload)) +
		"." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	http.SetCookie(w, c.cookie(encoded, int(c.ttl.Seconds())))
	return nil
}

// LoadAndClear consumes the pending state: the cookie is expired on the
// response before the value is even inspected, so it can never be matched
// twice. A missing, tampered, or stale cookie yields "" with a nil error;
// the flow engine turns that into a state mismatch.
func (c *Cookie) LoadAndClear(w http.ResponseWriter, r *http.Request) (string, error) {
	raw, err := r.Cookie(c.name)
	if err != nil {
		return "", nil
	}

	http.SetCookie(w, c.cookie("", -1))

	parts := strings.SplitN(raw.Value, ".", 2)
	if len(parts) != 2 {
		return "", nil
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", nil
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", nil
	}

	mac := hmac.New(sha256.New, c.secret)
	mac.Write(payload)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return "", nil
	}

	state, expiryStr, ok := strings.Cut(string(payload), "|")
	if !ok {
		return "", nil
	}
	expiry, err := strconv.ParseInt(expiryStr, 10, 64)
	if err != nil || time.Now().UnixNano() > expiry {
		return "", nil
	}

	return state, nil
}

func (c *Cookie) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     c.path,
		Domain:   c.domain,
		MaxAge:   maxAge,
		Secure:   c.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

var _ oauthflow.StateStore = (*Cookie)(nil)
