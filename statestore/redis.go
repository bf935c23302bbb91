package statestore

import (
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/oauthflow"
)

const (
	defaultRedisPrefix = "oauthflow:state"
	defaultRedisTTL    = 10 * time.Minute
)

// Redis persists pending CSRF state server-side, keyed by the state value
// with a bounded TTL. The state is consumed atomically with GETDEL, so
// concurrent callbacks with the same state can match at most once. Works
// across instances, which cookie storage cannot when the callback lands
// behind a load balancer without sticky sessions.
//
// A callback that carries no state parameter (e.g. some provider denials)
// cannot locate the pending key, which is then discarded by the TTL
// rather than immediately; keep the TTL short.
type Redis struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisOption configures the Redis store.
type RedisOption func(*Redis)

// WithRedisPrefix sets the key prefix. Keys are stored as
// "{prefix}:{state}". Default: "oauthflow:state".
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *Redis) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithRedisTTL bounds how long a pending login attempt stays valid.
// Default: 10 minutes.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(s *Redis) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewRedis creates a Redis-backed state store. The client lifecycle is
// managed by the caller.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	s := &Redis{
		client: client,
		prefix: defaultRedisPrefix,
		ttl:    defaultRedisTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store records the state under its own value with the configured TTL.
func (s *Redis) Store(w http.ResponseWriter, r *http.Request, state string) error {
	return s.client.Set(r.Context(), s.key(state), "1", s.ttl).Err()
}

// LoadAndClear looks up the state the callback presented and deletes it
// in the same operation. An unknown or expired state yields "" with a
// nil error; storage failures are returned as errors.
func (s *Redis) LoadAndClear(w http.ResponseWriter, r *http.Request) (string, error) {
	state := r.URL.Query().Get("state")
	if state == "" {
		return "", nil
	}

	if err := s.client.GetDel(r.Context(), s.key(state)).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}

	return state, nil
}

func (s *Redis) key(state string) string {
	return s.prefix + ":" + state
}

var _ oauthflow.StateStore = (*Redis)(nil)
