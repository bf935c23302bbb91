//go:build integration

package statestore_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/oauthflow/statestore"
)

const testRedisURL = "redis://localhost:6379/0"

func newTestRedisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = testRedisURL
	}

	opts, err := goredis.ParseURL(url)
	require.NoError(t, err)

	client := goredis.NewClient(opts)
	require.NoError(t, client.Ping(context.Background()).Err(), "failed to connect to Redis")

	t.Cleanup(func() { _ = client.Close() })
	return client
}

func callbackWithState(state string) *http.Request {
	return httptest.NewRequest(http.MethodGet, "/auth/callback?code=c&state="+state, nil)
}

func TestRedisStore(t *testing.T) {
	client := newTestRedisClient(t)

	t.Run("store and consume", func(t *testing.T) {
		s := statestore.NewRedis(client, statestore.WithRedisPrefix("test:oauth:state"))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/login", nil)
		require.NoError(t, s.Store(w, r, "redis-state-1"))

		state, err := s.LoadAndClear(httptest.NewRecorder(), callbackWithState("redis-state-1"))
		require.NoError(t, err)
		require.Equal(t, "redis-state-1", state)
	})

	t.Run("single use", func(t *testing.T) {
		s := statestore.NewRedis(client, statestore.WithRedisPrefix("test:oauth:state"))

		r := httptest.NewRequest(http.MethodGet, "/login", nil)
		require.NoError(t, s.Store(httptest.NewRecorder(), r, "redis-state-2"))

		state, err := s.LoadAndClear(httptest.NewRecorder(), callbackWithState("redis-state-2"))
		require.NoError(t, err)
		require.Equal(t, "redis-state-2", state)

		state, err = s.LoadAndClear(httptest.NewRecorder(), callbackWithState("redis-state-2"))
		require.NoError(t, err)
		require.Empty(t, state, "state must be consumed on first load")
	})

	t.Run("unknown state", func(t *testing.T) {
		s := statestore.NewRedis(client, statestore.WithRedisPrefix("test:oauth:state"))

		state, err := s.LoadAndClear(httptest.NewRecorder(), callbackWithState("never-stored"))
		require.NoError(t, err)
		require.Empty(t, state)
	})

	t.Run("missing state parameter", func(t *testing.T) {
		s := statestore.NewRedis(client, statestore.WithRedisPrefix("test:oauth:state"))

		r := httptest.NewRequest(http.MethodGet, "/auth/callback?code=c", nil)
		state, err := s.LoadAndClear(httptest.NewRecorder(), r)
		require.NoError(t, err)
		require.Empty(t, state)
	})

	t.Run("TTL bounds the attempt", func(t *testing.T) {
		s := statestore.NewRedis(client,
			statestore.WithRedisPrefix("test:oauth:state"),
			statestore.WithRedisTTL(time.Second),
		)

		r := httptest.NewRequest(http.MethodGet, "/login", nil)
		require.NoError(t, s.Store(httptest.NewRecorder(), r, "redis-state-3"))

		time.Sleep(1100 * time.Millisecond)

		state, err := s.LoadAndClear(httptest.NewRecorder(), callbackWithState("redis-state-3"))
		require.NoError(t, err)
		require.Empty(t, state, "expired state must not load")
	})
}
