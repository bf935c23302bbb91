package statestore_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/oauthflow"
	"github.com/dmitrymomot/oauthflow/statestore"
)

type demoUser struct{}

// Drives the full browser dance with the cookie store: redirect, carry the
// cookie to the callback, exchange the code against a fake token endpoint.
func TestCookieBackedFlow(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"abc","token_type":"bearer"}`))
	}))
	defer ts.Close()

	states, err := statestore.NewCookie(testSecret)
	require.NoError(t, err)

	flow, err := oauthflow.New[demoUser](oauthflow.Config{
		ClientID:     "test-id",
		ClientSecret: "test-secret",
		RedirectURL:  "http://app.example.com/auth/callback",
		Provider:     oauthflow.CustomProvider("https://idp.example.com/authorize", ts.URL),
	},
		oauthflow.WithStateStore(states),
		oauthflow.WithHTTPClient(ts.Client()),
	)
	require.NoError(t, err)

	// Leg 1: login redirect sets the state cookie.
	w := httptest.NewRecorder()
	require.NoError(t, flow.Redirect(w, httptest.NewRequest(http.MethodGet, "/login", nil)))
	require.Equal(t, http.StatusFound, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)

	// Leg 2: provider redirects back; browser presents the cookie.
	cb := httptest.NewRequest(http.MethodGet, "/auth/callback?code=the-code&state="+url.QueryEscape(state), nil)
	cb.AddCookie(cookies[0])

	token, err := flow.HandleCallback(httptest.NewRecorder(), cb)
	require.NoError(t, err)
	require.Equal(t, "abc", token.AccessToken)

	// Replay: the cookie was cleared, the same callback must now fail.
	cb2 := httptest.NewRequest(http.MethodGet, "/auth/callback?code=the-code&state="+url.QueryEscape(state), nil)
	_, err = flow.HandleCallback(httptest.NewRecorder(), cb2)
	require.ErrorIs(t, err, oauthflow.ErrStateMismatch)
}
