// Copyright (C) 2025 Authgate Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

package auth

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/authgate/authgate/server/config"
	"github.com/authgate/authgate/server/definitions"
	"github.com/authgate/authgate/server/errors"
	"github.com/authgate/authgate/server/frontend"
	"github.com/authgate/authgate/server/handler/deps"
	"github.com/authgate/authgate/server/handler/home"
	"github.com/authgate/authgate/server/handler/profile"
	"github.com/authgate/authgate/server/model/user"
	"github.com/authgate/authgate/server/openid"
	"github.com/authgate/authgate/server/stats"
	"github.com/authgate/authgate/server/tokenstore"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type stubRelyingParty struct {
	login         *openid.Login
	authErr       error
	endSessionURL string
}

func (s *stubRelyingParty) AuthCodeURL(state, nonce string) string {
	return "https://idp.example.com/authorize?state=" + url.QueryEscape(state) + "&nonce=" + url.QueryEscape(nonce)
}

func (s *stubRelyingParty) Authenticate(_ context.Context, _, _ string) (*openid.Login, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}

	return s.login, nil
}

func (s *stubRelyingParty) EndSessionURL(_, _ string) string {
	return s.endSessionURL
}

func testLogin() *openid.Login {
	return &openid.Login{
		User:       &user.User{Subject: "user-1", Name: "Jane Roe", Email: "jane@example.com"},
		Token:      &oauth2.Token{AccessToken: "at", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)},
		RawIDToken: "raw-id-token",
	}
}

func newTestEngine(t *testing.T, rp openid.RelyingParty) (*gin.Engine, *deps.Deps) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cfg := &config.File{}

	d := &deps.Deps{
		Cfg:    cfg,
		Logger: slog.Default(),
		RP:     rp,
		Tokens: tokenstore.NewMemoryStore(time.Hour),
	}

	engine := gin.New()
	engine.Use(sessions.Sessions(definitions.SessionName, cookie.NewStore([]byte("secret"))))

	frontend.RegisterTemplates(engine)

	New(d).Register(engine)
	home.New(d).Register(engine)
	profile.New(d).Register(engine)

	return engine, d
}

// browser keeps the session cookies between requests like a real user agent.
type browser struct {
	engine  *gin.Engine
	cookies []*http.Cookie
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)

	for _, c := range b.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()

	b.engine.ServeHTTP(w, req)

	if set := w.Result().Cookies(); len(set) > 0 {
		b.cookies = set
	}

	return w
}

func TestLoginRedirectsToProvider(t *testing.T) {
	engine, _ := newTestEngine(t, &stubRelyingParty{})
	b := &browser{engine: engine}

	w := b.get("/login")

	require.Equal(t, http.StatusFound, w.Code)

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)

	assert.Equal(t, "idp.example.com", location.Host)
	assert.NotEmpty(t, location.Query().Get("state"))
	assert.NotEmpty(t, location.Query().Get("nonce"))
	assert.NotEmpty(t, b.cookies)
}

func TestCallbackStateMismatch(t *testing.T) {
	engine, _ := newTestEngine(t, &stubRelyingParty{login: testLogin()})
	b := &browser{engine: engine}

	b.get("/login")

	w := b.get("/callback?state=wrong&code=abc")

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/failure", w.Header().Get("Location"))

	w = b.get("/failure")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), definitions.FailureStateMismatch)
}

func TestCallbackWithoutSessionState(t *testing.T) {
	engine, _ := newTestEngine(t, &stubRelyingParty{login: testLogin()})
	b := &browser{engine: engine}

	w := b.get("/callback?state=anything&code=abc")

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/failure", w.Header().Get("Location"))
}

func TestCallbackProviderError(t *testing.T) {
	engine, _ := newTestEngine(t, &stubRelyingParty{})
	b := &browser{engine: engine}

	b.get("/login")

	w := b.get("/callback?error=access_denied&error_description=The+user+said+no")

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/failure", w.Header().Get("Location"))

	w = b.get("/failure")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_denied")
	assert.Contains(t, w.Body.String(), "The user said no")
}

func TestCallbackSuccessEstablishesSession(t *testing.T) {
	engine, _ := newTestEngine(t, &stubRelyingParty{login: testLogin()})
	b := &browser{engine: engine}

	w := b.get("/login")

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)

	state := location.Query().Get("state")

	w = b.get("/callback?state=" + url.QueryEscape(state) + "&code=abc")

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/user", w.Header().Get("Location"))

	w = b.get("/user")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jane Roe")
	assert.Contains(t, w.Body.String(), "user-1")

	w = b.get("/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jane Roe")
}

func TestCallbackHonorsReturnTo(t *testing.T) {
	engine, _ := newTestEngine(t, &stubRelyingParty{login: testLogin()})
	b := &browser{engine: engine}

	w := b.get("/login?return_to=/user")

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)

	w = b.get("/callback?state=" + url.QueryEscape(location.Query().Get("state")) + "&code=abc")

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/user", w.Header().Get("Location"))
}

// failingTokenStore rejects every save so the callback error path can be
// exercised.
type failingTokenStore struct{}

func (f *failingTokenStore) Save(_ context.Context, _ string, _ *tokenstore.Entry) error {
	return stderrors.New("store down")
}

func (f *failingTokenStore) Load(_ context.Context, _ string) (*tokenstore.Entry, error) {
	return nil, errors.ErrTokenNotFound
}

func (f *failingTokenStore) Delete(_ context.Context, _ string) error {
	return nil
}

func TestCallbackTokenSaveFailureCountsError(t *testing.T) {
	engine, d := newTestEngine(t, &stubRelyingParty{login: testLogin()})
	d.Tokens = &failingTokenStore{}

	b := &browser{engine: engine}

	before := testutil.ToFloat64(stats.LoginsCounter.WithLabelValues(stats.LoginResultError))

	w := b.get("/login")

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)

	w = b.get("/callback?state=" + url.QueryEscape(location.Query().Get("state")) + "&code=abc")

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/failure", w.Header().Get("Location"))
	assert.Equal(t, before+1, testutil.ToFloat64(stats.LoginsCounter.WithLabelValues(stats.LoginResultError)))
}

func TestCallbackRejectsBackslashReturnTo(t *testing.T) {
	engine, _ := newTestEngine(t, &stubRelyingParty{login: testLogin()})
	b := &browser{engine: engine}

	w := b.get(`/login?return_to=/\evil.example.com`)

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)

	w = b.get("/callback?state=" + url.QueryEscape(location.Query().Get("state")) + "&code=abc")

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/user", w.Header().Get("Location"))
}

func TestCallbackAuthenticateFailure(t *testing.T) {
	engine, _ := newTestEngine(t, &stubRelyingParty{authErr: errors.ErrNoIDToken})
	b := &browser{engine: engine}

	w := b.get("/login")

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)

	w = b.get("/callback?state=" + url.QueryEscape(location.Query().Get("state")) + "&code=abc")

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/failure", w.Header().Get("Location"))

	w = b.get("/failure")

	assert.Contains(t, w.Body.String(), definitions.FailureMissingIDToken)
}

func TestLogoutClearsSession(t *testing.T) {
	engine, _ := newTestEngine(t, &stubRelyingParty{login: testLogin()})
	b := &browser{engine: engine}

	w := b.get("/login")

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)

	b.get("/callback?state=" + url.QueryEscape(location.Query().Get("state")) + "&code=abc")

	w = b.get("/logout")

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = b.get("/user")

	require.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/login"))
}

func TestLogoutUsesProviderEndSession(t *testing.T) {
	rp := &stubRelyingParty{login: testLogin(), endSessionURL: "https://idp.example.com/logout?id_token_hint=raw-id-token"}

	engine, d := newTestEngine(t, rp)
	d.Cfg.OIDC.ProviderLogout = true

	b := &browser{engine: engine}

	w := b.get("/login")

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)

	b.get("/callback?state=" + url.QueryEscape(location.Query().Get("state")) + "&code=abc")

	w = b.get("/logout")

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, rp.endSessionURL, w.Header().Get("Location"))
}

func TestFailureWithoutFlash(t *testing.T) {
	engine, _ := newTestEngine(t, &stubRelyingParty{})
	b := &browser{engine: engine}

	w := b.get("/failure")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), definitions.NotAvailable)
}

func TestFailureCodeMapping(t *testing.T) {
	var tests = []struct {
		name     string
		err      error
		expected string
	}{
		{"missing id token", errors.ErrNoIDToken, definitions.FailureMissingIDToken},
		{"nonce mismatch", errors.ErrNonceMismatch, definitions.FailureVerifyFailed},
		{"exchange rejected", &oauth2.RetrieveError{}, definitions.FailureExchangeFailed},
		{"verification", errors.ErrNotAuthenticated, definitions.FailureVerifyFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failureCode(tt.err))
		})
	}
}

func TestSanitizeReturnTo(t *testing.T) {
	assert.Equal(t, "/user", sanitizeReturnTo("/user"))
	assert.Equal(t, "", sanitizeReturnTo(""))
	assert.Equal(t, "", sanitizeReturnTo("https://evil.example.com/"))
	assert.Equal(t, "", sanitizeReturnTo("//evil.example.com/"))
	assert.Equal(t, "", sanitizeReturnTo(`/\evil.example.com/`))
	assert.Equal(t, "", sanitizeReturnTo(`/user\..\admin`))
}
