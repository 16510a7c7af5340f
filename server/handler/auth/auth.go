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

// Package auth implements the login handoff routes: /login, /callback,
// /logout and /failure.
package auth

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/authgate/authgate/server/core"
	"github.com/authgate/authgate/server/definitions"
	"github.com/authgate/authgate/server/errors"
	"github.com/authgate/authgate/server/frontend"
	"github.com/authgate/authgate/server/handler/deps"
	"github.com/authgate/authgate/server/log/level"
	"github.com/authgate/authgate/server/stats"
	"github.com/authgate/authgate/server/tokenstore"
	"github.com/authgate/authgate/server/util"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/segmentio/ksuid"
	"golang.org/x/oauth2"
)

// Handler serves the login flow routes.
type Handler struct {
	deps *deps.Deps
}

// New creates a new Handler.
func New(d *deps.Deps) *Handler {
	return &Handler{deps: d}
}

// Register adds the login flow routes to the router.
func (h *Handler) Register(router gin.IRouter) {
	router.GET("/login", h.Login)
	router.GET("/callback", h.Callback)
	router.GET("/logout", h.Logout)
	router.GET("/failure", h.Failure)
}

// Login begins the handoff: it stores fresh state and nonce values in the
// session and redirects the browser to the provider's authorization endpoint.
func (h *Handler) Login(ctx *gin.Context) {
	state, err := util.RandString(16)
	if err != nil {
		ctx.AbortWithError(http.StatusInternalServerError, err)

		return
	}

	nonce, err := util.RandString(16)
	if err != nil {
		ctx.AbortWithError(http.StatusInternalServerError, err)

		return
	}

	session := sessions.Default(ctx)

	session.Set(definitions.CookieState, state)
	session.Set(definitions.CookieNonce, nonce)

	if returnTo := sanitizeReturnTo(ctx.Query("return_to")); returnTo != "" {
		session.Set(definitions.CookieRedirectTo, returnTo)
	} else {
		session.Delete(definitions.CookieRedirectTo)
	}

	if err := session.Save(); err != nil {
		ctx.AbortWithError(http.StatusInternalServerError, err)

		return
	}

	authURL := h.deps.RP.AuthCodeURL(state, nonce)

	level.Debug(h.deps.Logger).Log(
		definitions.LogKeyGUID, ctx.GetString(definitions.CtxGUIDKey),
		definitions.LogKeyMsg, "Starting login handoff",
		definitions.LogKeyRedirectTo, authURL,
	)

	ctx.Redirect(http.StatusFound, authURL)
}

// Callback receives the provider's redirect, validates the state, exchanges
// the code and establishes the session. Every failure ends on /failure with
// a flash-recorded code and description.
func (h *Handler) Callback(ctx *gin.Context) {
	guid := ctx.GetString(definitions.CtxGUIDKey)

	// The provider reports user-visible failures in the query string.
	if errCode := ctx.Query("error"); errCode != "" {
		h.failLogin(ctx, stats.LoginResultFailure, errCode, ctx.Query("error_description"))

		return
	}

	session := sessions.Default(ctx)

	expectedState, _ := session.Get(definitions.CookieState).(string)
	nonce, _ := session.Get(definitions.CookieNonce).(string)
	returnTo, _ := session.Get(definitions.CookieRedirectTo).(string)

	if expectedState == "" || ctx.Query("state") != expectedState {
		h.failLogin(ctx, stats.LoginResultFailure, definitions.FailureStateMismatch, errors.ErrStateMismatch.Error())

		return
	}

	code := ctx.Query("code")
	if code == "" {
		h.failLogin(ctx, stats.LoginResultFailure, definitions.FailureExchangeFailed, errors.ErrNoAuthCode.Error())

		return
	}

	login, err := h.deps.RP.Authenticate(ctx.Request.Context(), code, nonce)
	if err != nil {
		h.failLogin(ctx, stats.LoginResultFailure, failureCode(err), err.Error())

		return
	}

	tokenRef := ksuid.New().String()

	if err := h.deps.Tokens.Save(ctx.Request.Context(), tokenRef, tokenstore.NewEntry(login.User.Subject, login.Token, login.RawIDToken)); err != nil {
		level.Error(h.deps.Logger).Log(
			definitions.LogKeyGUID, guid,
			definitions.LogKeyMsg, "Unable to persist tokens",
			definitions.LogKeyError, err,
		)

		h.failLogin(ctx, stats.LoginResultError, definitions.FailureExchangeFailed, "token persistence failed")

		return
	}

	if err := core.SaveLogin(ctx, login.User, tokenRef); err != nil {
		h.failLogin(ctx, stats.LoginResultError, definitions.FailureExchangeFailed, "session persistence failed")

		return
	}

	stats.LoginsCounter.WithLabelValues(stats.LoginResultSuccess).Inc()

	level.Info(h.deps.Logger).Log(
		definitions.LogKeyGUID, guid,
		definitions.LogKeyMsg, "Login completed",
		definitions.LogKeySubject, login.User.Subject,
	)

	if returnTo == "" {
		returnTo = "/user"
	}

	ctx.Redirect(http.StatusFound, returnTo)
}

// Logout clears local session state and redirects home. With provider_logout
// enabled the browser is sent through the provider's end-session endpoint
// instead, ending both sessions.
func (h *Handler) Logout(ctx *gin.Context) {
	var idTokenHint string

	if ref := core.TokenRef(ctx); ref != "" {
		if entry, err := h.deps.Tokens.Load(ctx.Request.Context(), ref); err == nil {
			idTokenHint = entry.IDToken
		}

		if err := h.deps.Tokens.Delete(ctx.Request.Context(), ref); err != nil {
			level.Error(h.deps.Logger).Log(
				definitions.LogKeyGUID, ctx.GetString(definitions.CtxGUIDKey),
				definitions.LogKeyMsg, "Unable to delete stored tokens",
				definitions.LogKeyError, err,
			)
		}
	}

	if err := core.ClearSession(ctx); err != nil {
		ctx.AbortWithError(http.StatusInternalServerError, err)

		return
	}

	target := "/"

	oidcCfg := h.deps.Cfg.GetOIDC()
	if oidcCfg.WantsProviderLogout() {
		if endSession := h.deps.RP.EndSessionURL(idTokenHint, oidcCfg.GetPostLogoutRedirectURL()); endSession != "" {
			target = endSession
		}
	}

	ctx.Redirect(http.StatusFound, target)
}

// Failure renders the one-shot failure code and description left behind by
// the callback. Without flash state a generic message is shown.
func (h *Handler) Failure(ctx *gin.Context) {
	code, detail, ok := core.PopFlash(ctx)
	if !ok {
		code = definitions.NotAvailable
		detail = "No recent login failure recorded."
	}

	ctx.HTML(http.StatusOK, "failure.html", frontend.FailurePageData{
		Title:            "Login failed",
		ErrorCode:        code,
		ErrorDescription: detail,
	})
}

// failLogin records the failure for /failure, counts it under the given
// result label and redirects there.
func (h *Handler) failLogin(ctx *gin.Context, result, code, detail string) {
	guid := ctx.GetString(definitions.CtxGUIDKey)

	stats.LoginsCounter.WithLabelValues(result).Inc()

	ctx.Error(errors.NewDetailedError(code).WithGUID(guid).WithDetail(detail))

	level.Warn(h.deps.Logger).Log(
		definitions.LogKeyGUID, guid,
		definitions.LogKeyMsg, "Login failed",
		"failure_code", code,
		"failure_detail", detail,
	)

	if err := core.SetFlash(ctx, code, detail); err != nil {
		level.Error(h.deps.Logger).Log(
			definitions.LogKeyGUID, ctx.GetString(definitions.CtxGUIDKey),
			definitions.LogKeyMsg, "Unable to store flash state",
			definitions.LogKeyError, err,
		)
	}

	ctx.Redirect(http.StatusFound, "/failure")
}

// failureCode maps an authentication error onto the code shown on /failure.
func failureCode(err error) string {
	var retrieveErr *oauth2.RetrieveError

	switch {
	case stderrors.Is(err, errors.ErrNoIDToken):
		return definitions.FailureMissingIDToken
	case stderrors.Is(err, errors.ErrNonceMismatch):
		return definitions.FailureVerifyFailed
	case stderrors.As(err, &retrieveErr):
		return definitions.FailureExchangeFailed
	default:
		return definitions.FailureVerifyFailed
	}
}

// sanitizeReturnTo only accepts local, absolute paths so the login flow can
// never be abused as an open redirector. Backslashes are rejected because
// browsers normalize them to slashes, turning "/\host" into a scheme-relative
// redirect.
func sanitizeReturnTo(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") {
		return ""
	}

	if strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return ""
	}

	return target
}
