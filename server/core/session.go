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

// Package core provides the session plumbing shared by all handlers: the
// cookie store, the logged-in user helpers and the flash messages.
package core

import (
	"net/http"

	"github.com/authgate/authgate/server/config"
	"github.com/authgate/authgate/server/definitions"
	"github.com/authgate/authgate/server/model/user"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupSessionStore initializes and returns a session store configured with
// cookie-based storage and security options. SameSite stays at Lax because
// the provider's callback redirect is a cross-site navigation; Strict would
// drop the session cookie on /callback and break the state check.
func SetupSessionStore(cfg *config.File) sessions.Store {
	frontend := cfg.GetServer().GetFrontend()

	var keyPairs [][]byte

	keyPairs = append(keyPairs, []byte(frontend.CookieStoreAuthKey))

	if frontend.CookieStoreEncKey != "" {
		keyPairs = append(keyPairs, []byte(frontend.CookieStoreEncKey))
	}

	sessionStore := cookie.NewStore(keyPairs...)
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(frontend.GetSessionMaxAge().Seconds()),
		Secure:   !frontend.InsecureCookie,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sessionStore
}

// CurrentUser returns the logged-in user stored in the session, or nil for
// anonymous requests.
func CurrentUser(ctx *gin.Context) *user.User {
	session := sessions.Default(ctx)

	raw, ok := session.Get(definitions.CookieUser).(string)
	if !ok || raw == "" {
		return nil
	}

	profile, err := user.Deserialize(raw)
	if err != nil {
		return nil
	}

	return profile
}

// SaveLogin writes the user profile and the server-side token reference into
// the session and drops the one-shot login state values.
func SaveLogin(ctx *gin.Context, profile *user.User, tokenRef string) error {
	raw, err := profile.Serialize()
	if err != nil {
		return err
	}

	session := sessions.Default(ctx)

	session.Delete(definitions.CookieState)
	session.Delete(definitions.CookieNonce)
	session.Delete(definitions.CookieRedirectTo)

	session.Set(definitions.CookieUser, raw)
	session.Set(definitions.CookieTokenRef, tokenRef)

	return session.Save()
}

// TokenRef returns the server-side token store reference of the session.
func TokenRef(ctx *gin.Context) string {
	session := sessions.Default(ctx)

	ref, _ := session.Get(definitions.CookieTokenRef).(string)

	return ref
}

// ClearSession removes all session state and expires the cookie.
func ClearSession(ctx *gin.Context) error {
	session := sessions.Default(ctx)

	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})

	return session.Save()
}
