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

// Package auth gates routes behind a logged-in check.
package auth

import (
	"net/http"
	"net/url"

	"github.com/authgate/authgate/server/core"
	"github.com/authgate/authgate/server/definitions"

	"github.com/gin-gonic/gin"
)

// RequireAuth ensures the user is logged in. Anonymous requests are sent to
// /login with the original path as return_to; the profile of logged-in users
// is placed in the request context.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		profile := core.CurrentUser(ctx)

		if profile == nil {
			ctx.Redirect(http.StatusFound, "/login?return_to="+url.QueryEscape(ctx.Request.URL.RequestURI()))
			ctx.Abort()

			return
		}

		ctx.Set(definitions.CtxUserKey, profile)

		ctx.Next()
	}
}
