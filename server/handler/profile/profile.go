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

// Package profile serves the protected profile page.
package profile

import (
	"net/http"

	"github.com/authgate/authgate/server/definitions"
	"github.com/authgate/authgate/server/errors"
	"github.com/authgate/authgate/server/frontend"
	"github.com/authgate/authgate/server/handler/deps"
	"github.com/authgate/authgate/server/middleware/auth"
	"github.com/authgate/authgate/server/model/user"

	"github.com/gin-gonic/gin"
)

// Handler serves the profile page.
type Handler struct {
	deps *deps.Deps
}

// New creates a new Handler.
func New(d *deps.Deps) *Handler {
	return &Handler{deps: d}
}

// Register adds the protected profile route to the router.
func (h *Handler) Register(router gin.IRouter) {
	router.GET("/user", auth.RequireAuth(), h.Profile)
}

// Profile renders the claims of the logged-in user.
func (h *Handler) Profile(ctx *gin.Context) {
	profile, ok := ctx.Value(definitions.CtxUserKey).(*user.User)
	if !ok || profile == nil {
		// RequireAuth guarantees a user, but a broken session payload
		// still falls back to a fresh login.
		ctx.Error(errors.ErrNotAuthenticated)
		ctx.Redirect(http.StatusFound, "/login")

		return
	}

	ctx.HTML(http.StatusOK, "profile.html", frontend.ProfilePageData{
		Title: "Your profile",
		User:  profile,
	})
}
