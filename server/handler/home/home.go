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

// Package home serves the landing page.
package home

import (
	"net/http"

	"github.com/authgate/authgate/server/core"
	"github.com/authgate/authgate/server/frontend"
	"github.com/authgate/authgate/server/handler/deps"

	"github.com/gin-gonic/gin"
)

// Handler serves the landing page.
type Handler struct {
	deps *deps.Deps
}

// New creates a new Handler.
func New(d *deps.Deps) *Handler {
	return &Handler{deps: d}
}

// Register adds the landing page route to the router.
func (h *Handler) Register(router gin.IRouter) {
	router.GET("/", h.Home)
}

// Home renders the landing page. A logged-in visitor is greeted by name and
// offered the profile and logout links, while anonymous visitors get the
// login link.
func (h *Handler) Home(ctx *gin.Context) {
	data := frontend.HomePageData{
		Title: "Welcome",
	}

	if profile := core.CurrentUser(ctx); profile != nil {
		data.LoggedIn = true
		data.DisplayName = profile.DisplayName()
	}

	ctx.HTML(http.StatusOK, "home.html", data)
}
