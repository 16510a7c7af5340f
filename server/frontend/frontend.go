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

// Package frontend holds the page data structures and the HTML templates of
// the portal pages.
package frontend

import (
	"embed"
	"html/template"

	"github.com/authgate/authgate/server/model/user"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

//go:embed templates/*.html
var templateFS embed.FS

// HomePageData is the model of the home page.
type HomePageData struct {
	// The title of the page
	Title string

	// Whether a user is logged in
	LoggedIn bool

	// The display name of the logged-in user, if any
	DisplayName string
}

// ProfilePageData is the model of the profile page.
type ProfilePageData struct {
	// The title of the page
	Title string

	// The profile of the logged-in user
	User *user.User
}

// FailurePageData is the model of the failure page.
type FailurePageData struct {
	// The title of the page
	Title string

	// The failure code, either provider supplied or an internal one
	ErrorCode string

	// The human readable failure description
	ErrorDescription string
}

// RegisterTemplates installs the portal page templates on the engine. A
// configured html_static_content_path overrides the embedded templates so
// operators can restyle the pages without rebuilding.
func RegisterTemplates(engine *gin.Engine) {
	if path := viper.GetString("html_static_content_path"); path != "" {
		engine.LoadHTMLGlob(path + "/*.html")

		return
	}

	engine.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))
}
