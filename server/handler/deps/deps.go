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

// Package deps bundles the shared dependencies of the HTTP handlers so
// registration code stays uniform and tests can substitute each seam.
package deps

import (
	"log/slog"

	"github.com/authgate/authgate/server/config"
	"github.com/authgate/authgate/server/openid"
	"github.com/authgate/authgate/server/tokenstore"

	"github.com/gin-contrib/sessions"
)

// Deps carries the shared handler dependencies.
type Deps struct {
	// Cfg is the loaded configuration.
	Cfg *config.File

	// Logger is the process logger.
	Logger *slog.Logger

	// RP performs the handoff to the identity provider.
	RP openid.RelyingParty

	// Store is the cookie session store.
	Store sessions.Store

	// Tokens persists OAuth2 tokens server side.
	Tokens tokenstore.Store
}
