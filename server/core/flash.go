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

package core

import (
	"github.com/authgate/authgate/server/definitions"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SetFlash records a one-shot failure code and description in the session.
// The /failure page consumes it on the next request.
func SetFlash(ctx *gin.Context, code, detail string) error {
	session := sessions.Default(ctx)

	session.Set(definitions.CookieFlashCode, code)
	session.Set(definitions.CookieFlashDetail, detail)

	return session.Save()
}

// PopFlash returns the stored failure code and description and removes them
// from the session, so a reload of /failure shows the generic message.
func PopFlash(ctx *gin.Context) (code string, detail string, ok bool) {
	session := sessions.Default(ctx)

	code, ok = session.Get(definitions.CookieFlashCode).(string)
	detail, _ = session.Get(definitions.CookieFlashDetail).(string)

	if !ok {
		return "", "", false
	}

	session.Delete(definitions.CookieFlashCode)
	session.Delete(definitions.CookieFlashDetail)

	_ = session.Save()

	return code, detail, true
}
