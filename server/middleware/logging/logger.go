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

// Package logging logs one structured record per HTTP request.
package logging

import (
	"log/slog"
	"time"

	"github.com/authgate/authgate/server/definitions"
	"github.com/authgate/authgate/server/log"
	"github.com/authgate/authgate/server/log/level"
	"github.com/authgate/authgate/server/util"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/ksuid"
)

// LoggerMiddleware creates a middleware for logging HTTP requests and
// responses, including latency and client details. It assigns a unique
// identifier (GUID) to each request for cross-log correlation.
func LoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var logWrapper func(logger *slog.Logger) level.Logger

		guid := ksuid.New().String()
		ctx.Set(definitions.CtxGUIDKey, guid)

		// Start timer
		start := time.Now()

		// Process request
		ctx.Next()

		err := ctx.Errors.Last()

		// Decide which logger to use
		if err != nil {
			logWrapper = level.Error
		} else {
			logWrapper = level.Info
		}

		latency := time.Since(start)

		// Fall back to the global logger if the caller passed nil.
		if logger == nil {
			logger = log.Logger
		}

		logWrapper(logger).Log(
			definitions.LogKeyGUID, guid,
			definitions.LogKeyClientIP, ctx.ClientIP(),
			definitions.LogKeyMethod, ctx.Request.Method,
			definitions.LogKeyProtocol, ctx.Request.Proto,
			definitions.LogKeyHTTPStatus, ctx.Writer.Status(),
			definitions.LogKeyLatency, util.FormatDurationMs(latency),
			definitions.LogKeyUserAgent, func() string {
				if ctx.Request.UserAgent() != "" {
					return ctx.Request.UserAgent()
				}

				return definitions.NotAvailable
			}(),
			definitions.LogKeyUriPath, ctx.Request.URL.Path,
			definitions.LogKeyMsg, func() string {
				if err != nil {
					return err.Error()
				}

				return "HTTP request"
			}(),
		)
	}
}
