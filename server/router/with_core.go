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

package router

import (
	mdmet "github.com/authgate/authgate/server/middleware/metrics"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// WithRecovery adds gin.Recovery middleware to recover from panics.
func (r *Router) WithRecovery() *Router {
	r.Engine.Use(gin.Recovery())

	return r
}

// WithTrustedProxies configures the trusted proxies for the underlying engine.
func (r *Router) WithTrustedProxies() *Router {
	r.Engine.SetTrustedProxies(r.Cfg.GetServer().GetTrustedProxies())

	return r
}

// WithResponseCompression applies response compression according to server config.
func (r *Router) WithResponseCompression() *Router {
	compression := r.Cfg.GetServer().GetCompression()
	if !compression.IsEnabled() {
		return r
	}

	level := compression.Level
	if level == 0 {
		level = gzip.DefaultCompression
	}

	r.Engine.Use(gzip.Gzip(level))

	return r
}

// WithMetricsMiddleware enables Prometheus request metrics middleware.
func (r *Router) WithMetricsMiddleware() *Router {
	r.Engine.Use(mdmet.PrometheusMiddleware(r.Cfg))

	return r
}

// WithMetricsRoute registers the GET /metrics handler provided by the caller.
func (r *Router) WithMetricsRoute(handler gin.HandlerFunc) *Router {
	r.Engine.GET("/metrics", handler)

	return r
}

// WithHealth registers the health endpoint using the given handler.
func (r *Router) WithHealth(handler gin.HandlerFunc) *Router {
	r.Engine.GET("/ping", handler)

	return r
}

// WithHealthz registers the readiness endpoint using the given handler.
func (r *Router) WithHealthz(handler gin.HandlerFunc) *Router {
	r.Engine.GET("/healthz", handler)

	return r
}

// WithFrontend calls the provided setup function to register the portal pages.
func (r *Router) WithFrontend(setup func(*gin.Engine)) *Router {
	if setup != nil {
		setup(r.Engine)
	}

	return r
}
