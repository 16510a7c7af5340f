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

// Package metrics tracks HTTP request metrics with Prometheus.
package metrics

import (
	"github.com/authgate/authgate/server/config"
	"github.com/authgate/authgate/server/stats"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMiddleware records request counts per route and, when the
// configuration enables the timer, response durations.
func PrometheusMiddleware(cfg *config.File) gin.HandlerFunc {
	enableTimer := cfg.GetServer().GetPrometheusTimer().IsEnabled()

	return func(ctx *gin.Context) {
		var timer *prometheus.Timer

		path := ctx.FullPath()
		if path == "" {
			path = ctx.Request.URL.Path
		}

		if enableTimer {
			timer = prometheus.NewTimer(stats.HttpResponseTimeSecondsHist.WithLabelValues(path))
		}

		ctx.Next()

		stats.HttpRequestsTotalCounter.WithLabelValues(path).Inc()

		if enableTimer && timer != nil {
			timer.ObserveDuration()
		}
	}
}
