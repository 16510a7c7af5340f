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

// Package stats registers the Prometheus collectors of the portal.
package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HttpRequestsTotalCounter counts HTTP requests by route.
	HttpRequestsTotalCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Number of HTTP requests.",
		},
		[]string{"path"})

	// HttpResponseTimeSecondsHist observes HTTP response durations by route.
	HttpResponseTimeSecondsHist = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_response_time_seconds",
			Help: "Duration of HTTP requests.",
		},
		[]string{"path"})

	// LoginsCounter counts login outcomes. The "result" label is one of
	// "success", "failure" or "error".
	LoginsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Number of failed and successful login attempts.",
		},
		[]string{"result"})

	// TokenStoreHits counts successful server-side token lookups.
	TokenStoreHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "token_store_hits_total",
		Help: "Total number of token store hits",
	})

	// TokenStoreMisses counts failed server-side token lookups.
	TokenStoreMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "token_store_misses_total",
		Help: "Total number of token store misses",
	})

	// RedisReadCounter counts Redis read operations.
	RedisReadCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "redis_read_total",
		Help: "Total number of Redis read operations",
	})

	// RedisWriteCounter counts Redis write operations.
	RedisWriteCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "redis_write_total",
		Help: "Total number of Redis write operations",
	})
)

// Login result label values.
const (
	LoginResultSuccess = "success"
	LoginResultFailure = "failure"
	LoginResultError   = "error"
)
