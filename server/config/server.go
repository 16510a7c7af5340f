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

package config

import (
	"time"
)

// ServerSection represents the configuration for the HTTP server, including
// network settings, TLS, logging, session cookies, Redis and insights.
type ServerSection struct {
	Address         string          `mapstructure:"address"`
	InstanceName    string          `mapstructure:"instance_name"`
	TrustedProxies  []string        `mapstructure:"trusted_proxies"`
	TLS             TLS             `mapstructure:"tls"`
	Log             Log             `mapstructure:"log"`
	Insights        Insights        `mapstructure:"insights"`
	Redis           Redis           `mapstructure:"redis"`
	Frontend        Frontend        `mapstructure:"frontend"`
	PrometheusTimer PrometheusTimer `mapstructure:"prometheus_timer"`
	Compression     Compression     `mapstructure:"compression"`
	HTTPClient      HTTPClient      `mapstructure:"http_client"`
	KeepAlive       KeepAlive       `mapstructure:"keep_alive"`
}

// TLS represents the configuration for enabling TLS and managing certificates.
type TLS struct {
	Enabled bool   `mapstructure:"enabled"`
	Cert    string `mapstructure:"cert"`
	Key     string `mapstructure:"key"`
}

// Log holds the logging settings.
type Log struct {
	Level    string `mapstructure:"level" validate:"omitempty,oneof=none error warn info debug"`
	JSON     bool   `mapstructure:"json"`
	DbgModul bool   `mapstructure:"debug_modules"`
}

// Insights enables optional runtime introspection endpoints.
type Insights struct {
	EnablePprof bool `mapstructure:"enable_pprof"`
}

// Redis holds the connection settings for the optional server-side token
// store. An empty address selects the in-memory store.
type Redis struct {
	Address  string        `mapstructure:"address"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Database int           `mapstructure:"database_number"`
	Prefix   string        `mapstructure:"prefix"`
	PoolSize int           `mapstructure:"pool_size"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// Frontend holds the session cookie settings.
type Frontend struct {
	CookieStoreAuthKey string        `mapstructure:"cookie_store_auth_key" validate:"required,len=32"`
	CookieStoreEncKey  string        `mapstructure:"cookie_store_encryption_key"`
	SessionMaxAge      time.Duration `mapstructure:"session_max_age"`
	InsecureCookie     bool          `mapstructure:"insecure_cookie"`
}

// PrometheusTimer is a configuration structure for enabling and setting labels for Prometheus metrics timers.
type PrometheusTimer struct {
	Enabled bool     `mapstructure:"enabled"`
	Labels  []string `mapstructure:"labels"`
}

// Compression configures gzip response compression.
type Compression struct {
	Enabled bool `mapstructure:"enabled"`
	Level   int  `mapstructure:"level" validate:"omitempty,min=-2,max=9"`
}

// HTTPClient bounds outbound requests to the identity provider.
type HTTPClient struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// KeepAlive holds the HTTP keep-alive settings.
type KeepAlive struct {
	Enabled bool          `mapstructure:"enabled"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// GetTLS returns the TLS settings.
func (s *ServerSection) GetTLS() *TLS {
	if s == nil {
		return &TLS{}
	}

	return &s.TLS
}

// GetLog returns the logging settings.
func (s *ServerSection) GetLog() *Log {
	if s == nil {
		return &Log{}
	}

	return &s.Log
}

// GetInsights returns the insights settings.
func (s *ServerSection) GetInsights() *Insights {
	if s == nil {
		return &Insights{}
	}

	return &s.Insights
}

// GetRedis returns the Redis settings.
func (s *ServerSection) GetRedis() *Redis {
	if s == nil {
		return &Redis{}
	}

	return &s.Redis
}

// GetFrontend returns the session cookie settings.
func (s *ServerSection) GetFrontend() *Frontend {
	if s == nil {
		return &Frontend{}
	}

	return &s.Frontend
}

// GetPrometheusTimer returns the Prometheus timer settings.
func (s *ServerSection) GetPrometheusTimer() *PrometheusTimer {
	if s == nil {
		return &PrometheusTimer{}
	}

	return &s.PrometheusTimer
}

// GetCompression returns the response compression settings.
func (s *ServerSection) GetCompression() *Compression {
	if s == nil {
		return &Compression{}
	}

	return &s.Compression
}

// GetHTTPClient returns the outbound HTTP client settings.
func (s *ServerSection) GetHTTPClient() *HTTPClient {
	if s == nil {
		return &HTTPClient{}
	}

	return &s.HTTPClient
}

// GetKeepAlive returns the keep-alive settings.
func (s *ServerSection) GetKeepAlive() *KeepAlive {
	if s == nil {
		return &KeepAlive{}
	}

	return &s.KeepAlive
}

// GetTrustedProxies returns the configured trusted proxies.
func (s *ServerSection) GetTrustedProxies() []string {
	if s == nil {
		return nil
	}

	return s.TrustedProxies
}

// IsEnabled reports whether TLS is switched on.
func (t *TLS) IsEnabled() bool {
	return t != nil && t.Enabled
}

// GetCert returns the certificate path.
func (t *TLS) GetCert() string {
	if t == nil {
		return ""
	}

	return t.Cert
}

// GetKey returns the private key path.
func (t *TLS) GetKey() string {
	if t == nil {
		return ""
	}

	return t.Key
}

// IsPprofEnabled reports whether the pprof endpoints are switched on.
func (i *Insights) IsPprofEnabled() bool {
	return i != nil && i.EnablePprof
}

// IsEnabled reports whether the Prometheus request timer is switched on.
func (p *PrometheusTimer) IsEnabled() bool {
	return p != nil && p.Enabled
}

// IsEnabled reports whether gzip compression is switched on.
func (c *Compression) IsEnabled() bool {
	return c != nil && c.Enabled
}

// GetPrefix returns the Redis key prefix.
func (r *Redis) GetPrefix() string {
	if r == nil {
		return ""
	}

	return r.Prefix
}

// GetTokenTTL returns the TTL for server-side token entries. Tokens without
// a configured TTL expire after twelve hours.
func (r *Redis) GetTokenTTL() time.Duration {
	if r == nil || r.TokenTTL <= 0 {
		return 12 * time.Hour
	}

	return r.TokenTTL
}

// GetSessionMaxAge returns the lifetime of the session cookie.
func (f *Frontend) GetSessionMaxAge() time.Duration {
	if f == nil || f.SessionMaxAge <= 0 {
		return 8 * time.Hour
	}

	return f.SessionMaxAge
}
