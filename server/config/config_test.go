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
	"testing"
	"time"

	"github.com/authgate/authgate/server/definitions"
	"github.com/authgate/authgate/server/errors"

	"github.com/stretchr/testify/assert"
)

func TestGetLogLevel(t *testing.T) {
	var tests = []struct {
		level    string
		expected int
	}{
		{"none", definitions.LogLevelNone},
		{"error", definitions.LogLevelError},
		{"warn", definitions.LogLevelWarn},
		{"info", definitions.LogLevelInfo},
		{"debug", definitions.LogLevelDebug},
		{"", definitions.LogLevelInfo},
		{"bogus", definitions.LogLevelInfo},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			cfg := &File{}
			cfg.Server.Log.Level = tt.level

			assert.Equal(t, tt.expected, cfg.GetLogLevel())
		})
	}
}

func TestNilSafeGetters(t *testing.T) {
	var cfg *File

	assert.Nil(t, cfg.GetServer())
	assert.Nil(t, cfg.GetOIDC())
	assert.Equal(t, definitions.InstanceName, cfg.GetInstanceName())
	assert.Equal(t, definitions.LogLevelInfo, cfg.GetLogLevel())

	var server *ServerSection

	assert.False(t, server.GetTLS().IsEnabled())
	assert.False(t, server.GetInsights().IsPprofEnabled())
	assert.Empty(t, server.GetTrustedProxies())
	assert.NotNil(t, server.GetRedis())
	assert.NotNil(t, server.GetFrontend())
}

func TestOIDCDefaults(t *testing.T) {
	oidcCfg := &OIDCSection{}

	assert.Equal(t, []string{"openid", "profile", "email"}, oidcCfg.GetScopes())
	assert.False(t, oidcCfg.WantsUserinfo())
	assert.False(t, oidcCfg.WantsProviderLogout())

	oidcCfg.Scopes = []string{"openid"}

	assert.Equal(t, []string{"openid"}, oidcCfg.GetScopes())
}

func TestDurationDefaults(t *testing.T) {
	redisCfg := &Redis{}

	assert.Equal(t, 12*time.Hour, redisCfg.GetTokenTTL())

	redisCfg.TokenTTL = time.Hour

	assert.Equal(t, time.Hour, redisCfg.GetTokenTTL())

	frontendCfg := &Frontend{}

	assert.Equal(t, 8*time.Hour, frontendCfg.GetSessionMaxAge())
}

func TestValidateSecrets(t *testing.T) {
	cfg := &File{}
	cfg.Server.Frontend.CookieStoreAuthKey = "0123456789abcdef0123456789abcdef"
	cfg.Server.Frontend.CookieStoreEncKey = "too short"

	assert.ErrorIs(t, cfg.validateSecrets(), errors.ErrInvalidCookieKey)
}

func TestVerbosity(t *testing.T) {
	var verbosity Verbosity

	assert.NoError(t, verbosity.Set("debug"))
	assert.Equal(t, definitions.LogLevelDebug, verbosity.Level())
	assert.Equal(t, "debug", verbosity.String())

	assert.Error(t, verbosity.Set("bogus"))
}
