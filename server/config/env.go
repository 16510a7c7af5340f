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
	"strings"

	"github.com/authgate/authgate/server/definitions"
	"github.com/authgate/authgate/server/errors"

	"github.com/spf13/viper"
)

// bindEnvironment wires AUTHGATE_* environment variables into the viper
// settings tree so secrets can stay out of the configuration file, e.g.
// AUTHGATE_OIDC_CLIENT_SECRET or AUTHGATE_SERVER_FRONTEND_COOKIE_STORE_AUTH_KEY.
func bindEnvironment() {
	viper.SetEnvPrefix("authgate")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about. Bind the
	// secret-bearing keys explicitly so they work without a config file.
	for _, key := range []string{
		"server.address",
		"server.instance_name",
		"server.frontend.cookie_store_auth_key",
		"server.frontend.cookie_store_encryption_key",
		"server.redis.address",
		"server.redis.password",
		"oidc.issuer",
		"oidc.client_id",
		"oidc.client_secret",
		"oidc.redirect_url",
	} {
		_ = viper.BindEnv(key)
	}

	viper.SetDefault("server.address", "127.0.0.1:8080")
	viper.SetDefault("server.log.level", "info")
}

// Verbosity is the flag.Value used by the -verbose command line flag.
type Verbosity struct {
	// verboseLevel holds the level of detail for logging
	verboseLevel int

	// name is the name of the verbosity level
	name string
}

func (v *Verbosity) String() string {
	return v.name
}

// Set updates the verbosity level and name based on the provided value.
// Valid values are "none", "error", "warn", "info", and "debug".
func (v *Verbosity) Set(value string) error {
	switch value {
	case "none", "":
		v.verboseLevel = definitions.LogLevelNone
	case "error":
		v.verboseLevel = definitions.LogLevelError
	case "warn":
		v.verboseLevel = definitions.LogLevelWarn
	case "info":
		v.verboseLevel = definitions.LogLevelInfo
	case "debug":
		v.verboseLevel = definitions.LogLevelDebug
	default:
		return errors.ErrWrongVerboseLevel
	}

	v.name = value

	return nil
}

// Type returns the type of the Verbosity struct.
func (v *Verbosity) Type() string {
	return "Verbosity"
}

// Level returns the verbosity level of the Verbosity instance.
func (v *Verbosity) Level() int {
	return v.verboseLevel
}

// Get returns the name of the log level as string.
func (v *Verbosity) Get() string {
	return v.name
}
