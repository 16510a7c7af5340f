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

// Package config loads and validates the authgate.yml configuration file.
package config

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/authgate/authgate/server/definitions"
	"github.com/authgate/authgate/server/errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// LoadableConfig represents the currently loaded configuration file.
var LoadableConfig *File //nolint:gochecknoglobals // System wide configuration from authgate.yml file

// File is the root of the configuration tree.
type File struct {
	Server ServerSection  `mapstructure:"server"`
	OIDC   OIDCSection    `mapstructure:"oidc"`
	Other  map[string]any `mapstructure:",remain"`
	Mu     sync.Mutex     `mapstructure:"-"`
}

// GetFile returns the currently loaded configuration.
func GetFile() *File {
	return (*File)(atomic.LoadPointer((*unsafe.Pointer)(unsafe.Pointer(&LoadableConfig))))
}

// GetServer returns the server section of the configuration.
func (f *File) GetServer() *ServerSection {
	if f == nil {
		return nil
	}

	return &f.Server
}

// GetOIDC returns the relying-party section of the configuration.
func (f *File) GetOIDC() *OIDCSection {
	if f == nil {
		return nil
	}

	return &f.OIDC
}

// GetInstanceName returns the configured instance name or the default.
func (f *File) GetInstanceName() string {
	if f == nil || f.Server.InstanceName == "" {
		return definitions.InstanceName
	}

	return f.Server.InstanceName
}

// GetLogLevel maps the configured log level name onto its numeric value.
func (f *File) GetLogLevel() int {
	if f == nil {
		return definitions.LogLevelInfo
	}

	switch f.Server.Log.Level {
	case "none":
		return definitions.LogLevelNone
	case "error":
		return definitions.LogLevelError
	case "warn":
		return definitions.LogLevelWarn
	case "debug":
		return definitions.LogLevelDebug
	default:
		return definitions.LogLevelInfo
	}
}

// validate runs the struct tag validation and the secret sanity checks.
func (f *File) validate() error {
	if err := validator.New().Struct(f); err != nil {
		return err
	}

	return f.validateSecrets()
}

// validateSecrets checks the cookie store key material. The auth key is
// validated by tag already; the optional encryption key must match an AES
// key size.
func (f *File) validateSecrets() error {
	if key := f.Server.Frontend.CookieStoreEncKey; key != "" {
		if !(len(key) == 16 || len(key) == 24 || len(key) == 32) {
			return errors.ErrInvalidCookieKey
		}
	}

	return nil
}

// handleFile applies the configuration settings loaded from the configuration
// file. It does sanity checks to make sure the portal has a working setup.
func (f *File) handleFile() (err error) {
	f.Mu.Lock()

	defer f.Mu.Unlock()

	if err = viper.Unmarshal(f, viper.DecodeHook(decodeHook())); err != nil {
		return err
	}

	if err = f.validate(); err != nil {
		return err
	}

	// Throw away unsupported keys
	f.Other = nil

	return nil
}

// decodeHook composes the mapstructure hooks used while decoding the viper
// settings tree into the typed sections.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// NewConfigFile is the constructor for a File object. The search path covers
// the usual system locations plus the working directory.
func NewConfigFile() (newCfg *File, err error) {
	newCfg = &File{}

	viper.SetConfigName("authgate") // name of config file (without extension)
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/usr/local/etc/authgate/")
	viper.AddConfigPath("/etc/authgate/")
	viper.AddConfigPath("$HOME/.authgate")
	viper.AddConfigPath(".")

	bindEnvironment()

	if err = viper.ReadInConfig(); err != nil {
		// A pure-environment setup without a file is fine.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}

	if err = newCfg.handleFile(); err != nil {
		return nil, err
	}

	atomic.StorePointer((*unsafe.Pointer)(unsafe.Pointer(&LoadableConfig)), unsafe.Pointer(newCfg))

	return newCfg, nil
}
