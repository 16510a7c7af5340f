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

// Package log sets up the process wide slog logger.
package log

import (
	"log/slog"
	"os"
	"sync"

	"github.com/authgate/authgate/server/definitions"
)

var (
	mu sync.Mutex

	// Logger is used for all messages that are printed to stdout.
	Logger *slog.Logger = slog.Default()
)

// SetupLogging initializes the global "Logger" object and returns it. The
// logger writes either JSON or text records to stdout, filtered by the
// configured level, and carries the instance name on every record.
func SetupLogging(configLogLevel int, formatJSON bool, instance string) *slog.Logger {
	mu.Lock()

	defer mu.Unlock()

	var logLevel slog.Level

	switch configLogLevel {
	case definitions.LogLevelNone:
		// slog has no "off" level; raise the bar above any built-in level.
		logLevel = slog.LevelError + 4
	case definitions.LogLevelError:
		logLevel = slog.LevelError
	case definitions.LogLevelWarn:
		logLevel = slog.LevelWarn
	case definitions.LogLevelInfo:
		logLevel = slog.LevelInfo
	case definitions.LogLevelDebug:
		logLevel = slog.LevelDebug
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler

	if formatJSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	if instance == "" {
		instance = definitions.InstanceName
	}

	Logger = slog.New(handler).With(definitions.LogKeyInstance, instance)

	return Logger
}
