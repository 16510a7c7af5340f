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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/authgate/authgate/server/config"
	"github.com/authgate/authgate/server/core"
	"github.com/authgate/authgate/server/definitions"
	"github.com/authgate/authgate/server/handler/auth"
	"github.com/authgate/authgate/server/handler/deps"
	"github.com/authgate/authgate/server/handler/home"
	"github.com/authgate/authgate/server/handler/profile"
	"github.com/authgate/authgate/server/log"
	"github.com/authgate/authgate/server/log/level"
	"github.com/authgate/authgate/server/openid"
	"github.com/authgate/authgate/server/rediscli"
	"github.com/authgate/authgate/server/router"
	"github.com/authgate/authgate/server/tokenstore"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
)

var (
	flagVersion   bool
	flagConfig    string
	flagVerbosity config.Verbosity
)

// parseFlagsAndPrintVersion parses the command line and terminates early for -version.
func parseFlagsAndPrintVersion() {
	flag.BoolVar(&flagVersion, "version", false, "print version and exit")
	flag.StringVar(&flagConfig, "config", "", "path to the configuration file")
	flag.Var(&flagVerbosity, "verbose", "log level: none, error, warn, info or debug")

	flag.Parse()

	if flagVersion {
		fmt.Printf("authgate version=%s build_time=%s\n", version, buildTime)

		os.Exit(0)
	}
}

// setupConfiguration loads and validates the configuration file and environment.
func setupConfiguration() error {
	if flagConfig != "" {
		viper.SetConfigFile(flagConfig)
	}

	if _, err := config.NewConfigFile(); err != nil {
		return err
	}

	return nil
}

// setupLogging initializes the process logger. A -verbose flag overrides the
// configured level.
func setupLogging() {
	cfg := config.GetFile()

	logLevel := cfg.GetLogLevel()
	if flagVerbosity.Get() != "" {
		logLevel = flagVerbosity.Level()
	}

	log.SetupLogging(logLevel, cfg.GetServer().GetLog().JSON, cfg.GetInstanceName())

	level.Info(log.Logger).Log(
		definitions.LogKeyMsg, "Starting up",
		"version", version,
		definitions.LogKeyInstance, cfg.GetInstanceName(),
	)
}

// handleSignals cancels the root context on SIGINT or SIGTERM.
func handleSignals(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			level.Info(log.Logger).Log(definitions.LogKeyMsg, "Shutting down", "signal", sig.String())

			cancel()
		case <-ctx.Done():
		}
	}()
}

// newTokenStore selects the server-side token store. A configured Redis
// address selects Redis, otherwise tokens live in process memory.
func newTokenStore(ctx context.Context, cfg *config.File) (tokenstore.Store, error) {
	redisCfg := cfg.GetServer().GetRedis()

	if redisCfg.Address == "" {
		return tokenstore.NewMemoryStore(redisCfg.GetTokenTTL()), nil
	}

	redisClient, err := rediscli.NewClient(ctx, redisCfg)
	if err != nil {
		return nil, err
	}

	return tokenstore.NewRedisStore(redisClient, redisCfg.Prefix, redisCfg.GetTokenTTL()), nil
}

// startHTTPServer assembles the handler dependencies and launches the HTTP server.
func startHTTPServer(ctx context.Context) error {
	cfg := config.GetFile()

	relyingParty, err := openid.NewRelyingParty(ctx, cfg, log.Logger)
	if err != nil {
		return err
	}

	tokens, err := newTokenStore(ctx, cfg)
	if err != nil {
		return err
	}

	d := &deps.Deps{
		Cfg:    cfg,
		Logger: log.Logger,
		RP:     relyingParty,
		Store:  core.SetupSessionStore(cfg),
		Tokens: tokens,
	}

	homeHandler := home.New(d)
	authHandler := auth.New(d)
	profileHandler := profile.New(d)

	setupFrontend := func(engine *gin.Engine) {
		homeHandler.Register(engine)
		authHandler.Register(engine)
		profileHandler.Register(engine)
	}

	go core.HTTPApp(ctx, d.Store, router.HealthCheck, router.Healthz, gin.WrapH(promhttp.Handler()), setupFrontend)

	return nil
}
