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

package core

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/authgate/authgate/server/config"
	"github.com/authgate/authgate/server/definitions"
	"github.com/authgate/authgate/server/frontend"
	"github.com/authgate/authgate/server/log"
	"github.com/authgate/authgate/server/log/level"
	mdlog "github.com/authgate/authgate/server/middleware/logging"
	approuter "github.com/authgate/authgate/server/router"

	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	adapter "github.com/gwatts/gin-adapter"
	"github.com/justinas/nosurf"
)

// Done is the value sent on HTTPEndChan once the server finished shutting down.
type Done struct{}

// HTTPEndChan signals the completed shutdown of the HTTP server.
var HTTPEndChan = make(chan Done)

// customWriter feeds the text gin writes to its default writers through the
// application logger.
type customWriter struct {
	logger   *slog.Logger
	logLevel slog.Level
}

// setupHTTPServer initializes the HTTP server for the given router with
// hardened timeouts. Keep-alive settings control the idle timeout.
func setupHTTPServer(router *gin.Engine) *http.Server {
	keepAliveConfig := config.GetFile().GetServer().GetKeepAlive()

	idleTimeout := time.Minute
	if keepAliveConfig.Enabled && keepAliveConfig.Timeout > 0 {
		idleTimeout = keepAliveConfig.Timeout
	}

	return &http.Server{
		Addr:              config.GetFile().GetServer().Address,
		Handler:           router,
		IdleTimeout:       idleTimeout,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}

// waitForShutdown gracefully shuts down the HTTP server when the given context is canceled.
func waitForShutdown(httpServer *http.Server, ctx context.Context) {
	<-ctx.Done()

	waitCtx, cancel := context.WithDeadline(context.Background(), time.Now().Add(30*time.Second))

	defer cancel()

	httpServer.Shutdown(waitCtx)

	HTTPEndChan <- Done{}
}

// serveHTTP starts an HTTP or HTTPS server based on the TLS configuration.
// Logs and exits on server errors except for http.ErrServerClosed.
func serveHTTP(httpServer *http.Server, certFile, keyFile string) {
	if config.GetFile().GetServer().GetTLS().IsEnabled() {
		if err := httpServer.ListenAndServeTLS(certFile, keyFile); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			logAndExit("HTTPS server error", err)
		}
	} else {
		if err := httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			logAndExit("HTTP server error", err)
		}
	}
}

// setupGinLoggers routes the gin framework output through the application logger.
func setupGinLoggers() {
	gin.DefaultWriter = io.MultiWriter(&customWriter{logger: log.Logger, logLevel: slog.LevelDebug})
	gin.DefaultErrorWriter = io.MultiWriter(&customWriter{logger: log.Logger, logLevel: slog.LevelError})

	if config.GetFile().GetLogLevel() != definitions.LogLevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	gin.DisableConsoleColor()
}

// logAndExit logs an error message and exits the program with status code 1.
func logAndExit(message string, err error) {
	level.Error(log.Logger).Log(definitions.LogKeyMsg, message, definitions.LogKeyError, err)

	os.Exit(1)
}

// HTTPApp starts the HTTP server and sets up middlewares and endpoints.
// Handlers are passed in to keep core free of handler imports.
func HTTPApp(ctx context.Context, sessionStore sessions.Store, healthHandler, readyHandler, metricsHandler gin.HandlerFunc, setupFrontend func(*gin.Engine)) {
	setupGinLoggers()

	rbuilder := approuter.NewRouter(config.GetFile())
	router := rbuilder.Engine

	if config.GetFile().GetServer().GetInsights().IsPprofEnabled() {
		pprof.Register(router)
	}

	router.Use(mdlog.LoggerMiddleware(log.Logger))

	rbuilder.
		WithRecovery().
		WithTrustedProxies().
		WithResponseCompression().
		WithMetricsMiddleware().
		WithHealth(healthHandler).
		WithHealthz(readyHandler).
		WithMetricsRoute(metricsHandler)

	router.Use(sessions.Sessions(definitions.SessionName, sessionStore))
	router.Use(adapter.Wrap(nosurf.NewPure))

	frontend.RegisterTemplates(router)

	rbuilder.WithFrontend(setupFrontend)

	httpServer := setupHTTPServer(rbuilder.Build())

	go waitForShutdown(httpServer, ctx)

	serveHTTP(httpServer, config.GetFile().GetServer().GetTLS().GetCert(), config.GetFile().GetServer().GetTLS().GetKey())
}

func (w *customWriter) Write(p []byte) (n int, err error) {
	message := strings.TrimSpace(string(p))

	if message != "" {
		w.logger.Log(context.Background(), w.logLevel, message)
	}

	return len(p), nil
}
