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
	stdlog "log"
	"time"

	"github.com/authgate/authgate/server/core"
	"github.com/authgate/authgate/server/svcctx"

	"go.uber.org/fx"
)

var (
	version   = "dev"
	buildTime = ""
)

func rootContextOption(ctx context.Context, cancel context.CancelFunc) fx.Option {
	return fx.Provide(
		func() context.Context {
			return ctx
		},
		func() context.CancelFunc {
			return cancel
		},
	)
}

// main is the entry point of the application. It initializes the environment and starts the HTTP server.
func main() {
	parseFlagsAndPrintVersion()

	ctx, cancel := svcctx.GetCtxWithCancel()
	stopTimeout := 10 * time.Second

	fApp := fx.New(
		fx.NopLogger,
		rootContextOption(ctx, cancel),
		fx.Invoke(func(lc fx.Lifecycle, ctx context.Context, cancel context.CancelFunc) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					if err := setupConfiguration(); err != nil {
						stdlog.Fatalln("Unable to setup the environment. Error:", err)
					}

					setupLogging()
					handleSignals(ctx, cancel)

					if err := startHTTPServer(ctx); err != nil {
						stdlog.Fatalln("Unable to start the HTTP server. Error:", err)
					}

					return nil
				},
				OnStop: func(stopCtx context.Context) error {
					cancel()

					// Wait until the HTTP server finished its graceful
					// shutdown or the stop timeout expires.
					select {
					case <-core.HTTPEndChan:
					case <-stopCtx.Done():
					}

					return nil
				},
			})
		}),
	)

	if err := fApp.Start(context.Background()); err != nil {
		stdlog.Fatalln("Unable to start fx app. Error:", err)
	}

	<-ctx.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()

	if err := fApp.Stop(stopCtx); err != nil {
		stdlog.Printf("Unable to stop fx app. Error: %v", err)
	}
}
