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
	"net/http"
	"testing"
	"time"
)

func TestWaitForShutdownSignalsCompletion(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	go waitForShutdown(&http.Server{}, ctx)

	cancel()

	select {
	case <-HTTPEndChan:
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown did not signal completion")
	}
}
