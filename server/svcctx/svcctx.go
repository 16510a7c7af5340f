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

// Package svcctx provides the long-lived root context of the process. It is
// initialized once at startup and serves as a safe fallback context in places
// not tied to an active HTTP request.
package svcctx

import (
	"context"
	"sync"
)

var (
	once   sync.Once
	root   context.Context
	cancel context.CancelFunc
)

func initSvcCtx() {
	once.Do(func() {
		root, cancel = context.WithCancel(context.Background())
	})
}

// Get returns the initialized root context if available, otherwise
// context.Background(). Callers always receive a non-nil context.
func Get() context.Context {
	if root == nil {
		return context.Background()
	}

	return root
}

// GetCtxWithCancel returns the root context and its cancel function, initializing them if not already set.
func GetCtxWithCancel() (context.Context, context.CancelFunc) {
	if root != nil && cancel != nil {
		return root, cancel
	}

	initSvcCtx()

	return GetCtxWithCancel()
}
