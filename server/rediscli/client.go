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

// Package rediscli constructs the Redis client used by the token store.
package rediscli

import (
	"context"
	"time"

	"github.com/authgate/authgate/server/config"

	"github.com/redis/go-redis/v9"
)

// Client is the narrow Redis surface used by the portal.
type Client interface {
	// GetHandle returns the underlying go-redis client.
	GetHandle() redis.UniversalClient

	// Close releases the connection pool.
	Close() error
}

type redisClient struct {
	handle redis.UniversalClient
}

func (c *redisClient) GetHandle() redis.UniversalClient {
	return c.handle
}

func (c *redisClient) Close() error {
	return c.handle.Close()
}

// NewClient creates a Redis client from the server configuration and checks
// connectivity with a bounded ping.
func NewClient(ctx context.Context, redisCfg *config.Redis) (Client, error) {
	handle := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Address,
		Username: redisCfg.Username,
		Password: redisCfg.Password,
		DB:       redisCfg.Database,
		PoolSize: redisCfg.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)

	defer cancel()

	if err := handle.Ping(pingCtx).Err(); err != nil {
		_ = handle.Close()

		return nil, err
	}

	return &redisClient{handle: handle}, nil
}
