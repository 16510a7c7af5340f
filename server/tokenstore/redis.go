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

package tokenstore

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/authgate/authgate/server/errors"
	"github.com/authgate/authgate/server/rediscli"
	"github.com/authgate/authgate/server/stats"

	"github.com/redis/go-redis/v9"
)

// RedisStore handles token persistence in Redis.
type RedisStore struct {
	redis  rediscli.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a new RedisStore.
func NewRedisStore(client rediscli.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: client, prefix: prefix, ttl: ttl}
}

var _ Store = (*RedisStore)(nil)

func (s *RedisStore) key(ref string) string {
	return s.prefix + fmt.Sprintf("authgate:token:%s", ref)
}

// Save stores a token entry with the configured TTL.
func (s *RedisStore) Save(ctx context.Context, ref string, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	stats.RedisWriteCounter.Inc()

	return s.redis.GetHandle().Set(ctx, s.key(ref), string(data), s.ttl).Err()
}

// Load retrieves a token entry from Redis.
func (s *RedisStore) Load(ctx context.Context, ref string) (*Entry, error) {
	stats.RedisReadCounter.Inc()

	data, err := s.redis.GetHandle().Get(ctx, s.key(ref)).Result()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			stats.TokenStoreMisses.Inc()

			return nil, errors.ErrTokenNotFound
		}

		return nil, err
	}

	entry := &Entry{}
	if err := json.Unmarshal([]byte(data), entry); err != nil {
		return nil, err
	}

	stats.TokenStoreHits.Inc()

	return entry, nil
}

// Delete removes a token entry from Redis.
func (s *RedisStore) Delete(ctx context.Context, ref string) error {
	stats.RedisWriteCounter.Inc()

	return s.redis.GetHandle().Del(ctx, s.key(ref)).Err()
}
