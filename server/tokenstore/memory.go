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
	"time"

	"github.com/authgate/authgate/server/errors"
	"github.com/authgate/authgate/server/stats"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps token entries in process memory. It fits single-instance
// deployments without Redis; entries do not survive a restart.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates a MemoryStore whose entries expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, 10*time.Minute)}
}

var _ Store = (*MemoryStore)(nil)

// Save stores a token entry under ref.
func (s *MemoryStore) Save(_ context.Context, ref string, entry *Entry) error {
	s.cache.SetDefault(ref, entry)

	return nil
}

// Load retrieves the token entry stored under ref.
func (s *MemoryStore) Load(_ context.Context, ref string) (*Entry, error) {
	value, found := s.cache.Get(ref)
	if !found {
		stats.TokenStoreMisses.Inc()

		return nil, errors.ErrTokenNotFound
	}

	stats.TokenStoreHits.Inc()

	return value.(*Entry), nil
}

// Delete removes the token entry stored under ref.
func (s *MemoryStore) Delete(_ context.Context, ref string) error {
	s.cache.Delete(ref)

	return nil
}
