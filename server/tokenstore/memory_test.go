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
	"testing"
	"time"

	"github.com/authgate/authgate/server/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	token := &oauth2.Token{
		AccessToken:  "at",
		TokenType:    "Bearer",
		RefreshToken: "rt",
		Expiry:       time.Now().Add(time.Hour),
	}

	entry := NewEntry("user-1", token, "raw-id-token")

	require.NoError(t, store.Save(ctx, "ref-1", entry))

	loaded, err := store.Load(ctx, "ref-1")
	require.NoError(t, err)

	assert.Equal(t, "user-1", loaded.Subject)
	assert.Equal(t, "raw-id-token", loaded.IDToken)
	assert.Equal(t, "at", loaded.Token().AccessToken)
	assert.Equal(t, "rt", loaded.Token().RefreshToken)
}

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.Load(context.Background(), "unknown")

	assert.ErrorIs(t, err, errors.ErrTokenNotFound)
}

func TestMemoryStoreTTL(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "ref-1", NewEntry("user-1", &oauth2.Token{AccessToken: "at"}, "")))

	time.Sleep(50 * time.Millisecond)

	_, err := store.Load(ctx, "ref-1")

	assert.ErrorIs(t, err, errors.ErrTokenNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "ref-1", NewEntry("user-1", &oauth2.Token{AccessToken: "at"}, "")))
	require.NoError(t, store.Delete(ctx, "ref-1"))

	_, err := store.Load(ctx, "ref-1")

	assert.ErrorIs(t, err, errors.ErrTokenNotFound)
}
