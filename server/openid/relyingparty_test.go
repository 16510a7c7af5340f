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

package openid

import (
	"context"
	"log/slog"
	"net/url"
	"testing"

	"github.com/authgate/authgate/server/config"
	"github.com/authgate/authgate/server/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRelyingPartyValidatesConfig(t *testing.T) {
	_, err := NewRelyingParty(context.Background(), &config.File{}, slog.Default())

	assert.ErrorIs(t, err, errors.ErrNoIssuer)

	cfg := &config.File{}
	cfg.OIDC.Issuer = "https://idp.example.com"

	_, err = NewRelyingParty(context.Background(), cfg, slog.Default())

	assert.ErrorIs(t, err, errors.ErrNoClientID)

	cfg.OIDC.ClientID = "portal"

	_, err = NewRelyingParty(context.Background(), cfg, slog.Default())

	assert.ErrorIs(t, err, errors.ErrNoClientSecret)

	cfg.OIDC.ClientSecret = "secret"

	_, err = NewRelyingParty(context.Background(), cfg, slog.Default())

	assert.ErrorIs(t, err, errors.ErrNoRedirectURL)
}

func TestEndSessionURL(t *testing.T) {
	rp := &relyingParty{
		claims: providerClaims{EndSessionEndpoint: "https://idp.example.com/logout"},
	}

	raw := rp.EndSessionURL("raw-id-token", "https://portal.example.com/")

	endSession, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "idp.example.com", endSession.Host)
	assert.Equal(t, "/logout", endSession.Path)
	assert.Equal(t, "raw-id-token", endSession.Query().Get("id_token_hint"))
	assert.Equal(t, "https://portal.example.com/", endSession.Query().Get("post_logout_redirect_uri"))
}

func TestEndSessionURLWithoutEndpoint(t *testing.T) {
	rp := &relyingParty{}

	assert.Empty(t, rp.EndSessionURL("raw-id-token", ""))
}

func TestEndSessionURLWithoutHint(t *testing.T) {
	rp := &relyingParty{
		claims: providerClaims{EndSessionEndpoint: "https://idp.example.com/logout"},
	}

	endSession, err := url.Parse(rp.EndSessionURL("", ""))
	require.NoError(t, err)

	assert.Empty(t, endSession.RawQuery)
}
