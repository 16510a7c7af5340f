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

// Package tokenstore persists OAuth2 tokens server side. Only an opaque
// reference travels in the session cookie; access and refresh tokens never
// leave the server.
package tokenstore

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/oauth2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Entry is the stored token material of one login.
type Entry struct {
	Subject      string    `json:"subject"`
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
	IDToken      string    `json:"id_token,omitempty"`
}

// NewEntry builds an Entry from an OAuth2 token. The raw ID token is kept so
// /logout can pass an id_token_hint to the provider's end-session endpoint.
func NewEntry(subject string, token *oauth2.Token, rawIDToken string) *Entry {
	return &Entry{
		Subject:      subject,
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
		IDToken:      rawIDToken,
	}
}

// Token converts the entry back into an OAuth2 token.
func (e *Entry) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  e.AccessToken,
		TokenType:    e.TokenType,
		RefreshToken: e.RefreshToken,
		Expiry:       e.Expiry,
	}
}

// Store persists token entries under an opaque reference with a TTL.
type Store interface {
	// Save stores the entry under ref.
	Save(ctx context.Context, ref string, entry *Entry) error

	// Load retrieves the entry stored under ref. A missing reference yields
	// errors.ErrTokenNotFound.
	Load(ctx context.Context, ref string) (*Entry, error)

	// Delete removes the entry stored under ref. Deleting an unknown
	// reference is not an error.
	Delete(ctx context.Context, ref string) error
}
