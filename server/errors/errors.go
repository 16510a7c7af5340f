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

// Package errors declares the sentinel errors used by the portal and a
// DetailedError wrapper that carries request correlation data.
package errors

import (
	"errors"
)

// DetailedError wraps a sentinel error together with a request GUID and an
// optional detail string so log entries and flash messages stay correlated.
type DetailedError struct {
	err     error
	guid    string
	details string
}

func (d *DetailedError) Error() string {
	return d.err.Error()
}

// Unwrap exposes the wrapped sentinel so errors.Is keeps working.
func (d *DetailedError) Unwrap() error {
	if d == nil {
		return nil
	}

	return d.err
}

// WithGUID attaches the request GUID.
func (d *DetailedError) WithGUID(guid string) *DetailedError {
	if d == nil {
		return nil
	}

	d.guid = guid

	return d
}

// WithDetail attaches a human readable detail string.
func (d *DetailedError) WithDetail(detail string) *DetailedError {
	if d == nil {
		return nil
	}

	d.details = detail

	return d
}

// GUID returns the attached request GUID.
func (d *DetailedError) GUID() string {
	if d == nil {
		return ""
	}

	return d.guid
}

// Detail returns the attached detail string.
func (d *DetailedError) Detail() string {
	if d == nil {
		return ""
	}

	return d.details
}

// NewDetailedError creates a DetailedError from a message.
func NewDetailedError(err string) *DetailedError {
	return &DetailedError{err: errors.New(err)}
}

// Configuration errors.
var (
	ErrNoIssuer          = errors.New("no OIDC issuer configured")
	ErrNoClientID        = errors.New("no OIDC client_id configured")
	ErrNoClientSecret    = errors.New("no OIDC client_secret configured")
	ErrNoRedirectURL     = errors.New("no OIDC redirect_url configured")
	ErrInvalidCookieKey  = errors.New("cookie store keys must be 16, 24 or 32 bytes long")
	ErrWrongVerboseLevel = errors.New("wrong verbose level")
)

// Login flow errors.
var (
	ErrStateMismatch    = errors.New("state parameter does not match the session")
	ErrNoAuthCode       = errors.New("callback request carries no authorization code")
	ErrNoIDToken        = errors.New("token response carries no id_token")
	ErrNonceMismatch    = errors.New("nonce in the ID token does not match the session")
	ErrNotAuthenticated = errors.New("no authenticated user in the session")
)

// Token store errors.
var (
	ErrTokenNotFound = errors.New("no token stored under the given reference")
)
