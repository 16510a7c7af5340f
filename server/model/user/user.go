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

// Package user holds the profile record of a logged-in user.
package user

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// User is the profile extracted from the ID token (and optionally the
// userinfo endpoint) of the identity provider. It is serialized as JSON
// into the encrypted session cookie.
type User struct {
	Subject       string `json:"sub"`
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
	Name          string `json:"name,omitempty"`
	GivenName     string `json:"given_name,omitempty"`
	FamilyName    string `json:"family_name,omitempty"`
	PreferredName string `json:"preferred_username,omitempty"`
	Picture       string `json:"picture,omitempty"`
	Locale        string `json:"locale,omitempty"`
}

// DisplayName returns the best human readable name available.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}

	if u.Name != "" {
		return u.Name
	}

	if u.PreferredName != "" {
		return u.PreferredName
	}

	if u.Email != "" {
		return u.Email
	}

	return u.Subject
}

// Serialize encodes the user as a JSON string for session storage.
func (u *User) Serialize() (string, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Deserialize decodes a user from its session representation.
func Deserialize(data string) (*User, error) {
	u := &User{}

	if err := json.Unmarshal([]byte(data), u); err != nil {
		return nil, err
	}

	return u, nil
}
