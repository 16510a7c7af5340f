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

package config

// OIDCSection holds the relying-party settings for the external identity
// provider the portal hands authentication off to.
type OIDCSection struct {
	Issuer        string   `mapstructure:"issuer" validate:"required,url"`
	ClientID      string   `mapstructure:"client_id" validate:"required"`
	ClientSecret  string   `mapstructure:"client_secret" validate:"required"`
	RedirectURL   string   `mapstructure:"redirect_url" validate:"required,url"`
	Scopes        []string `mapstructure:"scopes"`
	FetchUserinfo bool     `mapstructure:"fetch_userinfo"`

	// ProviderLogout routes /logout through the provider's end_session
	// endpoint (when discovered) instead of only clearing the local session.
	ProviderLogout bool `mapstructure:"provider_logout"`

	// PostLogoutRedirectURL is sent to the provider's end_session endpoint.
	PostLogoutRedirectURL string `mapstructure:"post_logout_redirect_url" validate:"omitempty,url"`
}

// defaultScopes are requested when the configuration names none.
var defaultScopes = []string{"openid", "profile", "email"}

// GetScopes returns the configured scopes or the default scope set.
func (o *OIDCSection) GetScopes() []string {
	if o == nil || len(o.Scopes) == 0 {
		return defaultScopes
	}

	return o.Scopes
}

// GetIssuer returns the issuer URL.
func (o *OIDCSection) GetIssuer() string {
	if o == nil {
		return ""
	}

	return o.Issuer
}

// GetClientID returns the OAuth2 client ID.
func (o *OIDCSection) GetClientID() string {
	if o == nil {
		return ""
	}

	return o.ClientID
}

// GetClientSecret returns the OAuth2 client secret.
func (o *OIDCSection) GetClientSecret() string {
	if o == nil {
		return ""
	}

	return o.ClientSecret
}

// GetRedirectURL returns the registered callback URL.
func (o *OIDCSection) GetRedirectURL() string {
	if o == nil {
		return ""
	}

	return o.RedirectURL
}

// WantsUserinfo reports whether the profile should be enriched from the
// provider's userinfo endpoint after login.
func (o *OIDCSection) WantsUserinfo() bool {
	return o != nil && o.FetchUserinfo
}

// WantsProviderLogout reports whether /logout should end the provider session too.
func (o *OIDCSection) WantsProviderLogout() bool {
	return o != nil && o.ProviderLogout
}

// GetPostLogoutRedirectURL returns the post-logout redirect target.
func (o *OIDCSection) GetPostLogoutRedirectURL() string {
	if o == nil {
		return ""
	}

	return o.PostLogoutRedirectURL
}
