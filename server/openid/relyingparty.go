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

// Package openid implements the relying-party side of the login handoff:
// provider discovery, the authorization redirect and the code-for-token
// exchange with ID token verification.
package openid

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/authgate/authgate/server/config"
	"github.com/authgate/authgate/server/definitions"
	"github.com/authgate/authgate/server/errors"
	"github.com/authgate/authgate/server/log/level"
	"github.com/authgate/authgate/server/model/user"
	"github.com/authgate/authgate/server/util"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// Login is the result of a completed authorization code flow.
type Login struct {
	// User is the profile extracted from the verified ID token.
	User *user.User

	// Token is the OAuth2 token returned by the provider.
	Token *oauth2.Token

	// RawIDToken is the undecoded id_token, kept for the end-session hint.
	RawIDToken string
}

// RelyingParty is the seam the HTTP handlers depend on. Tests substitute a
// stub; the production implementation talks to the discovered provider.
type RelyingParty interface {
	// AuthCodeURL builds the provider's authorization URL for the given
	// state and nonce.
	AuthCodeURL(state, nonce string) string

	// Authenticate exchanges the authorization code, verifies the ID token
	// against the expected nonce and returns the login result.
	Authenticate(ctx context.Context, code, nonce string) (*Login, error)

	// EndSessionURL returns the provider's logout URL, or an empty string
	// when the provider does not announce one.
	EndSessionURL(idTokenHint, postLogoutRedirect string) string
}

// providerClaims holds selected endpoints discovered from the provider metadata.
type providerClaims struct {
	EndSessionEndpoint string `json:"end_session_endpoint"`
	UserinfoEndpoint   string `json:"userinfo_endpoint"`
}

type relyingParty struct {
	cfg          *config.OIDCSection
	logger       *slog.Logger
	provider     *oidc.Provider
	claims       providerClaims
	oauth2Config oauth2.Config
	verifier     *oidc.IDTokenVerifier
}

var _ RelyingParty = (*relyingParty)(nil)

// NewRelyingParty discovers the provider metadata and assembles the OAuth2
// client configuration. Discovery uses a bounded HTTP client; the returned
// relying party is safe for concurrent use.
func NewRelyingParty(ctx context.Context, cfg *config.File, logger *slog.Logger) (RelyingParty, error) {
	oidcCfg := cfg.GetOIDC()

	switch {
	case oidcCfg.GetIssuer() == "":
		return nil, errors.ErrNoIssuer
	case oidcCfg.GetClientID() == "":
		return nil, errors.ErrNoClientID
	case oidcCfg.GetClientSecret() == "":
		return nil, errors.ErrNoClientSecret
	case oidcCfg.GetRedirectURL() == "":
		return nil, errors.ErrNoRedirectURL
	}

	httpClient := util.NewHTTPClient(cfg.GetServer().GetHTTPClient().Timeout)
	ctx = oidc.ClientContext(ctx, httpClient)

	provider, err := oidc.NewProvider(ctx, oidcCfg.GetIssuer())
	if err != nil {
		return nil, err
	}

	rp := &relyingParty{
		cfg:      oidcCfg,
		logger:   logger,
		provider: provider,
		oauth2Config: oauth2.Config{
			ClientID:     oidcCfg.GetClientID(),
			ClientSecret: oidcCfg.GetClientSecret(),
			Endpoint:     provider.Endpoint(),
			RedirectURL:  oidcCfg.GetRedirectURL(),
			Scopes:       oidcCfg.GetScopes(),
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: oidcCfg.GetClientID()}),
	}

	if err := provider.Claims(&rp.claims); err != nil {
		level.Warn(logger).Log(
			definitions.LogKeyMsg, "Unable to parse extra provider metadata",
			definitions.LogKeyIssuer, oidcCfg.GetIssuer(),
			definitions.LogKeyError, err,
		)
	}

	level.Info(logger).Log(
		definitions.LogKeyMsg, "Identity provider discovered",
		definitions.LogKeyIssuer, oidcCfg.GetIssuer(),
		"scopes", rp.oauth2Config.Scopes,
	)

	return rp, nil
}

// AuthCodeURL builds the authorization endpoint URL carrying state and nonce.
func (rp *relyingParty) AuthCodeURL(state, nonce string) string {
	return rp.oauth2Config.AuthCodeURL(state, oidc.Nonce(nonce))
}

// Authenticate performs the code-for-token exchange and ID token verification.
func (rp *relyingParty) Authenticate(ctx context.Context, code, nonce string) (*Login, error) {
	oauth2Token, err := rp.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.ErrNoIDToken
	}

	idToken, err := rp.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}

	if idToken.Nonce != nonce {
		return nil, errors.ErrNonceMismatch
	}

	profile := &user.User{}
	if err := idToken.Claims(profile); err != nil {
		return nil, err
	}

	profile.Subject = idToken.Subject

	if rp.cfg.WantsUserinfo() {
		rp.enrichFromUserinfo(ctx, oauth2Token, profile)
	}

	return &Login{User: profile, Token: oauth2Token, RawIDToken: rawIDToken}, nil
}

// enrichFromUserinfo overlays claims from the userinfo endpoint onto the
// profile. Failures only degrade the profile, never the login.
func (rp *relyingParty) enrichFromUserinfo(ctx context.Context, token *oauth2.Token, profile *user.User) {
	userInfo, err := rp.provider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		level.Warn(rp.logger).Log(
			definitions.LogKeyMsg, "Userinfo request failed",
			definitions.LogKeySubject, profile.Subject,
			definitions.LogKeyError, err,
		)

		return
	}

	enriched := &user.User{}
	if err := userInfo.Claims(enriched); err != nil {
		level.Warn(rp.logger).Log(
			definitions.LogKeyMsg, "Unable to parse userinfo claims",
			definitions.LogKeySubject, profile.Subject,
			definitions.LogKeyError, err,
		)

		return
	}

	if enriched.Name != "" {
		profile.Name = enriched.Name
	}

	if enriched.Email != "" {
		profile.Email = enriched.Email
		profile.EmailVerified = enriched.EmailVerified
	}

	if enriched.Picture != "" {
		profile.Picture = enriched.Picture
	}
}

// EndSessionURL builds the provider's logout URL from the discovered
// end_session_endpoint. An empty return means the provider has none.
func (rp *relyingParty) EndSessionURL(idTokenHint, postLogoutRedirect string) string {
	if rp.claims.EndSessionEndpoint == "" {
		return ""
	}

	endSession, err := url.Parse(rp.claims.EndSessionEndpoint)
	if err != nil {
		return ""
	}

	query := endSession.Query()

	if idTokenHint != "" {
		query.Set("id_token_hint", idTokenHint)
	}

	if postLogoutRedirect != "" {
		query.Set("post_logout_redirect_uri", postLogoutRedirect)
	}

	endSession.RawQuery = query.Encode()

	return endSession.String()
}
