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

// Package definitions holds shared constants: log keys, session cookie keys
// and failure codes used across the portal.
package definitions

// Keys used in structured log entries.
const (
	// LogKeyGUID represents the per-request identifier used in log entries.
	LogKeyGUID = "session"

	// LogKeyMsg represents the message content in log entries.
	LogKeyMsg = "msg"

	// LogKeyError represents error information in log entries.
	LogKeyError = "error"

	// LogKeyInstance represents instance identification in log entries.
	LogKeyInstance = "instance"

	// LogKeyClientIP represents the IP address of the client.
	LogKeyClientIP = "client_ip"

	// LogKeyMethod represents the HTTP method of a request.
	LogKeyMethod = "http_method"

	// LogKeyProtocol represents the network protocol used, logged in log entries.
	LogKeyProtocol = "protocol"

	// LogKeyHTTPStatus represents the HTTP response status code.
	LogKeyHTTPStatus = "http_status"

	// LogKeyLatency represents the duration a request took to complete.
	LogKeyLatency = "latency"

	// LogKeyUserAgent represents the user-agent string of the client.
	LogKeyUserAgent = "user_agent"

	// LogKeyUriPath represents the URI path of a request.
	LogKeyUriPath = "uri_path"

	// LogKeySubject represents the subject identifier of a logged-in user.
	LogKeySubject = "subject"

	// LogKeyIssuer represents the identity provider issuer URL.
	LogKeyIssuer = "issuer"

	// LogKeyRedirectTo represents the target of an HTTP redirect.
	LogKeyRedirectTo = "redirect_to"
)

// Log levels.
const (
	LogLevelNone = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Keys for values stored in the encrypted session cookie.
const (
	// CookieUser stores the serialized user profile of a logged-in user.
	CookieUser = "user"

	// CookieState stores the OAuth2 state parameter between /login and /callback.
	CookieState = "state"

	// CookieNonce stores the OIDC nonce between /login and /callback.
	CookieNonce = "nonce"

	// CookieRedirectTo stores the post-login redirect target.
	CookieRedirectTo = "redirect_to"

	// CookieTokenRef stores the server-side token store reference of a login.
	CookieTokenRef = "token_ref"

	// CookieFlashCode stores the one-shot failure code shown on /failure.
	CookieFlashCode = "flash_code"

	// CookieFlashDetail stores the one-shot failure description shown on /failure.
	CookieFlashDetail = "flash_detail"

	// SessionName is the name of the session cookie.
	SessionName = "Authgate_session"
)

// Keys for values stored in the gin request context.
const (
	// CtxGUIDKey is used as a key to store the request's unique identifier.
	CtxGUIDKey = "guid"

	// CtxUserKey is used as a key to store the authenticated user profile.
	CtxUserKey = "user"
)

// Failure codes surfaced on the /failure page. Provider-supplied error codes
// from the callback query string are passed through unchanged.
const (
	// FailureStateMismatch indicates the state parameter did not match the session.
	FailureStateMismatch = "state_mismatch"

	// FailureExchangeFailed indicates the code-for-token exchange failed.
	FailureExchangeFailed = "exchange_failed"

	// FailureVerifyFailed indicates ID token verification failed.
	FailureVerifyFailed = "verify_failed"

	// FailureMissingIDToken indicates the token response carried no id_token.
	FailureMissingIDToken = "missing_id_token"

	// FailureAccessDenied is the OAuth2 error code sent when the user cancels.
	FailureAccessDenied = "access_denied"
)

// NotAvailable is used in log entries when a value is unknown.
const NotAvailable = "N/A"

// InstanceName is the default instance name used when none is configured.
const InstanceName = "authgate"
