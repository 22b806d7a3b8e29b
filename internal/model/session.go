package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the JWT claims of the browser session cookie
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// AuthStatus is what the server knows about a session's sign-in
type AuthStatus struct {
	Authenticated bool    `json:"authenticated"`
	Member        *Member `json:"member,omitempty"`
	// TokenExpiresAt is in epoch milliseconds, when known.
	TokenExpiresAt *int64 `json:"tokenExpiresAt,omitempty"`
}
