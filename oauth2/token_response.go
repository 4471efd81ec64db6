package oauth2

import (
	"time"

	xoauth2 "golang.org/x/oauth2"
)

// TokenSet is the token bundle returned by every token exchange of the
// identity broker (code exchange, UMA ticket grant and refresh).
type TokenSet struct {
	// AccessToken is the JWT sent as "Authorization: Bearer <access_token>".
	AccessToken string `json:"access_token"`

	// ExpiresIn is the access token lifetime in seconds. The JWT "exp" claim
	// is authoritative; this is a hint.
	ExpiresIn int `json:"expires_in"`

	// RefreshToken is used by the refresh endpoint.
	RefreshToken string `json:"refresh_token"`

	// RefreshExpiresIn is the refresh token lifetime in seconds.
	RefreshExpiresIn int `json:"refresh_expires_in"`

	// IDToken is the OIDC ID token. It is the id_token_hint for logout and
	// may be missing from the UMA ticket response.
	IDToken string `json:"id_token,omitempty"`

	// TokenType is "Bearer".
	TokenType string `json:"token_type"`

	NotBeforePolicy int    `json:"not-before-policy"`
	Scope           string `json:"scope"`
	SessionState    string `json:"session_state"`

	// Optional profile fields some brokers add to the response
	Avatar      string   `json:"avatar,omitempty"`
	Username    string   `json:"username,omitempty"`
	Nickname    string   `json:"nickname,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// OAuth2Token converts the set to a golang.org/x/oauth2 token. expiry is
// the access token expiry; the zero time means "unknown".
func (t *TokenSet) OAuth2Token(expiry time.Time) *xoauth2.Token {
	tok := &xoauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       expiry,
	}
	extra := map[string]any{
		"scope":         t.Scope,
		"session_state": t.SessionState,
	}
	if t.IDToken != "" {
		extra["id_token"] = t.IDToken
	}
	return tok.WithExtra(extra)
}
