package auth

import (
	"context"

	"github.com/jrsteele09/go-sso-client/internal/errors"
	"github.com/jrsteele09/go-sso-client/kvstore"
	"github.com/jrsteele09/go-sso-client/oauth2"
	"github.com/jrsteele09/go-sso-client/sessions"
	"github.com/jrsteele09/go-sso-client/token/jwt"
	"github.com/rs/zerolog/log"
)

// TokenKind selects the slot a token set is stored in
type TokenKind int

const (
	// TokenKindSSO is the set returned by the authorization code exchange
	TokenKindSSO TokenKind = iota
	// TokenKindAuth is the authorization-scoped set of the UMA ticket grant
	TokenKindAuth
)

func (k TokenKind) key() string {
	if k == TokenKindAuth {
		return TokenInfoKey
	}
	return SSOTokenInfoKey
}

// SetToken stores ts in the slot of kind. An auth set without an id_token
// inherits the id_token of the stored SSO set.
func (c *Controller) SetToken(ctx context.Context, ts *oauth2.TokenSet, kind TokenKind) error {
	return setToken(ctx, c.scoped, ts, kind)
}

func setToken(ctx context.Context, sc kvstore.Scoped, ts *oauth2.TokenSet, kind TokenKind) error {
	if ts == nil {
		return errors.New("[SetToken] token set is nil")
	}
	data := *ts
	if kind == TokenKindAuth && data.IDToken == "" {
		sso, ok, err := kvstore.GetItem[oauth2.TokenSet](ctx, sc, SSOTokenInfoKey)
		if err != nil {
			return errors.Wrapf(err, "[SetToken] reading sso token set")
		}
		if ok {
			data.IDToken = sso.IDToken
		}
	}
	if err := sc.SetItem(ctx, kind.key(), &data); err != nil {
		return errors.Wrapf(err, "[SetToken] storing token set")
	}
	return nil
}

// RefreshToken refreshes the token sets when force is set or the access
// token expires within the refresh window. A token already past its expiry
// is left alone; the login flow is expected to replace it. It reports
// whether a refresh was performed.
func (c *Controller) RefreshToken(ctx context.Context, force bool) (bool, error) {
	if !force {
		claims, err := DecodedToken(ctx, c.store, c.session)
		if err != nil {
			return false, err
		}
		remaining := claims.ExpiresAtUnix() - c.nowTime().Unix()
		if remaining <= 0 || remaining > int64(c.refreshWindow.Seconds()) {
			return false, nil
		}
	}

	ts, err := c.api.RefreshAuthToken(ctx)
	if err != nil {
		return false, errors.Wrapf(err, "[RefreshToken] refreshing token")
	}
	if err := c.SetToken(ctx, ts, TokenKindSSO); err != nil {
		return false, err
	}
	if err := c.SetToken(ctx, ts, TokenKindAuth); err != nil {
		return false, err
	}
	log.Debug().Str("session", c.session.AppID()).Bool("forced", force).Msg("token refreshed")
	return true, nil
}

// TokenInfo returns the auth token set of sess, falling back to the SSO set.
// errors.ErrTokenNotFound is returned when neither is stored.
func TokenInfo(ctx context.Context, store *kvstore.Store, sess sessions.Session) (*oauth2.TokenSet, error) {
	if sess.IsZero() {
		return nil, errors.ErrSessionNotInitialized
	}
	sc := store.For(sess)
	for _, key := range []string{TokenInfoKey, SSOTokenInfoKey} {
		ts, ok, err := kvstore.GetItem[oauth2.TokenSet](ctx, sc, key)
		if err != nil {
			return nil, errors.Wrapf(err, "[TokenInfo] reading %s", key)
		}
		if ok {
			return &ts, nil
		}
	}
	return nil, errors.ErrTokenNotFound
}

// AccessToken returns the access token of the current token set
func AccessToken(ctx context.Context, store *kvstore.Store, sess sessions.Session) (string, error) {
	ts, err := TokenInfo(ctx, store, sess)
	if err != nil {
		return "", err
	}
	if ts.AccessToken == "" {
		return "", errors.ErrTokenNotFound
	}
	return ts.AccessToken, nil
}

// RefreshTokenValue returns the refresh token of the auth set, then of the
// SSO set, or "" when neither carries one
func RefreshTokenValue(ctx context.Context, store *kvstore.Store, sess sessions.Session) (string, error) {
	if sess.IsZero() {
		return "", errors.ErrSessionNotInitialized
	}
	sc := store.For(sess)
	for _, key := range []string{TokenInfoKey, SSOTokenInfoKey} {
		ts, ok, err := kvstore.GetItem[oauth2.TokenSet](ctx, sc, key)
		if err != nil {
			return "", errors.Wrapf(err, "[RefreshTokenValue] reading %s", key)
		}
		if ok && ts.RefreshToken != "" {
			return ts.RefreshToken, nil
		}
	}
	return "", nil
}

// DecodedToken decodes the claims of the current access token. Callers must
// treat a decode error as unauthenticated.
func DecodedToken(ctx context.Context, store *kvstore.Store, sess sessions.Session) (*jwt.Claims, error) {
	raw, err := AccessToken(ctx, store, sess)
	if err != nil {
		return nil, err
	}
	return jwt.Decode(raw)
}

// RemoveToken deletes both token sets of sess
func RemoveToken(ctx context.Context, store *kvstore.Store, sess sessions.Session) error {
	if sess.IsZero() {
		return errors.ErrSessionNotInitialized
	}
	sc := store.For(sess)
	for _, key := range []string{TokenInfoKey, SSOTokenInfoKey} {
		if err := sc.RemoveItem(ctx, key); err != nil {
			return errors.Wrapf(err, "[RemoveToken] removing %s", key)
		}
	}
	return nil
}
