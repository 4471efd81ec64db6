package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/jrsteele09/go-sso-client/token/jwt"
	xoauth2 "golang.org/x/oauth2"
)

type tokenSource struct {
	ctx context.Context
	c   *Controller
}

// TokenSource adapts the controller to golang.org/x/oauth2. Each Token call
// refreshes the stored set when it is inside the refresh window; concurrent
// calls share one refresh.
func (c *Controller) TokenSource(ctx context.Context) xoauth2.TokenSource {
	return &tokenSource{ctx: ctx, c: c}
}

// HTTPClient returns a client that authorizes every request with the
// current access token
func (c *Controller) HTTPClient(ctx context.Context) *http.Client {
	return xoauth2.NewClient(ctx, c.TokenSource(ctx))
}

func (ts *tokenSource) Token() (*xoauth2.Token, error) {
	_, err, _ := ts.c.refreshes.Do(ts.c.session.AppID(), func() (any, error) {
		return ts.c.RefreshToken(ts.ctx, false)
	})
	if err != nil {
		return nil, err
	}

	set, err := TokenInfo(ts.ctx, ts.c.store, ts.c.session)
	if err != nil {
		return nil, err
	}
	var expiry time.Time
	if claims, err := jwt.Decode(set.AccessToken); err == nil && claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	return set.OAuth2Token(expiry), nil
}
