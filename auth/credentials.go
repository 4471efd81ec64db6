package auth

import (
	"context"

	"github.com/jrsteele09/go-sso-client/internal/errors"
	"github.com/jrsteele09/go-sso-client/ssoapi"
)

var _ ssoapi.Credentials = (*Controller)(nil)

// AccessToken returns the stored access token, "" when there is none
func (c *Controller) AccessToken(ctx context.Context) (string, error) {
	token, err := AccessToken(ctx, c.store, c.session)
	if errors.Is(err, errors.ErrTokenNotFound) {
		return "", nil
	}
	return token, err
}

// HasSession reports whether the store names an active session
func (c *Controller) HasSession(ctx context.Context) bool {
	sess, err := c.store.Active(ctx)
	return err == nil && !sess.IsZero()
}

// ReLogin re-runs the SSO login flow and hands any redirect to the navigator
func (c *Controller) ReLogin(ctx context.Context) error {
	out, err := c.SSOLogin(ctx)
	if err != nil {
		return err
	}
	if out.IsRedirect() && c.navigate != nil {
		return c.navigate(ctx, out)
	}
	return nil
}
