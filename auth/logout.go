package auth

import (
	"context"
	"net/url"

	"github.com/jrsteele09/go-sso-client/internal/errors"
	"github.com/jrsteele09/go-sso-client/oauth2"
	"github.com/jrsteele09/go-sso-client/ssoapi"
)

// Logout clears the stored tokens and the stashed redirect uri and returns
// the redirect to the broker's end-session page.
func (c *Controller) Logout(ctx context.Context) (Outcome, error) {
	href := c.loc.Href()

	var idToken string
	ts, err := TokenInfo(ctx, c.store, c.session)
	switch {
	case err == nil:
		idToken = ts.IDToken
	case !errors.Is(err, errors.ErrTokenNotFound):
		return failed(StateNoSession, err)
	}

	if err := RemoveToken(ctx, c.store, c.session); err != nil {
		return failed(StateNoSession, err)
	}
	if err := c.scoped.RemoveItem(ctx, LoginRedirectURIKey); err != nil {
		return failed(StateNoSession, errors.Wrapf(err, "[Logout] removing redirect uri"))
	}

	params := url.Values{}
	if idToken != "" {
		params.Set(oauth2.ParamIDTokenHint, idToken)
	}
	params.Set(oauth2.ParamPostLogoutRedirectURI, href)
	c.setKeycloakHost(params, href)

	return redirect(StateNoSession, c.api.NavigationURL(ssoapi.RouteEndSession, params)), nil
}
