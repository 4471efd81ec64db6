package auth

import (
	"context"
	"fmt"
	"net/url"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-sso-client/internal/errors"
	"github.com/jrsteele09/go-sso-client/kvstore"
	"github.com/jrsteele09/go-sso-client/oauth2"
	"github.com/jrsteele09/go-sso-client/ssoapi"
	"github.com/jrsteele09/go-sso-client/urlutil"
	"github.com/rs/zerolog/log"
)

// IsCallback reports whether params is exactly the parameter set of an SSO
// callback. Any superset or subset is not a callback, so a reload of a page
// carrying extra parameters never loops through the exchange.
func IsCallback(params map[string]string) bool {
	if len(params) != len(oauth2.CallbackParams) {
		return false
	}
	for _, name := range oauth2.CallbackParams {
		if _, ok := params[name]; !ok {
			return false
		}
	}
	return true
}

// SSOLogin resumes an SSO callback found on the current location, or starts
// the login redirect when there is none.
//
// A callback is exchanged for the SSO token set, a permission ticket and the
// auth token set, in that order. On success the callback parameters are
// removed from the location in place. When any exchange fails the stored
// tokens are cleared and the outcome redirects to the stashed
// login_redirect_uri; the failure is logged and carried in Outcome.Err but
// not returned. Store and location failures return an OutcomeError together
// with the error.
func (c *Controller) SSOLogin(ctx context.Context) (Outcome, error) {
	params, err := urlutil.GetURLParams(c.loc.Href())
	if err != nil || !IsCallback(params) {
		return c.Login(ctx)
	}
	log.Debug().Str("state", StateAwaitingCallbackValidation.String()).Msg("sso callback detected")

	if err := RemoveToken(ctx, c.store, c.session); err != nil {
		return failed(StateAwaitingCallbackValidation, err)
	}
	redirectURI, _, err := kvstore.GetString(ctx, c.scoped, LoginRedirectURIKey)
	if err != nil {
		return failed(StateAwaitingCallbackValidation, errors.Wrapf(err, "[SSOLogin] reading login redirect uri"))
	}
	if redirectURI == "" {
		redirectURI, err = urlutil.StripParams(c.loc.Href(), oauth2.CallbackParams)
		if err != nil {
			return failed(StateAwaitingCallbackValidation, errors.Wrapf(err, "[SSOLogin] stripping callback"))
		}
	}

	log.Debug().Str("state", StateExchangingToken.String()).Msg("exchanging sso callback")
	authSet, err := c.exchange(ctx, params, redirectURI)
	if err != nil {
		log.Err(err).Str("session", c.session.AppID()).Str("redirect_uri", redirectURI).Msg("sso exchange failed")
		if rmErr := RemoveToken(ctx, c.store, c.session); rmErr != nil {
			return failed(StateExchangeFailed, rmErr)
		}
		out := redirect(StateExchangeFailed, redirectURI)
		out.Err = fmt.Errorf("%w: %w", errors.ErrExchangeFailure, err)
		return out, nil
	}

	if err := urlutil.RemoveURLParam(c.loc, oauth2.CallbackParams); err != nil {
		return failed(StateAuthenticated, errors.Wrapf(err, "[SSOLogin] cleaning location"))
	}
	log.Info().Str("session", c.session.AppID()).Msg("sso login complete")
	return Outcome{
		Kind:     OutcomeAuthenticated,
		State:    StateAuthenticated,
		CleanURL: c.loc.Href(),
		Tokens:   authSet,
	}, nil
}

func (c *Controller) exchange(ctx context.Context, params map[string]string, redirectURI string) (*oauth2.TokenSet, error) {
	clientID := c.session.AppID()

	ssoSet, err := c.api.GetTokenInfo(ctx, ssoapi.TokenRequest{
		Code:        params[oauth2.ParamCode],
		ClientID:    clientID,
		State:       params[oauth2.ParamState],
		RedirectURI: redirectURI,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "token exchange")
	}
	if err := c.SetToken(ctx, ssoSet, TokenKindSSO); err != nil {
		return nil, err
	}

	ticket, err := c.api.CreatePermissionTicket(ctx, clientID)
	if err != nil {
		return nil, errors.Wrapf(err, "permission ticket")
	}

	authSet, err := c.api.GetAuthTokenInfo(ctx, oauth2.UMATicketGrant, ticket.Ticket)
	if err != nil {
		return nil, errors.Wrapf(err, "uma ticket grant")
	}
	if err := c.SetToken(ctx, authSet, TokenKindAuth); err != nil {
		return nil, err
	}

	ts, _, err := kvstore.GetItem[oauth2.TokenSet](ctx, c.scoped, TokenInfoKey)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// Login stashes the current location as login_redirect_uri and returns the
// redirect to the broker's login page.
func (c *Controller) Login(ctx context.Context) (Outcome, error) {
	href := c.loc.Href()
	if err := c.scoped.SetItem(ctx, LoginRedirectURIKey, href); err != nil {
		return failed(StateRedirectingToLogin, errors.Wrapf(err, "[Login] stashing redirect uri"))
	}

	params := url.Values{}
	params.Set(oauth2.ParamRedirectURI, href)
	params.Set(oauth2.ParamClientID, c.session.AppID())
	params.Set(oauth2.ParamScope, oidc.ScopeOpenID)
	c.setKeycloakHost(params, href)

	return redirect(StateRedirectingToLogin, c.Endpoint().AuthURL+"?"+params.Encode()), nil
}

// setKeycloakHost points the broker at {origin}/sso/ when the app is served
// from a bare IP address other than localhost
func (c *Controller) setKeycloakHost(params url.Values, href string) {
	origin, err := urlutil.Origin(href)
	if err != nil {
		return
	}
	if urlutil.IsIPAddress(origin) && urlutil.Hostname(href) != "localhost" {
		params.Set(oauth2.ParamKeycloakHost, origin+"/sso/")
	}
}
