package ssoapi

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/jrsteele09/go-sso-client/oauth2"
)

// GetTokenInfo exchanges an authorization code for the SSO token set
func (c *Client) GetTokenInfo(ctx context.Context, params TokenRequest) (*oauth2.TokenSet, error) {
	var ts oauth2.TokenSet
	err := c.get(ctx, RouteToken, func(r *resty.Request) {
		r.SetQueryParams(map[string]string{
			"code":         params.Code,
			"client_id":    params.ClientID,
			"state":        params.State,
			"redirect_uri": params.RedirectURI,
		})
	}, &ts)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// CreatePermissionTicket requests a UMA permission ticket for clientID
func (c *Client) CreatePermissionTicket(ctx context.Context, clientID string) (*oauth2.PermissionTicket, error) {
	var ticket oauth2.PermissionTicket
	err := c.post(ctx, RoutePermissionTicket, func(r *resty.Request) {
		r.SetBody(map[string]string{"client_id": clientID})
	}, &ticket)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetAuthTokenInfo exchanges a permission ticket for the auth token set
func (c *Client) GetAuthTokenInfo(ctx context.Context, grantType oauth2.GrantType, ticket string) (*oauth2.TokenSet, error) {
	form := url.Values{}
	form.Set("grant_type", string(grantType))
	form.Set("ticket", ticket)

	path := strings.Replace(RouteAuthToken, "{realm}", url.PathEscape(c.realm), 1)

	var ts oauth2.TokenSet
	err := c.post(ctx, path, func(r *resty.Request) {
		r.SetHeader("Content-Type", contentTypeForm).
			SetBody(form.Encode())
	}, &ts)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// RefreshAuthToken obtains a fresh token set for the current bearer token
func (c *Client) RefreshAuthToken(ctx context.Context) (*oauth2.TokenSet, error) {
	var ts oauth2.TokenSet
	if err := c.get(ctx, RouteRefreshToken, nil, &ts); err != nil {
		return nil, err
	}
	return &ts, nil
}
