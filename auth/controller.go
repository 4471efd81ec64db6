package auth

import (
	"context"
	"net/url"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-sso-client/internal/config"
	"github.com/jrsteele09/go-sso-client/internal/errors"
	"github.com/jrsteele09/go-sso-client/kvstore"
	"github.com/jrsteele09/go-sso-client/oauth2"
	"github.com/jrsteele09/go-sso-client/sessions"
	"github.com/jrsteele09/go-sso-client/ssoapi"
	"github.com/jrsteele09/go-sso-client/urlutil"
	"github.com/rs/zerolog/log"
	xoauth2 "golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// Store keys, relative to the session namespace
const (
	TokenInfoKey        = "tokenInfo"
	SSOTokenInfoKey     = "SSO-tokenInfo"
	LoginRedirectURIKey = "login_redirect_uri"
)

const defaultRefreshWindow = 200 * time.Second

// API is the part of the SSO gateway the controller depends on
type API interface {
	GetTokenInfo(ctx context.Context, params ssoapi.TokenRequest) (*oauth2.TokenSet, error)
	CreatePermissionTicket(ctx context.Context, clientID string) (*oauth2.PermissionTicket, error)
	GetAuthTokenInfo(ctx context.Context, grantType oauth2.GrantType, ticket string) (*oauth2.TokenSet, error)
	RefreshAuthToken(ctx context.Context) (*oauth2.TokenSet, error)
	GetUserGroupList(ctx context.Context) ([]ssoapi.UserGroupItem, error)
	GetGroupDetail(ctx context.Context, id string) (*ssoapi.UserGroupItem, error)
	GetCompanyList(ctx context.Context) ([]ssoapi.CompanyItem, error)
	NavigationURL(path string, params url.Values) string
}

var _ API = (*ssoapi.Client)(nil)

// Navigator performs the navigation of a redirect outcome produced outside a
// host request, such as the re-login triggered by a 401.
type Navigator func(ctx context.Context, out Outcome) error

// Controller drives the SSO session lifecycle of one application
type Controller struct {
	session       sessions.Session
	store         *kvstore.Store
	scoped        kvstore.Scoped
	loc           urlutil.Location
	api           API
	provider      *oidc.Provider
	navigate      Navigator
	nowTime       func() time.Time
	refreshWindow time.Duration
	refreshes     *singleflight.Group
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithAPI replaces the default gateway client
func WithAPI(api API) ControllerOption {
	return func(c *Controller) {
		c.api = api
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ControllerOption {
	return func(c *Controller) {
		c.nowTime = nowFunc
	}
}

// WithNavigator sets how re-login redirects are performed
func WithNavigator(n Navigator) ControllerOption {
	return func(c *Controller) {
		c.navigate = n
	}
}

// NewController creates the controller for the application named by
// cfg.GetAppID() and makes it the active session of store. loc is the
// location the flow reads callback parameters from and rewrites.
func NewController(ctx context.Context, cfg config.Config, store *kvstore.Store, loc urlutil.Location, opts ...ControllerOption) (*Controller, error) {
	if cfg == nil {
		return nil, errors.New("[NewController] config is required")
	}
	if store == nil {
		return nil, errors.New("[NewController] store is required")
	}
	if loc == nil {
		return nil, errors.New("[NewController] location is required")
	}

	sess, err := sessions.New(cfg.GetAppID())
	if err != nil {
		return nil, errors.Wrapf(err, "[NewController] APP_ID")
	}
	if err := store.Activate(ctx, sess); err != nil {
		return nil, errors.Wrapf(err, "[NewController] activating session")
	}

	c := &Controller{
		session:       sess,
		store:         store,
		scoped:        store.For(sess),
		loc:           loc,
		navigate:      logNavigation,
		nowTime:       time.Now,
		refreshWindow: cfg.GetRefreshWindow(),
		refreshes:     &singleflight.Group{},
	}
	if c.refreshWindow <= 0 {
		c.refreshWindow = defaultRefreshWindow
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.api == nil {
		c.api = ssoapi.New(cfg.GetBaseURL(),
			ssoapi.WithCredentials(c),
			ssoapi.WithRealm(cfg.GetRealm()),
			ssoapi.WithTimeout(cfg.GetRequestTimeout()),
		)
	}
	// The gateway publishes no discovery document; its endpoints are fixed routes
	c.provider = (&oidc.ProviderConfig{
		IssuerURL:   cfg.GetBaseURL(),
		AuthURL:     c.api.NavigationURL(ssoapi.RouteLogin, nil),
		TokenURL:    c.api.NavigationURL(ssoapi.RouteToken, nil),
		UserInfoURL: c.api.NavigationURL(ssoapi.RouteUserInfo, nil),
	}).NewProvider(ctx)
	return c, nil
}

// Endpoint returns the broker's login and token endpoints
func (c *Controller) Endpoint() xoauth2.Endpoint {
	return c.provider.Endpoint()
}

// Session returns the controller's session handle
func (c *Controller) Session() sessions.Session {
	return c.session
}

// Store returns the backing store
func (c *Controller) Store() *kvstore.Store {
	return c.store
}

// Location returns the location the controller reads and rewrites
func (c *Controller) Location() urlutil.Location {
	return c.loc
}

// At returns a controller for the same session positioned at loc. Hosts that
// see a new URL per request use it; re-logins triggered by the gateway
// client still run at the location given to NewController.
func (c *Controller) At(loc urlutil.Location) *Controller {
	cp := *c
	cp.loc = loc
	return &cp
}

func logNavigation(_ context.Context, out Outcome) error {
	log.Info().Str("state", out.State.String()).Str("url", out.URL).Msg("navigation required")
	return nil
}
