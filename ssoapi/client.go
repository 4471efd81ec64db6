package ssoapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-sso-client/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
	requestIDHeader = "X-Request-ID"
	defaultRealm    = "myrealm"
	defaultTimeout  = 30 * time.Second
)

// Credentials supplies the bearer token for each request and recovers from
// 401 responses by re-running the login flow.
type Credentials interface {
	// AccessToken returns the current access token, "" when none is stored
	AccessToken(ctx context.Context) (string, error)

	// HasSession reports whether a session identifier is active
	HasSession(ctx context.Context) bool

	// ReLogin re-runs the SSO login flow
	ReLogin(ctx context.Context) error
}

// Client is the authenticated request façade of the SSO gateway
type Client struct {
	http    *resty.Client
	baseURL string
	realm   string
	creds   Credentials
	budget  *RetryBudget
}

// Option configures a Client
type Option func(*Client)

// WithCredentials sets the token provider and re-login hook
func WithCredentials(creds Credentials) Option {
	return func(c *Client) {
		c.creds = creds
	}
}

// WithRetryBudget replaces the process-wide re-login budget
func WithRetryBudget(b *RetryBudget) Option {
	return func(c *Client) {
		c.budget = b
	}
}

// WithRealm sets the broker realm of the UMA ticket endpoint
func WithRealm(realm string) Option {
	return func(c *Client) {
		if realm != "" {
			c.realm = realm
		}
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithHTTPClient sets the underlying *http.Client (transport, TLS, proxies)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		baseURL := c.http.BaseURL
		c.http = resty.NewWithClient(hc).SetBaseURL(baseURL)
	}
}

// New creates a Client for the gateway at baseURL
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	c := &Client{
		baseURL: baseURL,
		realm:   defaultRealm,
		budget:  DefaultRetryBudget,
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultTimeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the gateway base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// NavigationURL builds an absolute browser URL for path with query params
func (c *Client) NavigationURL(path string, params url.Values) string {
	u := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

func (c *Client) newRequest(ctx context.Context) (*resty.Request, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentTypeJSON).
		SetHeader(requestIDHeader, uuid.NewString())

	if c.creds != nil {
		token, err := c.creds.AccessToken(ctx)
		if err != nil {
			return nil, err
		}
		if token != "" {
			req.SetAuthToken(token)
		}
	}
	return req, nil
}

// do executes a request, decoding a successful JSON body into result.
// A 401 with an active session re-runs the login flow and retries while the
// retry budget allows; any success resets the budget.
func (c *Client) do(ctx context.Context, method, path string, build func(*resty.Request), result any) error {
	for {
		req, err := c.newRequest(ctx)
		if err != nil {
			return errors.Wrapf(err, "[%s %s] preparing request", method, path)
		}
		if build != nil {
			build(req)
		}

		res, err := req.Execute(method, path)
		if err != nil {
			return fmt.Errorf("[%s %s] connection failed: %w", method, path, err)
		}

		if res.IsSuccess() {
			c.budget.Reset()
			if result == nil || len(res.Body()) == 0 {
				return nil
			}
			if err := json.Unmarshal(res.Body(), result); err != nil {
				return fmt.Errorf("[%s %s] failed to decode response: %w", method, path, err)
			}
			return nil
		}

		httpErr := newHTTPError(res)
		log.Debug().
			Int("status", httpErr.StatusCode).
			Str("method", method).
			Str("path", path).
			Str("request_id", req.Header.Get(requestIDHeader)).
			Msg("sso api request failed")

		if res.StatusCode() == http.StatusUnauthorized && c.creds != nil && c.creds.HasSession(ctx) && c.budget.TryAcquire() {
			log.Warn().Int("attempt", c.budget.Count()).Str("path", path).Msg("unauthorized, re-running sso login")
			if err := c.creds.ReLogin(ctx); err != nil {
				return errors.Wrapf(err, "[%s %s] re-login after 401", method, path)
			}
			continue
		}
		return httpErr
	}
}

func (c *Client) get(ctx context.Context, path string, build func(*resty.Request), result any) error {
	return c.do(ctx, resty.MethodGet, path, build, result)
}

func (c *Client) post(ctx context.Context, path string, build func(*resty.Request), result any) error {
	return c.do(ctx, resty.MethodPost, path, build, result)
}
