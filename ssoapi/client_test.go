package ssoapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jrsteele09/go-sso-client/internal/errors"
	"github.com/jrsteele09/go-sso-client/internal/utils"
	"github.com/jrsteele09/go-sso-client/oauth2"
	"github.com/jrsteele09/go-sso-client/ssoapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCredentials struct {
	mu       sync.Mutex
	token    string
	session  bool
	reLogins int
	onLogin  func()
}

func (f *fakeCredentials) AccessToken(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeCredentials) HasSession(context.Context) bool {
	return f.session
}

func (f *fakeCredentials) ReLogin(context.Context) error {
	f.mu.Lock()
	f.reLogins++
	f.mu.Unlock()
	if f.onLogin != nil {
		f.onLogin()
	}
	return nil
}

func TestExchangeCalls(t *testing.T) {
	var requests []*http.Request
	var bodies []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, r)
		bodies = append(bodies, string(body))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case ssoapi.RouteToken:
			io.WriteString(w, `{"access_token":"sso-at","id_token":"idt","refresh_token":"rt","expires_in":300}`)
		case ssoapi.RoutePermissionTicket:
			io.WriteString(w, `{"ticket":"tkt-1"}`)
		case "/sso/realms/corp/protocol/openid-connect/token":
			io.WriteString(w, `{"access_token":"auth-at","expires_in":300}`)
		case ssoapi.RouteRefreshToken:
			io.WriteString(w, `{"access_token":"new-at"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	creds := &fakeCredentials{token: "bearer-1", session: true}
	client := ssoapi.New(ts.URL, ssoapi.WithCredentials(creds), ssoapi.WithRealm("corp"), ssoapi.WithRetryBudget(ssoapi.NewRetryBudget(10)))
	ctx := context.Background()

	sso, err := client.GetTokenInfo(ctx, ssoapi.TokenRequest{Code: "c", ClientID: "crm", State: "s", RedirectURI: "http://localhost:3000/"})
	require.NoError(t, err)
	require.Equal(t, "sso-at", sso.AccessToken)
	require.Equal(t, "idt", sso.IDToken)

	q := requests[0].URL.Query()
	assert.Equal(t, http.MethodGet, requests[0].Method)
	assert.Equal(t, "c", q.Get("code"))
	assert.Equal(t, "crm", q.Get("client_id"))
	assert.Equal(t, "s", q.Get("state"))
	assert.Equal(t, "http://localhost:3000/", q.Get("redirect_uri"))
	assert.Equal(t, "Bearer bearer-1", requests[0].Header.Get("Authorization"))
	assert.NotEmpty(t, requests[0].Header.Get("X-Request-ID"))

	ticket, err := client.CreatePermissionTicket(ctx, "crm")
	require.NoError(t, err)
	require.Equal(t, "tkt-1", ticket.Ticket)
	assert.Equal(t, http.MethodPost, requests[1].Method)
	assert.JSONEq(t, `{"client_id":"crm"}`, bodies[1])

	auth, err := client.GetAuthTokenInfo(ctx, oauth2.UMATicketGrant, "tkt-1")
	require.NoError(t, err)
	require.Equal(t, "auth-at", auth.AccessToken)
	assert.Equal(t, "application/x-www-form-urlencoded", requests[2].Header.Get("Content-Type"))
	assert.Equal(t, "grant_type=urn%3Aietf%3Aparams%3Aoauth%3Agrant-type%3Auma-ticket&ticket=tkt-1", bodies[2])

	refreshed, err := client.RefreshAuthToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "new-at", refreshed.AccessToken)
}

func TestNoBearerWithoutToken(t *testing.T) {
	var auth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		io.WriteString(w, `[]`)
	}))
	defer ts.Close()

	client := ssoapi.New(ts.URL, ssoapi.WithCredentials(&fakeCredentials{}))
	_, err := client.GetCompanyList(context.Background())
	require.NoError(t, err)
	require.Empty(t, auth)
}

func TestUnauthorizedRetryPolicy(t *testing.T) {
	t.Run("eleven consecutive 401s give ten re-logins", func(t *testing.T) {
		var calls int
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"error":"invalid token"}`)
		}))
		defer ts.Close()

		creds := &fakeCredentials{token: "t", session: true}
		budget := ssoapi.NewRetryBudget(10)
		client := ssoapi.New(ts.URL, ssoapi.WithCredentials(creds), ssoapi.WithRetryBudget(budget))

		_, err := client.GetUserGroupList(context.Background())
		require.Error(t, err)
		require.True(t, errors.Is(err, errors.ErrUnauthorized))

		var httpErr *ssoapi.HTTPError
		require.True(t, errors.As(err, &httpErr))
		require.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)

		require.Equal(t, 11, calls)
		require.Equal(t, 10, creds.reLogins)
		require.Equal(t, 10, budget.Count())
	})

	t.Run("a success resets the counter", func(t *testing.T) {
		var calls int
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 4 {
				io.WriteString(w, `[]`)
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer ts.Close()

		creds := &fakeCredentials{token: "t", session: true}
		budget := ssoapi.NewRetryBudget(10)
		client := ssoapi.New(ts.URL, ssoapi.WithCredentials(creds), ssoapi.WithRetryBudget(budget))

		_, err := client.GetUserGroupList(context.Background())
		require.NoError(t, err)
		require.Equal(t, 3, creds.reLogins)
		require.Equal(t, 0, budget.Count())
	})

	t.Run("no session surfaces the 401 immediately", func(t *testing.T) {
		var calls int
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer ts.Close()

		creds := &fakeCredentials{}
		client := ssoapi.New(ts.URL, ssoapi.WithCredentials(creds), ssoapi.WithRetryBudget(ssoapi.NewRetryBudget(10)))

		_, err := client.GetUserGroupList(context.Background())
		require.True(t, errors.Is(err, errors.ErrUnauthorized))
		require.Equal(t, 1, calls)
		require.Zero(t, creds.reLogins)
	})

	t.Run("re-login refreshes the bearer of the retry", func(t *testing.T) {
		var seen []string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, r.Header.Get("Authorization"))
			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			io.WriteString(w, `{"sub":"u1"}`)
		}))
		defer ts.Close()

		creds := &fakeCredentials{token: "stale", session: true}
		creds.onLogin = func() { creds.token = "fresh" }
		client := ssoapi.New(ts.URL, ssoapi.WithCredentials(creds), ssoapi.WithRetryBudget(ssoapi.NewRetryBudget(10)))

		info, err := client.GetUserInfo(context.Background())
		require.NoError(t, err)
		require.Equal(t, "u1", info.Sub)
		require.Equal(t, []string{"Bearer stale", "Bearer fresh"}, seen)
	})
}

func TestOtherErrorsAreNotRetried(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `boom`)
	}))
	defer ts.Close()

	creds := &fakeCredentials{token: "t", session: true}
	budget := ssoapi.NewRetryBudget(10)
	require.True(t, budget.TryAcquire())
	client := ssoapi.New(ts.URL, ssoapi.WithCredentials(creds), ssoapi.WithRetryBudget(budget))

	_, err := client.GetAllRoles(context.Background())
	var httpErr *ssoapi.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	require.Equal(t, "boom", httpErr.Body)
	require.False(t, errors.Is(err, errors.ErrUnauthorized))
	require.Equal(t, 1, calls)
	require.Equal(t, 1, budget.Count(), "a non-2xx response must not reset the budget")
}

func TestDirectoryCalls(t *testing.T) {
	var last *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = r
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/lxwork/api/auth/groups/g-2":
			io.WriteString(w, `{"id":"g-2","name":"East Branch","parentId":"g-1","attributes":{"type":["3"]}}`)
		case ssoapi.RouteUserSearch:
			io.WriteString(w, `[{"id":"u1","username":"100234","real_name":"Li Lei"}]`)
		case ssoapi.RouteUserSearchRole:
			io.WriteString(w, `{"total":1,"page":1,"page_size":10,"list":[{"id":"u1"}]}`)
		case "/lxwork/api/auth/users/u1":
			io.WriteString(w, `{"id":"u1","username":"100234","enabled":true}`)
		case ssoapi.RouteCurUserRoleMaps:
			io.WriteString(w, `[{"id":"r1","name":"manager","composite":false,"clientRole":true}]`)
		default:
			io.WriteString(w, `[]`)
		}
	}))
	defer ts.Close()

	client := ssoapi.New(ts.URL, ssoapi.WithRetryBudget(ssoapi.NewRetryBudget(10)))
	ctx := context.Background()

	group, err := client.GetGroupDetail(ctx, "g-2")
	require.NoError(t, err)
	require.True(t, group.IsBranch())
	require.Equal(t, "g-1", group.ParentID)

	users, err := client.GetUsers(ctx, ssoapi.SearchUsersParams{RealName: "Li", Exact: utils.Ptr(false), MaxSize: utils.Ptr(20)})
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "Li", last.URL.Query().Get("real_name"))
	require.Equal(t, "false", last.URL.Query().Get("exact"))
	require.Equal(t, "20", last.URL.Query().Get("max_size"))
	require.False(t, last.URL.Query().Has("enable"))

	byRole, err := client.GetUsersByRole(ctx, ssoapi.SearchUsersByRoleParams{RoleName: "manager", Page: 1})
	require.NoError(t, err)
	require.Equal(t, 1, byRole.Total)
	require.Equal(t, "manager", last.URL.Query().Get("role_name"))
	require.False(t, last.URL.Query().Has("page_size"))

	detail, err := client.GetUserDetailByID(ctx, "u1")
	require.NoError(t, err)
	require.True(t, detail.Enabled)

	roles, err := client.GetCurUserRoles(ctx)
	require.NoError(t, err)
	require.True(t, roles[0].ClientRole)

	groups, err := client.GetCurUserGroupList(ctx)
	require.NoError(t, err)
	require.Empty(t, groups)

	_, err = client.GetUserDetail(ctx)
	require.Error(t, err, "an array body cannot decode into a profile")
}

func TestNavigationURL(t *testing.T) {
	client := ssoapi.New("https://work.example.com/")
	got := client.NavigationURL(ssoapi.RouteLogin, map[string][]string{"client_id": {"crm"}})
	require.Equal(t, "https://work.example.com/lxwork/api/auth/login?client_id=crm", got)
	require.Equal(t, "https://work.example.com", client.BaseURL())
}

func TestDecodeFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `not json`)
	}))
	defer ts.Close()

	client := ssoapi.New(ts.URL)
	_, err := client.GetUserInfo(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode response")
	var syntaxErr *json.SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
}
