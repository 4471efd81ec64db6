package apifake

import (
	"context"
	"net/url"
	"sync"

	"github.com/jrsteele09/go-sso-client/auth"
	"github.com/jrsteele09/go-sso-client/internal/errors"
	"github.com/jrsteele09/go-sso-client/oauth2"
	"github.com/jrsteele09/go-sso-client/ssoapi"
)

var _ auth.API = (*FakeAPI)(nil)

// FakeAPI is an in-memory SSO gateway. Responses are set through the
// exported fields; every call is recorded by name.
type FakeAPI struct {
	BaseURL string

	SSOTokens    *oauth2.TokenSet
	SSOTokensErr error

	Ticket    string
	TicketErr error

	AuthTokens    *oauth2.TokenSet
	AuthTokensErr error

	Refreshed  *oauth2.TokenSet
	RefreshErr error

	Groups       []ssoapi.UserGroupItem
	GroupsErr    error
	GroupDetails map[string]ssoapi.UserGroupItem

	Companies []ssoapi.CompanyItem

	lock          sync.RWMutex
	calls         []string
	tokenRequests []ssoapi.TokenRequest
	groupLookups  []string
}

// New creates a FakeAPI whose navigation URLs are rooted at baseURL
func New(baseURL string) *FakeAPI {
	return &FakeAPI{
		BaseURL:      baseURL,
		GroupDetails: make(map[string]ssoapi.UserGroupItem),
	}
}

func (f *FakeAPI) record(name string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls = append(f.calls, name)
}

// Calls returns the names of the calls made so far, in order
func (f *FakeAPI) Calls() []string {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return append([]string(nil), f.calls...)
}

// TokenRequests returns the parameters of every code exchange
func (f *FakeAPI) TokenRequests() []ssoapi.TokenRequest {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return append([]ssoapi.TokenRequest(nil), f.tokenRequests...)
}

// GroupLookups returns the ids passed to GetGroupDetail
func (f *FakeAPI) GroupLookups() []string {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return append([]string(nil), f.groupLookups...)
}

func (f *FakeAPI) GetTokenInfo(_ context.Context, params ssoapi.TokenRequest) (*oauth2.TokenSet, error) {
	f.record("GetTokenInfo")
	f.lock.Lock()
	f.tokenRequests = append(f.tokenRequests, params)
	f.lock.Unlock()
	if f.SSOTokensErr != nil {
		return nil, f.SSOTokensErr
	}
	return clone(f.SSOTokens), nil
}

func (f *FakeAPI) CreatePermissionTicket(_ context.Context, _ string) (*oauth2.PermissionTicket, error) {
	f.record("CreatePermissionTicket")
	if f.TicketErr != nil {
		return nil, f.TicketErr
	}
	return &oauth2.PermissionTicket{Ticket: f.Ticket}, nil
}

func (f *FakeAPI) GetAuthTokenInfo(_ context.Context, _ oauth2.GrantType, _ string) (*oauth2.TokenSet, error) {
	f.record("GetAuthTokenInfo")
	if f.AuthTokensErr != nil {
		return nil, f.AuthTokensErr
	}
	return clone(f.AuthTokens), nil
}

func (f *FakeAPI) RefreshAuthToken(context.Context) (*oauth2.TokenSet, error) {
	f.record("RefreshAuthToken")
	if f.RefreshErr != nil {
		return nil, f.RefreshErr
	}
	return clone(f.Refreshed), nil
}

func (f *FakeAPI) GetUserGroupList(context.Context) ([]ssoapi.UserGroupItem, error) {
	f.record("GetUserGroupList")
	if f.GroupsErr != nil {
		return nil, f.GroupsErr
	}
	return append([]ssoapi.UserGroupItem(nil), f.Groups...), nil
}

func (f *FakeAPI) GetGroupDetail(_ context.Context, id string) (*ssoapi.UserGroupItem, error) {
	f.record("GetGroupDetail")
	f.lock.Lock()
	f.groupLookups = append(f.groupLookups, id)
	f.lock.Unlock()

	g, ok := f.GroupDetails[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "group %s", id)
	}
	return &g, nil
}

func (f *FakeAPI) GetCompanyList(context.Context) ([]ssoapi.CompanyItem, error) {
	f.record("GetCompanyList")
	return f.Companies, nil
}

func (f *FakeAPI) NavigationURL(path string, params url.Values) string {
	u := f.BaseURL + path
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

func clone(ts *oauth2.TokenSet) *oauth2.TokenSet {
	if ts == nil {
		return &oauth2.TokenSet{}
	}
	c := *ts
	return &c
}

// Group builds a group item with the given category codes
func Group(id, name, parentID string, types ...string) ssoapi.UserGroupItem {
	g := ssoapi.UserGroupItem{ID: id, Name: name, ParentID: parentID}
	g.Attributes.Type = types
	return g
}
