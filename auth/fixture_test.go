package auth_test

import (
	"context"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-sso-client/auth"
	"github.com/jrsteele09/go-sso-client/auth/apifake"
	"github.com/jrsteele09/go-sso-client/internal/config"
	"github.com/jrsteele09/go-sso-client/kvstore"
	"github.com/jrsteele09/go-sso-client/oauth2"
	"github.com/jrsteele09/go-sso-client/urlutil"
	"github.com/stretchr/testify/require"
)

const (
	testAppID       = "crm"
	testBaseURL     = "https://work.example.com"
	testAppURL      = "http://localhost:3000/cb"
	testCallbackURL = "http://localhost:3000/cb?state=st-1&code=code-1&iss=https%3A%2F%2Fsso.example.com&session_state=ss-1"
	testSecret      = "test-signing-secret"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testFixture holds all test dependencies
type testFixture struct {
	store      *kvstore.Store
	loc        *urlutil.StaticLocation
	api        *apifake.FakeAPI
	controller *auth.Controller
}

// setupTestFixture creates a controller over an in-memory store and a fake
// gateway, located at href
func setupTestFixture(t *testing.T, href string, opts ...auth.ControllerOption) *testFixture {
	t.Helper()

	t.Setenv("APP_ID", testAppID)
	t.Setenv("SSO_BASE_URL", testBaseURL)

	store := kvstore.New(kvstore.NewInMemory())
	loc := urlutil.NewStaticLocation(href)
	api := apifake.New(testBaseURL)
	api.SSOTokens = &oauth2.TokenSet{
		AccessToken:  mintToken(t, testNow.Add(5*time.Minute)),
		RefreshToken: "sso-refresh",
		IDToken:      "sso-id-token",
		TokenType:    "Bearer",
	}
	api.Ticket = "ticket-1"
	api.AuthTokens = &oauth2.TokenSet{
		AccessToken:  mintToken(t, testNow.Add(5*time.Minute)),
		RefreshToken: "auth-refresh",
		TokenType:    "Bearer",
	}

	opts = append([]auth.ControllerOption{
		auth.WithAPI(api),
		auth.WithNowTime(func() time.Time { return testNow }),
	}, opts...)

	controller, err := auth.NewController(context.Background(), config.New(), store, loc, opts...)
	require.NoError(t, err)

	return &testFixture{
		store:      store,
		loc:        loc,
		api:        api,
		controller: controller,
	}
}

// storeTokens writes token sets directly into the session's slots
func (f *testFixture) storeTokens(t *testing.T, ssoSet, authSet *oauth2.TokenSet) {
	t.Helper()
	sc := f.store.For(f.controller.Session())
	ctx := context.Background()
	if ssoSet != nil {
		require.NoError(t, sc.SetItem(ctx, auth.SSOTokenInfoKey, ssoSet))
	}
	if authSet != nil {
		require.NoError(t, sc.SetItem(ctx, auth.TokenInfoKey, authSet))
	}
}

func (f *testFixture) stored(t *testing.T, key string) (oauth2.TokenSet, bool) {
	t.Helper()
	ts, ok, err := kvstore.GetItem[oauth2.TokenSet](context.Background(), f.store.For(f.controller.Session()), key)
	require.NoError(t, err)
	return ts, ok
}

// mintToken signs an HS256 access token expiring at exp
func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"sub":                "user-1",
		"exp":                exp.Unix(),
		"iat":                testNow.Unix(),
		"preferred_username": "100234",
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}
