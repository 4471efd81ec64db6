package jwt_test

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-sso-client/internal/errors"
	"github.com/jrsteele09/go-sso-client/token/jwt"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("any-key"))
	require.NoError(t, err)
	return tok
}

func TestDecode(t *testing.T) {
	exp := time.Now().Add(5 * time.Minute).Unix()
	raw := signed(t, jwtlib.MapClaims{
		"sub":                "user-1",
		"exp":                exp,
		"name":               "Li Lei",
		"preferred_username": "100234",
		"azp":                "crm-web",
		"realm_access":       map[string]any{"roles": []string{"offline_access"}},
		"resource_access": map[string]any{
			"account": map[string]any{"roles": []string{"view-profile"}},
		},
		"authorization": map[string]any{
			"permissions": []map[string]any{{"rsid": "r1", "rsname": "orders", "scopes": []string{"read"}}},
		},
	})

	claims, err := jwt.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, exp, claims.ExpiresAtUnix())
	require.Equal(t, "Li Lei", claims.Name)
	require.Equal(t, "100234", claims.PreferredUsername)
	require.Equal(t, "crm-web", claims.AuthorizedBy)
	require.Equal(t, []string{"offline_access", "view-profile"}, claims.Roles())
	require.True(t, claims.HasPermission("orders"))
	require.False(t, claims.HasPermission("invoices"))
}

func TestDecodeDoesNotVerifySignature(t *testing.T) {
	raw := signed(t, jwtlib.MapClaims{"sub": "user-1"})
	tampered := raw[:len(raw)-4] + "AAAA"

	claims, err := jwt.Decode(tampered)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Zero(t, claims.ExpiresAtUnix())
}

func TestDecodeReadsOnlyThePayload(t *testing.T) {
	body, err := json.Marshal(map[string]any{"sub": "user-1", "exp": 1767225600})
	require.NoError(t, err)
	payload := base64.RawURLEncoding.EncodeToString(body)

	for name, header := range map[string]string{
		"header without alg": base64.RawURLEncoding.EncodeToString([]byte(`{"typ":"JWT"}`)),
		"header not b64":     "!!!",
		"empty header":       "",
	} {
		t.Run(name, func(t *testing.T) {
			claims, err := jwt.Decode(header + "." + payload + ".sig")
			require.NoError(t, err)
			require.Equal(t, "user-1", claims.Subject)
			require.Equal(t, int64(1767225600), claims.ExpiresAtUnix())
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	for name, raw := range map[string]string{
		"empty":            "",
		"one segment":      "abc",
		"four segments":    "a.b.c.d",
		"payload not b64":  "eyJhbGciOiJIUzI1NiJ9.!!!.sig",
		"payload not json": "eyJhbGciOiJIUzI1NiJ9.bm90LWpzb24.sig",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := jwt.Decode(raw)
			require.Error(t, err)
			require.True(t, errors.Is(err, errors.ErrTokenDecode))
		})
	}
}
