package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-sso-client/auth"
	"github.com/jrsteele09/go-sso-client/token/jwt"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyClaims stores the decoded claims of the stored access token
const ContextKeyClaims ContextKey = "claims"

// RequireToken rejects API requests with 401 unless the session holds a
// decodable access token. Undecodable tokens count as unauthenticated.
func (s *Server) RequireToken() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, err := auth.DecodedToken(r.Context(), s.controller.Store(), s.controller.Session())
			if err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

func claimsFromContext(ctx context.Context) *jwt.Claims {
	claims, _ := ctx.Value(ContextKeyClaims).(*jwt.Claims)
	return claims
}
