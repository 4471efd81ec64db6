package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jrsteele09/go-sso-client/auth"
	"github.com/jrsteele09/go-sso-client/internal/errors"
	"github.com/jrsteele09/go-sso-client/ssoapi"
	"github.com/jrsteele09/go-sso-client/urlutil"
	"github.com/rs/zerolog/log"
)

// SessionResponse describes the stored session
type SessionResponse struct {
	AppID     string    `json:"app_id"`
	Subject   string    `json:"sub"`
	Username  string    `json:"preferred_username,omitempty"`
	Name      string    `json:"name,omitempty"`
	Roles     []string  `json:"roles,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProfileResponse is the organisational profile of the current user
type ProfileResponse struct {
	Subject string `json:"sub"`
	Branch  string `json:"branch"`
}

// RefreshResponse reports whether the token sets were refreshed
type RefreshResponse struct {
	Refreshed bool `json:"refreshed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// IndexHandler is the landing page of the app and the redirect_uri of the
// broker. A stored session is reported as is; otherwise the SSO flow runs at
// the requested URL and its outcome is performed.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, _ := urlutil.GetURLParams(requestURL(r))
		if !auth.IsCallback(params) {
			if _, err := auth.DecodedToken(r.Context(), s.controller.Store(), s.controller.Session()); err == nil {
				s.SessionHandler()(w, r)
				return
			}
		}

		ctl := s.controller.At(urlutil.NewStaticLocation(requestURL(r)))
		// failures come back as an OutcomeError carrying the same error
		out, _ := ctl.SSOLogin(r.Context())
		s.perform(w, r, out)
	}
}

// LoginHandler always starts a new login redirect
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctl := s.controller.At(urlutil.NewStaticLocation(s.config.GetPublicURL() + RouteIndex))
		out, _ := ctl.Login(r.Context())
		s.perform(w, r, out)
	}
}

// LogoutHandler clears the session and navigates to the broker's end-session
// page, which returns to the landing page
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctl := s.controller.At(urlutil.NewStaticLocation(s.config.GetPublicURL() + RouteIndex))
		out, _ := ctl.Logout(r.Context())
		s.perform(w, r, out)
	}
}

// SessionHandler returns the claims of the stored access token
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r.Context())
		if claims == nil {
			var err error
			claims, err = auth.DecodedToken(r.Context(), s.controller.Store(), s.controller.Session())
			if err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
		}
		res := SessionResponse{
			AppID:    s.controller.Session().AppID(),
			Subject:  claims.Subject,
			Username: claims.PreferredUsername,
			Name:     claims.Name,
			Roles:    claims.Roles(),
		}
		if claims.ExpiresAt != nil {
			res.ExpiresAt = claims.ExpiresAt.Time.UTC()
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// ProfileHandler resolves the branch company of the current user
func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branch, err := s.controller.GetUserBranchGroup(r.Context())
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		res := ProfileResponse{Branch: branch}
		if claims := claimsFromContext(r.Context()); claims != nil {
			res.Subject = claims.Subject
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// CompaniesHandler lists every branch company
func (s *Server) CompaniesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companies, err := s.controller.GetCompanyList(r.Context())
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		if companies == nil {
			companies = []ssoapi.CompanyItem{}
		}
		writeJSON(w, http.StatusOK, companies)
	}
}

// RefreshHandler refreshes the token sets; ?force=true skips the expiry check
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		force := r.URL.Query().Get("force") == "true"
		refreshed, err := s.controller.RefreshToken(r.Context(), force)
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, RefreshResponse{Refreshed: refreshed})
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// perform carries out an outcome. The in-place rewrite of a successful
// callback becomes a 303 to the clean URL so a reload does not resubmit the
// callback parameters.
func (s *Server) perform(w http.ResponseWriter, r *http.Request, out auth.Outcome) {
	switch out.Kind {
	case auth.OutcomeRedirect:
		if out.Err != nil {
			log.Warn().Err(out.Err).Str("state", out.State.String()).Msg("sso flow restarted")
		}
		http.Redirect(w, r, out.URL, http.StatusFound)
	case auth.OutcomeAuthenticated:
		http.Redirect(w, r, out.CleanURL, http.StatusSeeOther)
	default:
		log.Err(out.Err).Str("state", out.State.String()).Msg("sso flow failed")
		writeError(w, http.StatusInternalServerError, "sso flow failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("writing response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeUpstreamError maps gateway and token errors to host responses
func writeUpstreamError(w http.ResponseWriter, err error) {
	var httpErr *ssoapi.HTTPError
	switch {
	case errors.Is(err, errors.ErrTokenNotFound), errors.Is(err, errors.ErrTokenDecode), errors.Is(err, errors.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "not authenticated")
	case errors.As(err, &httpErr):
		log.Err(err).Int("status", httpErr.StatusCode).Msg("sso gateway error")
		writeError(w, http.StatusBadGateway, "sso gateway error")
	default:
		log.Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
