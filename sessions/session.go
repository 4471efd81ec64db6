package sessions

import (
	"strings"

	"github.com/jrsteele09/go-sso-client/internal/errors"
)

// AppIDKey is the global, unscoped key naming the active session.
const AppIDKey = "APPID"

// Session is an explicit handle on one application's SSO session.
// Every stored key belonging to the session is prefixed with its application
// identifier. The zero value represents "no session".
type Session struct {
	appID string
}

// New returns a Session for the given application identifier.
func New(appID string) (Session, error) {
	appID = strings.TrimSpace(appID)
	if appID == "" {
		return Session{}, errors.Wrapf(errors.ErrInvalidSession, "[sessions New] empty application identifier")
	}
	return Session{appID: appID}, nil
}

// AppID returns the application identifier (the OAuth client_id).
func (s Session) AppID() string {
	return s.appID
}

// IsZero reports whether s is the "no session" value.
func (s Session) IsZero() bool {
	return s.appID == ""
}

// Prefix is the namespace prefix shared by every key of the session.
func (s Session) Prefix() string {
	return s.appID + "-"
}

// Key namespaces key under the session: {appID}-{key}.
func (s Session) Key(key string) string {
	return s.Prefix() + key
}

func (s Session) String() string {
	return s.appID
}
