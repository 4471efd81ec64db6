package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jrsteele09/go-sso-client/internal/errors"
	"github.com/jrsteele09/go-sso-client/sessions"
	"github.com/rs/zerolog/log"
)

// Store namespaces a Backend by application identifier. The active
// identifier lives in the backend under the unscoped sessions.AppIDKey slot.
type Store struct {
	backend Backend
}

// New creates a Store over backend
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Backend returns the raw backend
func (s *Store) Backend() Backend {
	return s.backend
}

// Activate makes sess the active session of the store
func (s *Store) Activate(ctx context.Context, sess sessions.Session) error {
	if sess.IsZero() {
		return errors.ErrSessionNotInitialized
	}
	if err := s.backend.Set(ctx, sessions.AppIDKey, sess.AppID()); err != nil {
		return errors.Wrapf(err, "[Store Activate] storing active session")
	}
	return nil
}

// Active reads the active session at call time
func (s *Store) Active(ctx context.Context) (sessions.Session, error) {
	appID, ok, err := s.backend.Get(ctx, sessions.AppIDKey)
	if err != nil {
		return sessions.Session{}, errors.Wrapf(err, "[Store Active] reading active session")
	}
	if !ok || appID == "" {
		return sessions.Session{}, errors.ErrSessionNotInitialized
	}
	return sessions.New(appID)
}

// For returns the view of the store scoped to sess
func (s *Store) For(sess sessions.Session) Scoped {
	return Scoped{backend: s.backend, session: sess}
}

// ActiveScoped resolves the active session and returns its scoped view.
// Changing the active slot changes the namespace of later calls.
func (s *Store) ActiveScoped(ctx context.Context) (Scoped, error) {
	sess, err := s.Active(ctx)
	if err != nil {
		return Scoped{}, err
	}
	return s.For(sess), nil
}

// ClearAll wipes the entire backend, including other sessions and the
// active slot.
func (s *Store) ClearAll(ctx context.Context) error {
	return s.backend.Flush(ctx)
}

// Close closes the backend
func (s *Store) Close() error {
	return s.backend.Close()
}

// Scoped is a Store view where every key is stored as {appID}-{key}
type Scoped struct {
	backend Backend
	session sessions.Session
}

// Session returns the session the view is scoped to
func (sc Scoped) Session() sessions.Session {
	return sc.session
}

// SetItem stores value under key. Strings and other primitives are stored
// as-is, everything else is JSON encoded.
func (sc Scoped) SetItem(ctx context.Context, key string, value any) error {
	if sc.session.IsZero() || sc.backend == nil {
		return errors.ErrSessionNotInitialized
	}
	encoded, err := encodeValue(value)
	if err != nil {
		return errors.Wrapf(err, "[Scoped SetItem] encoding %q", key)
	}
	return sc.backend.Set(ctx, sc.session.Key(key), encoded)
}

// GetRaw returns the stored string without decoding
func (sc Scoped) GetRaw(ctx context.Context, key string) (string, bool, error) {
	if sc.session.IsZero() || sc.backend == nil {
		return "", false, nil
	}
	return sc.backend.Get(ctx, sc.session.Key(key))
}

// RemoveItem deletes key
func (sc Scoped) RemoveItem(ctx context.Context, key string) error {
	if sc.session.IsZero() || sc.backend == nil {
		return nil
	}
	return sc.backend.Delete(ctx, sc.session.Key(key))
}

// Clear removes every key of the session and nothing else
func (sc Scoped) Clear(ctx context.Context) error {
	if sc.session.IsZero() || sc.backend == nil {
		return nil
	}
	keys, err := sc.backend.Keys(ctx, sc.session.Prefix())
	if err != nil {
		return errors.Wrapf(err, "[Scoped Clear] listing keys")
	}
	for _, k := range keys {
		if err := sc.backend.Delete(ctx, k); err != nil {
			return errors.Wrapf(err, "[Scoped Clear] deleting %q", k)
		}
	}
	return nil
}

// GetItem reads key and decodes it as JSON into T. When decoding fails and T
// is a string the raw value is returned instead. Missing, empty or
// undecodable values report found == false.
func GetItem[T any](ctx context.Context, sc Scoped, key string) (T, bool, error) {
	var out T

	raw, ok, err := sc.GetRaw(ctx, key)
	if err != nil {
		return out, false, err
	}
	if !ok || raw == "" {
		return out, false, nil
	}

	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		if p, isString := any(&out).(*string); isString {
			*p = raw
			return out, true, nil
		}
		log.Debug().Err(err).Str("key", key).Msg("stored value is not decodable")
		return out, false, nil
	}
	return out, true, nil
}

// GetString is GetItem[string]
func GetString(ctx context.Context, sc Scoped, key string) (string, bool, error) {
	return GetItem[string](ctx, sc, key)
}

func encodeValue(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
