package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"campusai/models"
	"campusai/storage"
)

// SessionKey is the storage key of the login record
const SessionKey = "campusai_session"

// Default login lifetimes
const (
	DefaultSessionTTL  = 24 * time.Hour
	DefaultRememberTTL = 7 * 24 * time.Hour
)

// ErrMissingUsername is returned by Login when no username is given.
var ErrMissingUsername = errors.New("username is required")

// SessionOption configures a SessionManager
type SessionOption func(*SessionManager)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(m *SessionManager) { m.now = now }
}

// WithSessionTTL sets the lifetime of ordinary and remembered logins.
func WithSessionTTL(ttl, rememberTTL time.Duration) SessionOption {
	return func(m *SessionManager) {
		if ttl > 0 {
			m.ttl = ttl
		}
		if rememberTTL > 0 {
			m.rememberTTL = rememberTTL
		}
	}
}

// SessionManager simulates login. Any username/password pair is accepted;
// the resulting {user, expires} record goes to the durable store when the
// user asks to be remembered and to the ephemeral store otherwise.
type SessionManager struct {
	durable     storage.Store
	ephemeral   storage.Store
	transcripts *TranscriptStore
	now         func() time.Time
	ttl         time.Duration
	rememberTTL time.Duration
}

// NewSessionManager creates a SessionManager. transcripts may be nil.
func NewSessionManager(durable, ephemeral storage.Store, transcripts *TranscriptStore, opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		durable:     durable,
		ephemeral:   ephemeral,
		transcripts: transcripts,
		now:         time.Now,
		ttl:         DefaultSessionTTL,
		rememberTTL: DefaultRememberTTL,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login records a signed-in user for sessionID.
func (m *SessionManager) Login(sessionID string, req models.LoginRequest) (models.UserSession, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return models.UserSession{}, ErrMissingUsername
	}

	ttl := m.ttl
	if req.RememberMe {
		ttl = m.rememberTTL
	}

	sess := models.UserSession{
		User: models.User{
			Username:    username,
			DisplayName: strings.TrimSpace(req.DisplayName),
		},
		Expires: m.now().Add(ttl).UnixMilli(),
	}

	if err := m.Save(sessionID, sess, req.RememberMe); err != nil {
		return models.UserSession{}, err
	}

	log.Printf("User %s logged in (session %s, remember=%v)", username, sessionID, req.RememberMe)
	return sess, nil
}

// Save writes sess to the durable or ephemeral store and removes any record
// from the other one.
func (m *SessionManager) Save(sessionID string, sess models.UserSession, remember bool) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	target, other := m.ephemeral, m.durable
	if remember {
		target, other = m.durable, m.ephemeral
	}

	if err := storage.Scoped(other, sessionID).Remove(SessionKey); err != nil {
		return fmt.Errorf("clear stale session: %w", err)
	}
	if err := storage.Scoped(target, sessionID).Set(SessionKey, string(raw)); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Current returns the valid login for sessionID. Expired or unreadable
// records are deleted and reported as ErrNotLoggedIn.
func (m *SessionManager) Current(sessionID string) (models.UserSession, error) {
	for _, store := range []storage.Store{m.durable, m.ephemeral} {
		scoped := storage.Scoped(store, sessionID)

		raw, ok, err := scoped.Get(SessionKey)
		if err != nil {
			return models.UserSession{}, fmt.Errorf("load session: %w", err)
		}
		if !ok {
			continue
		}

		var sess models.UserSession
		if err := json.Unmarshal([]byte(raw), &sess); err != nil {
			log.Printf("Discarding unreadable session for %s: %v", sessionID, err)
			_ = scoped.Remove(SessionKey)
			continue
		}

		if sess.ExpiredAt(m.now()) {
			log.Printf("Session for %s expired, discarding", sessionID)
			if err := scoped.Remove(SessionKey); err != nil {
				return models.UserSession{}, fmt.Errorf("remove expired session: %w", err)
			}
			continue
		}

		return sess, nil
	}

	return models.UserSession{}, ErrNotLoggedIn
}

// UserName returns the display name of the signed-in user, or "".
func (m *SessionManager) UserName(sessionID string) string {
	sess, err := m.Current(sessionID)
	if err != nil {
		return ""
	}
	return sess.User.Name()
}

// Logout removes the login record and clears the session transcript.
func (m *SessionManager) Logout(sessionID string) error {
	for _, store := range []storage.Store{m.durable, m.ephemeral} {
		if err := storage.Scoped(store, sessionID).Remove(SessionKey); err != nil {
			return fmt.Errorf("remove session: %w", err)
		}
	}
	if m.transcripts != nil {
		m.transcripts.Clear(sessionID)
	}
	return nil
}
