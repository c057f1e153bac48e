package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/printflow/printflow-logistics-api/models"
	"github.com/printflow/printflow-logistics-api/storage"
)

// SessionCookieName is the cookie that carries the session id.
const SessionCookieName = "printflow_session"

// SessionService creates and resolves server-side login sessions. Session
// rows live in the sessions table with a uuid sid and an expiry timestamp.
type SessionService struct {
	store storage.Store
	ttl   time.Duration
}

// NewSessionService creates a session service with the given session lifetime.
func NewSessionService(store storage.Store, ttl time.Duration) *SessionService {
	return &SessionService{store: store, ttl: ttl}
}

// sessionData is the serialized payload stored alongside the session row.
type sessionData struct {
	UserID   string    `json:"userId"`
	IssuedAt time.Time `json:"issuedAt"`
}

// Create opens a new session for the user and returns it. The caller is
// responsible for setting the cookie on the response.
func (s *SessionService) Create(user *models.User) (*models.Session, error) {
	data, err := json.Marshal(sessionData{
		UserID:   user.ID,
		IssuedAt: time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize session data: %w", err)
	}

	session := &models.Session{
		SID:       uuid.NewString(),
		UserID:    user.ID,
		Data:      string(data),
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.store.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Resolve looks up the session and its user. Returns nil, nil when the sid
// is unknown, expired, or the user row is gone.
func (s *SessionService) Resolve(sid string) (*models.User, error) {
	if sid == "" {
		return nil, nil
	}
	session, err := s.store.GetSession(sid)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return s.store.GetUser(session.UserID)
}

// Destroy ends the session. Destroying an unknown sid is not an error.
func (s *SessionService) Destroy(sid string) error {
	if sid == "" {
		return nil
	}
	return s.store.DeleteSession(sid)
}

// TTL returns the configured session lifetime.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}
