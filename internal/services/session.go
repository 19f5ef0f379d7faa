package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/fondago/fonda-backend/internal/models"
	"github.com/fondago/fonda-backend/internal/storage"
	"github.com/fondago/fonda-backend/internal/utils"
)

// DefaultSessionTTL is how long a menu-browsing session stays valid.
// ExpiresAt is fixed at creation and never silently extended.
const DefaultSessionTTL = time.Hour

// SessionService manages short-lived menu-browsing sessions
type SessionService struct {
	store storage.Store
	ttl   time.Duration
}

// NewSessionService creates a session service with the given TTL.
// A zero ttl falls back to DefaultSessionTTL.
func NewSessionService(store storage.Store, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{
		store: store,
		ttl:   ttl,
	}
}

// TTL returns the configured session lifetime.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Create mints a new session for a phone number
func (s *SessionService) Create(phone string) (*models.Session, error) {
	token, err := utils.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &models.Session{
		Token:     token,
		Phone:     models.NormalizePhone(phone),
		State:     models.SessionStarted,
		ExpiresAt: now.Add(s.ttl),
	}
	session.CreatedAt = now

	return s.store.CreateSession(session)
}

// GetByToken looks up a session by its bearer token
func (s *SessionService) GetByToken(token string) (*models.Session, error) {
	return s.store.GetSessionByToken(token)
}

// SessionUpdate carries the optional fields of a PATCH. Nil fields are
// left untouched.
type SessionUpdate struct {
	State   *models.SessionState
	OrderID *uint
}

// UpdateByToken merges the given fields into the session and refreshes
// UpdatedAt. Sessions are keyed by token, not phone - a customer can
// accumulate several sessions over repeated orders.
func (s *SessionService) UpdateByToken(token string, update SessionUpdate) (*models.Session, error) {
	session, err := s.store.GetSessionByToken(token)
	if err != nil {
		return nil, err
	}

	if update.State != nil {
		if !update.State.Valid() {
			return nil, fmt.Errorf("invalid session state: %s", *update.State)
		}
		session.State = *update.State
	}
	if update.OrderID != nil {
		session.OrderID = update.OrderID
	}

	if err := s.store.UpdateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteByToken removes a session. Deleting an absent token is not an
// error.
func (s *SessionService) DeleteByToken(token string) error {
	err := s.store.DeleteSessionByToken(token)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return err
}

// CleanupExpired removes every session whose expiry is at or before now
// and returns how many were removed. Safe to run concurrently with live
// traffic.
func (s *SessionService) CleanupExpired(now time.Time) (int64, error) {
	return s.store.DeleteExpiredSessions(now)
}
