package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Vamap91/carglass-assistente/internal/models"
)

// SessionManager owns all conversation sessions. Web sessions are
// keyed by an opaque id carried in a cookie; WhatsApp sessions are
// additionally indexed by phone number so the webhook can find them.
type SessionManager struct {
	mu         sync.RWMutex
	sessions   map[string]*models.Session
	phoneIndex map[string]string // phone -> session id
	timeout    time.Duration
}

// NewSessionManager creates a session manager with the given idle
// timeout (sliding expiry).
func NewSessionManager(timeout time.Duration) *SessionManager {
	return &SessionManager{
		sessions:   make(map[string]*models.Session),
		phoneIndex: make(map[string]string),
		timeout:    timeout,
	}
}

// CreateSession creates a fresh unidentified session seeded with the
// platform's welcome message. phoneNumber is only meaningful for
// WhatsApp sessions.
func (sm *SessionManager) CreateSession(platform models.Platform, phoneNumber string) *models.Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := time.Now()
	session := &models.Session{
		ID:           uuid.NewString(),
		Platform:     platform,
		PhoneNumber:  phoneNumber,
		CreatedAt:    now,
		LastActivity: now,
		Messages:     []models.Message{},
	}
	session.AddMessage("assistant", WelcomeMessage(platform))

	sm.sessions[session.ID] = session
	if phoneNumber != "" {
		sm.phoneIndex[phoneNumber] = session.ID
	}

	sm.evictExpiredLocked()
	return session
}

// GetSession returns the live session for id, refreshing its activity
// timestamp. Expired sessions are evicted and reported as absent.
func (sm *SessionManager) GetSession(id string) (*models.Session, bool) {
	if id == "" {
		return nil, false
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[id]
	if !exists {
		return nil, false
	}
	if session.ExpiredSince(time.Now(), sm.timeout) {
		sm.removeLocked(session)
		return nil, false
	}

	session.LastActivity = time.Now()
	return session, true
}

// GetOrCreateWhatsAppSession finds the session bound to phoneNumber
// or starts a new one.
func (sm *SessionManager) GetOrCreateWhatsAppSession(phoneNumber string) *models.Session {
	sm.mu.RLock()
	id := sm.phoneIndex[phoneNumber]
	sm.mu.RUnlock()

	if session, ok := sm.GetSession(id); ok {
		return session
	}
	return sm.CreateSession(models.PlatformWhatsApp, phoneNumber)
}

// RemoveSession drops a session and its phone index entry.
func (sm *SessionManager) RemoveSession(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if session, exists := sm.sessions[id]; exists {
		sm.removeLocked(session)
	}
}

// EvictExpired sweeps all idle sessions and returns how many were
// dropped. Called by the cleanup job.
func (sm *SessionManager) EvictExpired() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.evictExpiredLocked()
}

// Count returns the number of live sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// CountByPlatform returns the number of live sessions per platform.
func (sm *SessionManager) CountByPlatform(platform models.Platform) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	n := 0
	for _, session := range sm.sessions {
		if session.Platform == platform {
			n++
		}
	}
	return n
}

func (sm *SessionManager) evictExpiredLocked() int {
	now := time.Now()
	removed := 0
	for _, session := range sm.sessions {
		if session.ExpiredSince(now, sm.timeout) {
			sm.removeLocked(session)
			removed++
		}
	}
	return removed
}

func (sm *SessionManager) removeLocked(session *models.Session) {
	delete(sm.sessions, session.ID)
	if session.PhoneNumber != "" {
		delete(sm.phoneIndex, session.PhoneNumber)
	}
}
