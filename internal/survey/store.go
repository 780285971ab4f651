package survey

import (
	"sync"

	"fleet-survey-bot/internal/i18n"
)

// Store keeps in-progress sessions keyed by user id. Purely in-memory:
// a process restart loses incomplete surveys. Single-process by design;
// swapping the backing store is the extension point for multi-process
// deployments, the walker never needs to change.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Start creates a fresh session for userID at cursor 0, replacing any
// previous one.
func (st *Store) Start(userID int64, locale i18n.Locale) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := newSession(userID, locale)
	st.sessions[userID] = s
	return s
}

// Get returns the session for userID, or nil when the user has none.
func (st *Store) Get(userID int64) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[userID]
}

// Reset clears progress of an existing session keeping its locale, creating
// the session if needed. Used by the start-survey button.
func (st *Store) Reset(userID int64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	locale := i18n.Locale("")
	if prev, ok := st.sessions[userID]; ok {
		locale = prev.Locale
	}
	s := newSession(userID, locale)
	st.sessions[userID] = s
	return s
}

// Delete destroys userID's session unconditionally.
func (st *Store) Delete(userID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, userID)
}

// Len reports the number of in-progress sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
