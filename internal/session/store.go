package session

import (
	"sort"
	"sync"
)

// Store is the exclusive owner of all engagement sessions, keyed by
// session id. Sessions are created lazily on first contact and live for
// the process lifetime; there is no eviction. Get-or-create is atomic so
// concurrent first contacts for the same id cannot double-initialize.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session for id, creating it on first contact.
// The returned session carries its own lock; callers serialize turns by
// holding it for the duration of the turn.
func (st *Store) GetOrCreate(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[id]; ok {
		return s
	}
	s := newSession(id)
	st.sessions[id] = s
	return s
}

// Get returns the session for id if it exists.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Len reports how many sessions are live.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// IDs returns all live session ids, sorted for stable listings.
func (st *Store) IDs() []string {
	st.mu.Lock()
	defer st.mu.Unlock()

	ids := make([]string, 0, len(st.sessions))
	for id := range st.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
