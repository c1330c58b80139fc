package hub

import "sync"

// Registry tracks which websocket session currently represents each user.
// At most one session is recorded per user: a reconnect overwrites the
// previous binding (last connection wins), and the stale session's late
// disconnect must not evict the new one. The registry is in-memory only;
// on process restart every user is offline until they reconnect.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]string // userID -> sessionID
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]string),
	}
}

// Bind records sessionID as the active session for userID, overwriting any
// previous binding. Binding the same pair twice is a no-op.
func (r *Registry) Bind(userID, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[userID] = sessionID
}

// Unbind removes the binding whose value equals sessionID and returns the
// userID it belonged to. If the user has since reconnected on a newer
// session, the mapping is left untouched and ok is false.
//
// The lookup walks every binding. With one session per online user the
// map stays small; a reverse index only becomes worthwhile if sessions
// ever outnumber users (multi-device).
func (r *Registry) Unbind(sessionID string) (userID string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for uid, sid := range r.sessions {
		if sid == sessionID {
			delete(r.sessions, uid)
			return uid, true
		}
	}
	return "", false
}

// Resolve returns the active session for userID, if any.
func (r *Registry) Resolve(userID string) (sessionID string, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessionID, ok = r.sessions[userID]
	return sessionID, ok
}

// OnlineUsers returns a snapshot of all currently bound user IDs.
func (r *Registry) OnlineUsers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]string, 0, len(r.sessions))
	for uid := range r.sessions {
		users = append(users, uid)
	}
	return users
}

// Len returns the number of bound users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
