package server

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ironsheep/image-editor-mcp/internal/editor"
)

// registry holds the open editing sessions keyed by session id.
//
// registry is safe for concurrent use. Each session serializes its own
// edits; the registry lock only guards the map.
type registry struct {
	mu       sync.RWMutex
	sessions map[string]*editor.Session
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]*editor.Session)}
}

// Add stores sess under its id.
func (r *registry) Add(sess *editor.Session) {
	r.mu.Lock()
	r.sessions[sess.ID()] = sess
	r.mu.Unlock()
}

// Get returns the session stored under id.
func (r *registry) Get(id string) (*editor.Session, error) {
	if id == "" {
		return nil, fmt.Errorf("session_id is required")
	}
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown session: %s", id)
	}
	return sess, nil
}

// Remove drops the session stored under id and reports whether it existed.
func (r *registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Len returns the number of open sessions.
func (r *registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// IDs returns the open session ids in sorted order.
func (r *registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
