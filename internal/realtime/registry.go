// Package realtime tracks live client sessions and pushes notifications to
// them.
package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"project-catalog/internal/metrics"
)

// Channel is a live connection to one client. Implementations must be
// pointer types so the registry can compare handles, and Send must return
// once ctx is done: the deliverer abandons a timed-out Send and never waits
// on it again.
type Channel interface {
	Send(ctx context.Context, payload []byte) error
}

// Registry maps a recipient to its single active channel. It does not own
// the channels: it never closes them, the connection layer does.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]Channel
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]Channel)}
}

// Register makes ch the recipient's channel, replacing any previous one.
func (r *Registry) Register(recipientID uuid.UUID, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[recipientID] = ch
	metrics.LiveSessions.Set(float64(len(r.sessions)))
}

func (r *Registry) Unregister(recipientID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, recipientID)
	metrics.LiveSessions.Set(float64(len(r.sessions)))
}

// UnregisterChannel removes every entry that points at ch.
func (r *Registry) UnregisterChannel(ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, registered := range r.sessions {
		if registered == ch {
			delete(r.sessions, id)
		}
	}
	metrics.LiveSessions.Set(float64(len(r.sessions)))
}

// RemoveIf removes the recipient's entry only while it still points at ch,
// so a failed send on a stale channel cannot evict a newer registration.
func (r *Registry) RemoveIf(recipientID uuid.UUID, ch Channel) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if registered, ok := r.sessions[recipientID]; ok && registered == ch {
		delete(r.sessions, recipientID)
		metrics.LiveSessions.Set(float64(len(r.sessions)))
		return true
	}
	return false
}

func (r *Registry) Lookup(recipientID uuid.UUID) (Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.sessions[recipientID]
	return ch, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
