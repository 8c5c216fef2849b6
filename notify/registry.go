package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jobportal/backend/logger"
	"github.com/jobportal/backend/metrics"
)

// Event types pushed to users
const (
	TypeConversationReviewed = "CONVERSATION_REVIEWED"
)

// DefaultBuffer is the per-user queue length
const DefaultBuffer = 16

// Event is a notification pushed over the stream
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewEvent stamps an event with an id and the current time
func NewEvent(eventType, title, message string) Event {
	return Event{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Type:      eventType,
		CreatedAt: time.Now().UTC(),
	}
}

type subscriber struct {
	ch chan Event
}

// Registry owns one outbound channel per connected user. A user that
// connects again replaces the previous stream.
type Registry struct {
	mu     sync.RWMutex
	subs   map[string]*subscriber
	buffer int
}

// NewRegistry creates an empty registry
func NewRegistry(buffer int) *Registry {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Registry{
		subs:   make(map[string]*subscriber),
		buffer: buffer,
	}
}

// Register opens the stream for a user. The returned func removes it and
// must be called when the connection closes.
func (r *Registry) Register(userID string) (<-chan Event, func()) {
	sub := &subscriber{ch: make(chan Event, r.buffer)}

	r.mu.Lock()
	if old, ok := r.subs[userID]; ok {
		close(old.ch)
	}
	r.subs[userID] = sub
	r.mu.Unlock()

	return sub.ch, func() { r.remove(userID, sub) }
}

// Send queues an event for a user. It reports false when the user is not
// connected or was not draining the stream; in the latter case the stream
// is dropped.
func (r *Registry) Send(userID string, evt Event) bool {
	r.mu.RLock()
	sub, ok := r.subs[userID]
	if !ok {
		r.mu.RUnlock()
		return false
	}
	select {
	case sub.ch <- evt:
		r.mu.RUnlock()
		return true
	default:
	}
	r.mu.RUnlock()

	metrics.NotificationsDroppedTotal.Inc()
	log := logger.Component("Notify")
	log.Warn().Str("user_id", userID).Str("type", evt.Type).Msg("stream full, dropping subscriber")
	r.remove(userID, sub)
	return false
}

// Connected reports whether a user currently has an open stream
func (r *Registry) Connected(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.subs[userID]
	return ok
}

// Len returns the number of connected users
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}

// remove drops sub if it is still the user's current stream
func (r *Registry) remove(userID string, sub *subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.subs[userID]; ok && current == sub {
		delete(r.subs, userID)
		close(sub.ch)
	}
}
