package assistant

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/upliftr/upliftr/internal/llm"
)

// Role constants for the visible message log.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Message is one entry in the visible message log.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Session holds all per-conversation state. It lives for the lifetime of
// the chat widget (one WebSocket connection, or one HTTP session until idle
// eviction) and is never persisted.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	updatedAt time.Time
	messages  []Message  // visible log, append-only
	history   []llm.Turn // gateway-facing history
	awaiting  bool       // a gateway call is outstanding
	booked    bool       // monotone: never cleared once set
}

// NewSession creates a session seeded with the welcome message.
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		updatedAt: now,
		messages:  []Message{{Role: RoleBot, Text: welcomeMessage}},
	}
}

// Messages returns a copy of the visible message log.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// History returns a copy of the gateway-facing history.
func (s *Session) History() []llm.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.Turn, len(s.history))
	copy(out, s.history)
	return out
}

// Booked reports whether an enquiry has been booked in this session.
func (s *Session) Booked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.booked
}

// Awaiting reports whether a gateway call is outstanding.
func (s *Session) Awaiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaiting
}

// UpdatedAt returns the time of the last activity on the session.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

func (s *Session) touch() {
	s.updatedAt = time.Now()
}

// Registry tracks live chat sessions for the HTTP transport and evicts
// idle ones. WebSocket sessions live on the connection instead and never
// enter the registry.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	idle     time.Duration
}

// NewRegistry creates a session registry. Sessions untouched for longer
// than idle are evicted by the sweep loop.
func NewRegistry(idle time.Duration) *Registry {
	r := &Registry{
		sessions: make(map[string]*Session),
		idle:     idle,
	}
	if idle > 0 {
		go r.sweepLoop()
	}
	return r
}

func (r *Registry) sweepLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-r.idle)
		r.mu.Lock()
		for id, sess := range r.sessions {
			if sess.UpdatedAt().Before(cutoff) {
				delete(r.sessions, id)
			}
		}
		r.mu.Unlock()
	}
}

// Create registers a new session and returns it.
func (r *Registry) Create() *Session {
	sess := NewSession()
	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()
	return sess
}

// Get returns a session by ID, or nil if unknown or evicted.
func (r *Registry) Get(id string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// Remove discards a session.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
