// Package session owns the per-browser-session access gates.
//
// The server never keeps a process-wide authenticated flag. Each session
// id maps to its own *gate.Gate, created unauthenticated, so a login in one
// browser has no effect on any other.
package session

import (
	"sync"

	"github.com/fyrsmithlabs/socialintel/internal/config"
	"github.com/fyrsmithlabs/socialintel/internal/gate"
	"github.com/google/uuid"
)

// DefaultMaxSessions bounds the store when no option overrides it.
const DefaultMaxSessions = config.DefaultMaxSessions

// Store maps session ids to gates. Safe for concurrent use.
type Store struct {
	secret      config.Secret
	maxSessions int

	mu    sync.Mutex
	gates map[string]*gate.Gate
	order []string // insertion order, oldest first
}

// Option configures a Store.
type Option func(*Store)

// WithMaxSessions caps the number of live sessions. When the cap is
// reached the oldest session is dropped to make room. Values below 1 are
// ignored.
func WithMaxSessions(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// NewStore creates a store whose gates all guard secret.
func NewStore(secret config.Secret, opts ...Option) *Store {
	s := &Store{
		secret:      secret,
		maxSessions: DefaultMaxSessions,
		gates:       make(map[string]*gate.Gate),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new session with an unauthenticated gate.
func (s *Store) Create() (string, *gate.Gate) {
	g := s.NewGate()
	return s.Adopt(g), g
}

// NewGate returns an unauthenticated gate for this store's secret without
// registering a session. Anonymous login attempts run against such a gate
// so a denied attempt never touches the store.
func (s *Store) NewGate() *gate.Gate {
	return gate.New(s.secret)
}

// Adopt registers g under a new session id. When the store is full the
// oldest session is dropped to make room.
func (s *Store) Adopt(g *gate.Gate) string {
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.gates) >= s.maxSessions && len(s.order) > 0 {
		s.evictOldestLocked()
	}
	s.gates[id] = g
	s.order = append(s.order, id)
	return id
}

// Get returns the gate for id.
func (s *Store) Get(id string) (*gate.Gate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gates[id]
	return g, ok
}

// Delete ends a session. Unknown ids are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.gates[id]; !ok {
		return
	}
	delete(s.gates, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.gates)
}

func (s *Store) evictOldestLocked() {
	oldest := s.order[0]
	s.order = s.order[1:]
	delete(s.gates, oldest)
}
