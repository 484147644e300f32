// internal/store/memory.go
//
// In-memory session store for live puzzles.
// A Session pairs one *puzzle.Puzzle with the lock that serialises its gestures:
// the puzzle engine itself is single-threaded, while HTTP handlers and websocket
// readers are not.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent lookups, exclusive writes).
//   - State is lost when the process restarts (puzzles are not persisted).
//   - Idle sessions can be evicted with Prune.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordsearch/internal/puzzle"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("not found")

// Session is a live puzzle plus ownership and bookkeeping.
type Session struct {
	mu sync.Mutex

	Puzzle      *puzzle.Puzzle
	UserID      string // empty for guests
	AnonymousID string
	DailyDate   string // YYYY-MM-DD for daily puzzles, empty otherwise
	StartedAt   time.Time
	lastSeen    time.Time
}

// NewSession wraps p with a fresh start time.
func NewSession(p *puzzle.Puzzle) *Session {
	now := time.Now()
	return &Session{Puzzle: p, StartedAt: now, lastSeen: now}
}

// ID is the puzzle's ID.
func (s *Session) ID() string { return s.Puzzle.ID }

// Owner is the user ID, or the anonymous ID for guests.
func (s *Session) Owner() string {
	if s.UserID != "" {
		return s.UserID
	}
	return s.AnonymousID
}

// Do runs fn with exclusive access to the session's puzzle.
func (s *Session) Do(fn func(p *puzzle.Puzzle)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	fn(s.Puzzle)
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Store defines the persistence interface for live sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by puzzle ID.
	// Returns ErrNotFound if the session is unknown.
	Get(ctx context.Context, id string) (*Session, error)

	// Prune drops sessions idle for longer than maxIdle and reports how many went.
	Prune(ctx context.Context, maxIdle time.Duration) int
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Prune(ctx context.Context, maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
