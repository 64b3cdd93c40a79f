// Package session keeps each browser session's tool list in memory. Nothing is
// written to disk; idle sessions are dropped by Sweep.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/toolcost/internal/consumption"
)

// Entry is one tool the user added to the session.
type Entry struct {
	ID      string
	Tool    consumption.Tool
	AddedAt time.Time
}

// State is a snapshot of one session. Mutating it does not affect the store.
type State struct {
	Basis   consumption.Basis
	Entries []Entry
	// ReferenceID and AlternativeID select the two entries shown in the saving gauge.
	ReferenceID   string
	AlternativeID string
}

// Tools returns the session's tools in insertion order.
func (s State) Tools() []consumption.Tool {
	tools := make([]consumption.Tool, len(s.Entries))
	for i, e := range s.Entries {
		tools[i] = e.Tool
	}
	return tools
}

// IndexOf returns the position of the entry with the given id, or -1.
func (s State) IndexOf(entryID string) int {
	if entryID == "" {
		return -1
	}
	for i, e := range s.Entries {
		if e.ID == entryID {
			return i
		}
	}
	return -1
}

type session struct {
	state    State
	lastSeen time.Time
}

// Store maps session ids to their state. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	defaults consumption.Basis
	now      func() time.Time
}

// NewStore creates a store whose new sessions start from defaults. A ttl of 0
// keeps sessions until the process exits.
func NewStore(ttl time.Duration, defaults consumption.Basis) *Store {
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		defaults: defaults,
		now:      time.Now,
	}
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// Get returns a snapshot of the session, creating it when unknown.
func (s *Store) Get(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshot(s.touch(id).state)
}

// Add appends a tool and returns the stored entry.
func (s *Store) Add(id string, tool consumption.Tool) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.touch(id)
	entry := Entry{ID: uuid.NewString(), Tool: tool, AddedAt: s.now()}
	sess.state.Entries = append(sess.state.Entries, entry)
	return entry
}

// Remove deletes an entry and reports whether it existed.
func (s *Store) Remove(id, entryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.touch(id)
	idx := sess.state.IndexOf(entryID)
	if idx < 0 {
		return false
	}
	sess.state.Entries = append(sess.state.Entries[:idx], sess.state.Entries[idx+1:]...)
	if sess.state.ReferenceID == entryID {
		sess.state.ReferenceID = ""
	}
	if sess.state.AlternativeID == entryID {
		sess.state.AlternativeID = ""
	}
	return true
}

// Clear drops every entry but keeps the basis.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.touch(id)
	sess.state.Entries = nil
	sess.state.ReferenceID = ""
	sess.state.AlternativeID = ""
}

// SetBasis replaces the session's distance basis.
func (s *Store) SetBasis(id string, basis consumption.Basis) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch(id).state.Basis = basis
}

// SetComparison selects the reference and alternative entries. Unknown ids are
// stored as empty.
func (s *Store) SetComparison(id, referenceID, alternativeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.touch(id)
	if sess.state.IndexOf(referenceID) < 0 {
		referenceID = ""
	}
	if sess.state.IndexOf(alternativeID) < 0 {
		alternativeID = ""
	}
	sess.state.ReferenceID = referenceID
	sess.state.AlternativeID = alternativeID
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Sweep removes sessions idle for longer than the ttl and returns how many went.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Debug("expired idle sessions", "count", n, "remaining", s.Len())
			}
		}
	}
}

func (s *Store) touch(id string) *session {
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{state: State{Basis: s.defaults}}
		s.sessions[id] = sess
	}
	sess.lastSeen = s.now()
	return sess
}

func snapshot(st State) State {
	out := st
	out.Entries = append([]Entry(nil), st.Entries...)
	return out
}
