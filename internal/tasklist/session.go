package tasklist

import (
	"fmt"

	"todobot/internal/storage"
)

// Session binds a Store to its persisted snapshot for the span of one
// command: the ledger is loaded once on open and flushed at most once on
// close, and only if a mutating operation ran. Reads alone never write.
type Session struct {
	backend storage.Backend
	user    string
	closed  bool

	// Store is the in-memory ledger for the session's user.
	Store *Store
}

// Open loads the user's ledger. An absent snapshot starts an empty ledger.
func Open(backend storage.Backend, user string) (*Session, error) {
	snap, err := backend.Load(user)
	if err != nil {
		return nil, fmt.Errorf("load ledger for %q: %w", user, err)
	}
	return &Session{backend: backend, user: user, Store: New(snap)}, nil
}

// Close flushes the ledger if it was mutated. The whole snapshot is written
// in one atomic save, which is the session's sole durability point.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if !s.Store.Dirty() {
		return nil
	}
	if err := s.backend.Save(s.user, s.Store.All()); err != nil {
		return fmt.Errorf("save ledger for %q: %w", s.user, err)
	}
	return nil
}
