// Package session keeps one form controller per browser tab.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/greatxrider/interactive-form-project/form"
)

// ErrNotFound is returned for an unknown or expired session id.
var ErrNotFound = errors.New("form session not found")

// Factory builds the controller of a new session.
type Factory func() (*form.Controller, error)

type entry struct {
	mu       sync.Mutex
	ctrl     *form.Controller
	lastSeen time.Time
}

// Store is an in-memory session table. Events for one session are applied one
// at a time, which keeps each controller single-owner under concurrent
// requests.
type Store struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
	factory Factory
	ttl     time.Duration
	now     func() time.Time
}

// NewStore returns an empty store. Sessions idle for longer than ttl are
// removed by Sweep; a zero ttl keeps them forever.
func NewStore(factory Factory, ttl time.Duration) *Store {
	return &Store{
		entries: make(map[uuid.UUID]*entry),
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create starts a new session and returns its id.
func (s *Store) Create() (uuid.UUID, error) {
	ctrl, err := s.factory()
	if err != nil {
		return uuid.Nil, fmt.Errorf("new form controller: %w", err)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, fmt.Errorf("new session id: %w", err)
	}

	s.mu.Lock()
	s.entries[id] = &entry{ctrl: ctrl, lastSeen: s.now()}
	s.mu.Unlock()
	return id, nil
}

// With runs fn against the controller of session id while holding that
// session's lock.
func (s *Store) With(id uuid.UUID, fn func(c *form.Controller) error) error {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = s.now()
	return fn(e.ctrl)
}

// Delete removes a session.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.entries, id)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep drops sessions idle since before now-ttl and returns how many were
// removed.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.entries {
		e.mu.Lock()
		idle := e.lastSeen.Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}
