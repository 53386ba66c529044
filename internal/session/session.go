package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/view"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session ids
var ErrSessionNotFound = errors.New("session not found")

// Session is one shopper's storefront: the rendered document, the order
// manager drawing into it and the notification waiting to be shown.
// Hold the session lock for the whole of an action.
type Session struct {
	ID       string
	Manager  *service.OrderManager
	Document *view.Document

	mu           sync.Mutex
	notification *view.Notification
	lastSeen     time.Time
}

// Lock serializes actions on the session
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock releases the session
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// Notify stores a message for the next page view. Callers hold the lock.
func (s *Session) Notify(kind, message string) {
	s.notification = &view.Notification{Kind: kind, Message: message}
}

// TakeNotification returns the pending message and clears it. Callers hold the lock.
func (s *Session) TakeNotification() *view.Notification {
	n := s.notification
	s.notification = nil
	return n
}

// Factory builds a fresh session for id
type Factory func(ctx context.Context, id string) (*Session, error)

// Store keeps sessions in memory until they sit idle longer than the TTL
type Store struct {
	ttl     time.Duration
	factory Factory
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates a session store
func NewStore(ttl time.Duration, factory Factory) *Store {
	return &Store{
		ttl:      ttl,
		factory:  factory,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session with a random id
func (s *Store) Create(ctx context.Context) (*Session, error) {
	id := uuid.New().String()
	sess, err := s.factory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	sess.ID = id
	sess.lastSeen = s.now()

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	return sess, nil
}

// Get returns a live session and marks it as seen
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := s.now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = now
	return sess, nil
}

// GetOrCreate returns the session for id, starting a new one when it is
// unknown or expired. created reports whether a new session was made.
func (s *Store) GetOrCreate(ctx context.Context, id string) (sess *Session, created bool, err error) {
	if id != "" {
		if sess, err := s.Get(id); err == nil {
			return sess, false, nil
		}
	}
	sess, err = s.Create(ctx)
	if err != nil {
		return nil, false, err
	}
	return sess, true, nil
}

// Len returns the number of stored sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts expired sessions and returns how many were removed
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done
func (s *Store) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.Sweep()
			if onSweep != nil {
				onSweep(removed)
			}
		}
	}
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}
