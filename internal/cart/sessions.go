package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionLimits bounds the session registry. Zero values disable each bound.
type SessionLimits struct {
	IdleTTL time.Duration
	Max     int
}

type sessionEntry struct {
	store    *Store
	lastSeen time.Time
}

// Sessions maps anonymous session ids to their carts. Nothing is persisted.
// Sessions idle longer than IdleTTL are dropped, and when Max is reached the
// least recently used session makes room for a new one.
type Sessions struct {
	mu     sync.Mutex
	m      map[string]*sessionEntry
	limits SessionLimits

	newID     func() string
	now       func() time.Time
	lastSweep time.Time
}

func NewSessions(limits SessionLimits) *Sessions {
	return &Sessions{
		m:      make(map[string]*sessionEntry),
		limits: limits,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Open returns the cart for id. An empty, unknown or expired id gets a freshly
// minted id and an empty cart; callers must use the returned id from then on.
func (s *Sessions) Open(id string) (string, *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.liveLocked(id, now); ok {
		return id, e.store
	}

	s.makeRoomLocked(now)

	id = s.newID()
	st := NewStore()
	s.m[id] = &sessionEntry{store: st, lastSeen: now}
	return id, st
}

// Lookup returns the cart for a live id without minting anything.
func (s *Sessions) Lookup(id string) (*Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.liveLocked(id, s.now())
	if !ok {
		return nil, false
	}
	return e.store, true
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.m)
}

// liveLocked touches and returns the entry for id, dropping it if expired.
func (s *Sessions) liveLocked(id string, now time.Time) (*sessionEntry, bool) {
	if id == "" {
		return nil, false
	}
	e, ok := s.m[id]
	if !ok {
		return nil, false
	}
	if s.expired(e, now) {
		delete(s.m, id)
		return nil, false
	}
	e.lastSeen = now
	return e, true
}

func (s *Sessions) expired(e *sessionEntry, now time.Time) bool {
	return s.limits.IdleTTL > 0 && now.Sub(e.lastSeen) > s.limits.IdleTTL
}

func (s *Sessions) makeRoomLocked(now time.Time) {
	full := s.limits.Max > 0 && len(s.m) >= s.limits.Max
	due := s.limits.IdleTTL > 0 && now.Sub(s.lastSweep) >= s.limits.IdleTTL

	if full || due {
		for id, e := range s.m {
			if s.expired(e, now) {
				delete(s.m, id)
			}
		}
		s.lastSweep = now
	}

	if s.limits.Max <= 0 {
		return
	}
	for len(s.m) >= s.limits.Max {
		s.evictOldestLocked()
	}
}

func (s *Sessions) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range s.m {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	delete(s.m, oldestID)
}
