package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"tripplanner/planner"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

type entry struct {
	mu   sync.Mutex
	trip *planner.Session
}

// Store keeps trip sessions in memory. Each access refreshes the session's
// expiry; idle sessions are evicted after the TTL.
type Store struct {
	items *cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Store{
		items: cache.New(ttl, ttl/2),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Create starts a new session and returns its id and a snapshot.
func (s *Store) Create() (string, planner.Session) {
	id := uuid.NewString()
	trip := planner.NewSession(s.now())
	s.items.Set(id, &entry{trip: trip}, s.ttl)
	return id, trip.Clone()
}

func (s *Store) lookup(id string) (*entry, error) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*entry), nil
}

// Get returns a snapshot of the session.
func (s *Store) Get(id string) (planner.Session, error) {
	e, err := s.lookup(id)
	if err != nil {
		return planner.Session{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	s.items.Set(id, e, s.ttl)
	return e.trip.Clone(), nil
}

// Update runs fn with exclusive access to the session. Changes made by fn are
// kept even when fn returns an error; callers only mutate on success.
func (s *Store) Update(id string, fn func(*planner.Session) error) (planner.Session, error) {
	e, err := s.lookup(id)
	if err != nil {
		return planner.Session{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	err = fn(e.trip)
	s.items.Set(id, e, s.ttl)
	return e.trip.Clone(), err
}

func (s *Store) Delete(id string) {
	s.items.Delete(id)
}

func (s *Store) Len() int {
	return s.items.ItemCount()
}
