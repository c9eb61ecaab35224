package session

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/floww-ai/backend/internal/entity"
)

// Store keeps live sessions in memory with a TTL. Expired sessions are
// swept by the cache; there is no durable storage.
type Store struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// Create registers a new empty session and returns it.
func (s *Store) Create() *Session {
	sess := &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}
	s.cache.Set(sess.ID, sess, s.ttl)
	return sess
}

// Get returns the session with the given ID, refreshing its TTL.
func (s *Store) Get(id string) (*Session, error) {
	value, found := s.cache.Get(id)
	if !found {
		return nil, entity.ErrSessionNotFound
	}
	sess := value.(*Session)
	s.cache.Set(id, sess, s.ttl)
	return sess, nil
}

// Delete discards a session and all of its models.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}
