package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"imovelmatch/models"
)

type memoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates the default in-process session store. Idle sessions
// expire after ttl.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{cache: gocache.New(ttl, 2*ttl)}
}

func (s *memoryStore) Get(_ context.Context, id string) (*models.Session, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	sess := v.(models.Session)
	return &sess, nil
}

func (s *memoryStore) Save(_ context.Context, sess *models.Session) error {
	// Stored by value so callers cannot mutate cached state behind the store.
	s.cache.SetDefault(sess.ID, *sess)
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}
