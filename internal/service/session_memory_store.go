package service

import (
	"context"
	"time"

	"clinic-management/internal/domain/entity"

	"github.com/patrickmn/go-cache"
)

type memorySessionStore struct {
	cache *cache.Cache
}

// NewMemorySessionStore keeps sessions in process memory. Expired entries are
// swept every cleanupInterval.
func NewMemorySessionStore(cleanupInterval time.Duration) SessionStore {
	return &memorySessionStore{
		cache: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

func (s *memorySessionStore) Create(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	s.cache.Set(session.ID, copySession(session), ttl)
	return nil
}

func (s *memorySessionStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	value, found := s.cache.Get(id)
	if !found {
		return nil, ErrSessionNotFound
	}
	return copySession(value.(*entity.Session)), nil
}

func (s *memorySessionStore) Update(ctx context.Context, session *entity.Session) error {
	_, expiresAt, found := s.cache.GetWithExpiration(session.ID)
	if !found {
		return ErrSessionNotFound
	}

	ttl := cache.NoExpiration
	if !expiresAt.IsZero() {
		ttl = time.Until(expiresAt)
		if ttl <= 0 {
			s.cache.Delete(session.ID)
			return ErrSessionNotFound
		}
	}

	s.cache.Set(session.ID, copySession(session), ttl)
	return nil
}

func (s *memorySessionStore) Delete(ctx context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}

// copySession detaches the stored value from the caller's copy.
func copySession(session *entity.Session) *entity.Session {
	clone := *session
	clone.Confirmations = make(map[string]entity.ConfirmationState, len(session.Confirmations))
	for key, state := range session.Confirmations {
		clone.Confirmations[key] = state
	}
	return &clone
}
