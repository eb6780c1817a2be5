package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinic-management/internal/domain/entity"

	"github.com/redis/go-redis/v9"
)

const (
	// RedisSessionKeyPrefix namespaces session keys
	RedisSessionKeyPrefix = "session:"

	redisSessionTimeout = 5 * time.Second
)

type redisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Create(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, redisSessionTimeout)
	defer cancel()

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, sessionKey(session.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, redisSessionTimeout)
	defer cancel()

	payload, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session entity.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Update only overwrites an existing key (XX) and keeps its remaining TTL.
func (s *redisSessionStore) Update(ctx context.Context, session *entity.Session) error {
	ctx, cancel := context.WithTimeout(ctx, redisSessionTimeout)
	defer cancel()

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	err = s.client.SetArgs(ctx, sessionKey(session.ID), payload, redis.SetArgs{
		Mode:    "XX",
		KeepTTL: true,
	}).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("redis update session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, redisSessionTimeout)
	defer cancel()

	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return RedisSessionKeyPrefix + id
}
