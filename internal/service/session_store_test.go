package service

import (
	"context"
	"testing"
	"time"

	"clinic-management/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisSessionStore(client), mr
}

func sessionStores(t *testing.T) map[string]SessionStore {
	redisStore, _ := newRedisStore(t)
	return map[string]SessionStore{
		"memory": NewMemorySessionStore(time.Minute),
		"redis":  redisStore,
	}
}

func TestSessionStore_Lifecycle(t *testing.T) {
	for name, store := range sessionStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			session := &entity.Session{
				ID:         "s-1",
				Username:   "admin",
				Role:       entity.RoleAdmin,
				LoggedInAt: time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC),
			}

			require.NoError(t, store.Create(ctx, session, time.Hour))

			got, err := store.Get(ctx, "s-1")
			require.NoError(t, err)
			assert.Equal(t, "admin", got.Username)
			assert.Equal(t, entity.RoleAdmin, got.Role)
			assert.True(t, session.LoggedInAt.Equal(got.LoggedInAt))

			got.SetConfirmation(entity.ConfirmActionLogout, 0, entity.ConfirmationPending)
			require.NoError(t, store.Update(ctx, got))

			reloaded, err := store.Get(ctx, "s-1")
			require.NoError(t, err)
			assert.True(t, reloaded.IsPending(entity.ConfirmActionLogout, 0))

			require.NoError(t, store.Delete(ctx, "s-1"))
			_, err = store.Get(ctx, "s-1")
			assert.ErrorIs(t, err, ErrSessionNotFound)
		})
	}
}

func TestSessionStore_UpdateMissing(t *testing.T) {
	for name, store := range sessionStores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Update(context.Background(), &entity.Session{ID: "missing"})
			assert.ErrorIs(t, err, ErrSessionNotFound)
		})
	}
}

func TestMemorySessionStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Minute)
	require.NoError(t, store.Create(ctx, &entity.Session{ID: "s-1"}, time.Hour))

	got, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	got.SetConfirmation(entity.ConfirmActionLogout, 0, entity.ConfirmationPending)

	again, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.False(t, again.IsPending(entity.ConfirmActionLogout, 0))
}

func TestMemorySessionStore_Expires(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Minute)
	require.NoError(t, store.Create(ctx, &entity.Session{ID: "s-1"}, 20*time.Millisecond))

	time.Sleep(40 * time.Millisecond)

	_, err := store.Get(ctx, "s-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStore_UpdateKeepsTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Create(ctx, &entity.Session{ID: "s-1"}, time.Hour))
	mr.FastForward(30 * time.Minute)

	require.NoError(t, store.Update(ctx, &entity.Session{ID: "s-1", Username: "admin"}))
	assert.Equal(t, 30*time.Minute, mr.TTL(RedisSessionKeyPrefix+"s-1"))

	mr.FastForward(31 * time.Minute)
	_, err := store.Get(ctx, "s-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
