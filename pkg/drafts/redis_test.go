package drafts_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/drafts"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and load round trip", func(t *testing.T) {
		mr, client := setupRedis(t)
		store := drafts.NewRedisStore(client, "app", time.Hour)

		d := sampleDraft()
		require.NoError(t, store.Save(ctx, d))
		assert.True(t, mr.Exists("app:draft:s-1"))

		got, err := store.Load(ctx, "s-1")
		require.NoError(t, err)
		assert.Equal(t, d, got)
	})

	t.Run("drafts expire after the ttl", func(t *testing.T) {
		mr, client := setupRedis(t)
		store := drafts.NewRedisStore(client, "", time.Minute)

		require.NoError(t, store.Save(ctx, sampleDraft()))
		assert.Equal(t, time.Minute, mr.TTL("forms:draft:s-1"))

		mr.FastForward(2 * time.Minute)
		_, err := store.Load(ctx, "s-1")
		assert.ErrorIs(t, err, drafts.ErrDraftNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		_, client := setupRedis(t)
		store := drafts.NewRedisStore(client, "app", 0)

		require.NoError(t, store.Save(ctx, sampleDraft()))
		require.NoError(t, store.Delete(ctx, "s-1"))
		assert.ErrorIs(t, store.Delete(ctx, "s-1"), drafts.ErrDraftNotFound)
	})

	t.Run("corrupted payloads are reported", func(t *testing.T) {
		mr, client := setupRedis(t)
		store := drafts.NewRedisStore(client, "app", 0)

		require.NoError(t, mr.Set("app:draft:bad", "{not json"))
		_, err := store.Load(ctx, "bad")
		assert.ErrorIs(t, err, drafts.ErrCorruptedDraft)
	})

	t.Run("healthcheck follows the server", func(t *testing.T) {
		mr, client := setupRedis(t)
		check := drafts.RedisHealthcheck(client)
		require.NoError(t, check(ctx))

		mr.Close()
		assert.ErrorIs(t, check(ctx), drafts.ErrHealthcheckFailed)
	})
}

func TestConnectRedis(t *testing.T) {
	t.Run("connects to a running server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client, err := drafts.ConnectRedis(context.Background(), drafts.RedisConfig{
			ConnectionURL: "redis://" + mr.Addr() + "/0",
			RetryAttempts: 1,
		})
		require.NoError(t, err)
		defer client.Close()
	})

	t.Run("rejects malformed urls", func(t *testing.T) {
		_, err := drafts.ConnectRedis(context.Background(), drafts.RedisConfig{ConnectionURL: "://bad"})
		assert.ErrorIs(t, err, drafts.ErrFailedToParseRedisURL)
	})
}
