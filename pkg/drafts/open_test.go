package drafts_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/drafts"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory is the default", func(t *testing.T) {
		backend, err := drafts.Open(ctx, drafts.Config{}, nil)
		require.NoError(t, err)
		assert.IsType(t, &drafts.MemoryStore{}, backend.Store)
		assert.NoError(t, backend.Healthcheck(ctx))
		assert.NoError(t, backend.Close(ctx))
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		backend, err := drafts.Open(ctx, drafts.Config{
			Driver: drafts.DriverRedis,
			Redis: drafts.RedisConfig{
				ConnectionURL: "redis://" + mr.Addr() + "/0",
				KeyPrefix:     "t",
				RetryAttempts: 1,
			},
		}, nil)
		require.NoError(t, err)
		defer backend.Close(ctx)

		require.NoError(t, backend.Store.Save(ctx, sampleDraft()))
		assert.True(t, mr.Exists("t:draft:s-1"))
		assert.NoError(t, backend.Healthcheck(ctx))
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := drafts.Open(ctx, drafts.Config{Driver: "sqlite"}, nil)
		assert.ErrorIs(t, err, drafts.ErrUnknownDriver)
	})
}
