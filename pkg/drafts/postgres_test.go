package drafts_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/drafts"
)

// Runs only when PG_TEST_URL points at a disposable database.
func TestPostgresStore(t *testing.T) {
	url := os.Getenv("PG_TEST_URL")
	if url == "" {
		t.Skip("PG_TEST_URL is not set")
	}
	ctx := context.Background()

	pool, err := drafts.ConnectPostgres(ctx, drafts.PostgresConfig{
		ConnectionString: url,
		MaxOpenConns:     2,
		MaxIdleConns:     1,
		RetryAttempts:    1,
		RetryInterval:    time.Second,
	})
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, drafts.Migrate(ctx, pool, "form_drafts_migrations_test", nil))
	require.NoError(t, drafts.PostgresHealthcheck(pool)(ctx))

	store := drafts.NewPostgresStore(pool)
	d := sampleDraft()
	require.NoError(t, store.Save(ctx, d))
	defer store.Delete(ctx, d.ID)

	got, err := store.Load(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.Data, got.Data)
	assert.Equal(t, d.Visited, got.Visited)
	assert.True(t, d.UpdatedAt.Equal(got.UpdatedAt))

	_, err = store.Load(ctx, "missing")
	assert.ErrorIs(t, err, drafts.ErrDraftNotFound)
}
