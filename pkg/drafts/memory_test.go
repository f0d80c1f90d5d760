package drafts_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/drafts"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

func sampleDraft() drafts.Draft {
	return drafts.Draft{
		ID:      "s-1",
		FormID:  "visa",
		Step:    "contact",
		Visited: []string{"personal", "contact"},
		Data: validator.FormData{
			"name":  validator.String("Ana Souza"),
			"age":   validator.Int(31),
			"agree": validator.Bool(true),
		},
		Touched:   []string{"name"},
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and load round trip", func(t *testing.T) {
		store := drafts.NewMemoryStore()
		d := sampleDraft()
		require.NoError(t, store.Save(ctx, d))

		got, err := store.Load(ctx, "s-1")
		require.NoError(t, err)
		assert.Equal(t, d, got)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("stored drafts are isolated from callers", func(t *testing.T) {
		store := drafts.NewMemoryStore()
		d := sampleDraft()
		require.NoError(t, store.Save(ctx, d))

		d.Data["name"] = validator.String("changed")
		d.Visited[0] = "changed"

		got, err := store.Load(ctx, "s-1")
		require.NoError(t, err)
		assert.Equal(t, validator.String("Ana Souza"), got.Data["name"])
		assert.Equal(t, "personal", got.Visited[0])

		got.Touched[0] = "changed"
		again, err := store.Load(ctx, "s-1")
		require.NoError(t, err)
		assert.Equal(t, "name", again.Touched[0])
	})

	t.Run("unknown ids are not found", func(t *testing.T) {
		store := drafts.NewMemoryStore()
		_, err := store.Load(ctx, "nope")
		assert.ErrorIs(t, err, drafts.ErrDraftNotFound)
		assert.ErrorIs(t, store.Delete(ctx, "nope"), drafts.ErrDraftNotFound)
	})

	t.Run("delete removes the draft", func(t *testing.T) {
		store := drafts.NewMemoryStore()
		require.NoError(t, store.Save(ctx, sampleDraft()))
		require.NoError(t, store.Delete(ctx, "s-1"))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("rejects drafts without ids", func(t *testing.T) {
		store := drafts.NewMemoryStore()
		d := sampleDraft()
		d.ID = ""
		assert.ErrorIs(t, store.Save(ctx, d), drafts.ErrEmptyID)

		d = sampleDraft()
		d.FormID = ""
		assert.ErrorIs(t, store.Save(ctx, d), drafts.ErrEmptyFormID)
	})
}
