package drafts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

func TestDraftDocument(t *testing.T) {
	d := Draft{
		ID:      "s-1",
		FormID:  "visa",
		Step:    "personal",
		Visited: []string{"personal"},
		Data: validator.FormData{
			"name":  validator.String("Ana"),
			"age":   validator.Int(31),
			"agree": validator.Bool(true),
			"notes": validator.Empty(),
		},
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	t.Run("stores plain scalars", func(t *testing.T) {
		doc := toDocument(d)
		assert.Equal(t, "s-1", doc.ID)
		assert.Equal(t, map[string]any{"name": "Ana", "age": 31.0, "agree": true, "notes": nil}, doc.Data)
	})

	t.Run("decodes driver integer types", func(t *testing.T) {
		doc := toDocument(d)
		doc.Data["age"] = int32(31)
		got, err := fromDocument(doc)
		require.NoError(t, err)
		assert.Equal(t, d, got)
	})

	t.Run("rejects nested values", func(t *testing.T) {
		doc := toDocument(d)
		doc.Data["age"] = map[string]any{"years": 31}
		_, err := fromDocument(doc)
		assert.ErrorIs(t, err, ErrCorruptedDraft)
	})
}
