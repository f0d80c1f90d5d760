package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/i18n"
)

func TestYAMLParser(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps nesting under each language", func(t *testing.T) {
		data, err := i18n.YAMLParser{}.Parse(ctx, []byte("en:\n  a:\n    b: c\n"))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"b": "c"}, data["en"]["a"])
	})

	t.Run("rejects scalar languages", func(t *testing.T) {
		_, err := i18n.YAMLParser{}.Parse(ctx, []byte("en: hello"))
		assert.ErrorIs(t, err, i18n.ErrInvalidCatalog)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := i18n.YAMLParser{}.Parse(ctx, []byte("en: [unclosed"))
		assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := i18n.YAMLParser{}.Parse(ctx, nil)
		assert.ErrorIs(t, err, i18n.ErrInvalidCatalog)
	})
}

func TestJSONParser(t *testing.T) {
	ctx := context.Background()

	data, err := i18n.JSONParser{}.Parse(ctx, []byte(`{"en":{"a":"b"}}`))
	require.NoError(t, err)
	assert.Equal(t, "b", data["en"]["a"])

	_, err = i18n.JSONParser{}.Parse(ctx, []byte(`{`))
	assert.ErrorIs(t, err, i18n.ErrFailedToParseJSON)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = i18n.JSONParser{}.Parse(cctx, []byte(`{}`))
	assert.ErrorIs(t, err, i18n.ErrParsingCancelled)
}

func TestNewParserForFile(t *testing.T) {
	assert.IsType(t, i18n.YAMLParser{}, i18n.NewParserForFile("pt-BR.yml"))
	assert.IsType(t, i18n.YAMLParser{}, i18n.NewParserForFile("en.YAML"))
	assert.IsType(t, i18n.JSONParser{}, i18n.NewParserForFile("en.json"))
	assert.Nil(t, i18n.NewParserForFile("en.toml"))
}
