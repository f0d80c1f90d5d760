package multistep_test

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/multistep"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

func loadContact(t *testing.T) *multistep.Definition {
	t.Helper()
	f, err := os.Open("testdata/contact.yaml")
	require.NoError(t, err)
	defer f.Close()

	def, err := multistep.LoadDefinition(f, nil)
	require.NoError(t, err)
	return def
}

func TestLoadDefinition(t *testing.T) {
	t.Run("loads steps and rules", func(t *testing.T) {
		def := loadContact(t)

		assert.Equal(t, "contact", def.ID)
		assert.Len(t, def.Steps, 3)
		if diff := cmp.Diff([]string{"name", "email", "nickname", "subject", "body"}, def.Fields()); diff != "" {
			t.Errorf("fields mismatch (-want +got):\n%s", diff)
		}

		step, ok := def.StepOf("nickname")
		assert.True(t, ok)
		assert.Equal(t, "extra", step)

		extra, idx, ok := def.Step("extra")
		require.True(t, ok)
		assert.Equal(t, 1, idx)
		assert.True(t, extra.Optional)

		rules := def.CompiledRules()
		require.Len(t, rules["email"], 1)
		assert.Equal(t, validator.PatternEmail, rules["email"][0].Pattern.Kind)
	})

	testCases := []struct {
		name string
		src  string
	}{
		{
			name: "missing id",
			src:  "steps: [{id: a, fields: [x]}]",
		},
		{
			name: "no steps",
			src:  "id: f",
		},
		{
			name: "duplicate step ids",
			src:  "id: f\nsteps: [{id: a, fields: [x]}, {id: a, fields: [y]}]",
		},
		{
			name: "step without fields",
			src:  "id: f\nsteps: [{id: a, fields: []}]",
		},
		{
			name: "field in two steps",
			src:  "id: f\nsteps: [{id: a, fields: [x]}, {id: b, fields: [x]}]",
		},
		{
			name: "reserved step id",
			src:  "id: f\nsteps: [{id: submitted, fields: [x]}]",
		},
		{
			name: "rules for undeclared field",
			src:  "id: f\nsteps: [{id: a, fields: [x]}]\nrules:\n  y:\n    - required: true",
		},
		{
			name: "unknown preset",
			src:  "id: f\nsteps: [{id: a, fields: [x]}]\nrules:\n  x:\n    - preset: zipcode",
		},
		{
			name: "negative length",
			src:  "id: f\nsteps: [{id: a, fields: [x]}]\nrules:\n  x:\n    - min_length: -1",
		},
		{
			name: "unknown key",
			src:  "id: f\ncolour: red\nsteps: [{id: a, fields: [x]}]",
		},
	}

	for _, tc := range testCases {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			_, err := multistep.LoadDefinition(strings.NewReader(tc.src), nil)
			assert.ErrorIs(t, err, multistep.ErrInvalidDefinition)
		})
	}

	t.Run("resolves custom checks through the registry", func(t *testing.T) {
		reg := validator.NewRegistry()
		src := "id: f\nsteps: [{id: a, fields: [x]}]\nrules:\n  x:\n    - custom: adult"
		def, err := multistep.LoadDefinition(strings.NewReader(src), reg)
		require.NoError(t, err)
		assert.NotNil(t, def.CompiledRules()["x"][0].Custom)
	})
}

func TestLoadDefinitions(t *testing.T) {
	t.Run("loads every yaml file in the directory", func(t *testing.T) {
		defs, err := multistep.LoadDefinitions(os.DirFS("testdata"), ".", nil)
		require.NoError(t, err)
		require.Len(t, defs, 2)
		assert.Equal(t, "Visa application", defs["visa"].Title)
		assert.Equal(t, "Contact", defs["contact"].Title)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := multistep.LoadDefinitions(os.DirFS("testdata"), "nope", nil)
		assert.ErrorIs(t, err, multistep.ErrInvalidDefinition)
	})
}
