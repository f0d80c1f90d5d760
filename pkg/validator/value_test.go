package validator_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

func TestValue(t *testing.T) {
	t.Run("zero value is empty", func(t *testing.T) {
		var v validator.Value
		assert.Equal(t, validator.KindEmpty, v.Kind())
		assert.True(t, v.IsEmpty())
		assert.Nil(t, v.Any())
	})

	t.Run("blank strings are empty", func(t *testing.T) {
		assert.True(t, validator.String("  \n").IsEmpty())
		assert.False(t, validator.String(" a ").IsEmpty())
	})

	t.Run("numbers and booleans are never empty", func(t *testing.T) {
		assert.False(t, validator.Int(0).IsEmpty())
		assert.False(t, validator.Bool(false).IsEmpty())
	})

	t.Run("accessors are type guarded", func(t *testing.T) {
		_, ok := validator.Int(3).Text()
		assert.False(t, ok)
		_, ok = validator.String("3").Float()
		assert.False(t, ok)
		b, ok := validator.Bool(true).Truth()
		assert.True(t, ok)
		assert.True(t, b)
	})

	t.Run("string form", func(t *testing.T) {
		assert.Equal(t, "3.5", validator.Number(3.5).String())
		assert.Equal(t, "true", validator.Bool(true).String())
		assert.Equal(t, "", validator.Empty().String())
	})
}

func TestValueOf(t *testing.T) {
	testCases := []struct {
		in   any
		kind validator.Kind
	}{
		{nil, validator.KindEmpty},
		{"x", validator.KindString},
		{true, validator.KindBool},
		{1.5, validator.KindNumber},
		{7, validator.KindNumber},
		{int64(7), validator.KindNumber},
		{json.Number("12"), validator.KindNumber},
	}

	for _, tc := range testCases {
		v, ok := validator.ValueOf(tc.in)
		require.True(t, ok, "%T", tc.in)
		assert.Equal(t, tc.kind, v.Kind(), "%T", tc.in)
	}

	_, ok := validator.ValueOf([]string{"a"})
	assert.False(t, ok)
}

func TestFormData_JSON(t *testing.T) {
	t.Run("decodes scalars into values", func(t *testing.T) {
		var data validator.FormData
		err := json.Unmarshal([]byte(`{"name":"Ana","age":31,"agree":true,"notes":null}`), &data)
		require.NoError(t, err)

		assert.Equal(t, validator.String("Ana"), data["name"])
		assert.Equal(t, validator.Int(31), data["age"])
		assert.Equal(t, validator.Bool(true), data["agree"])
		assert.Equal(t, validator.Empty(), data["notes"])
		assert.Equal(t, []string{"age", "agree", "name", "notes"}, data.Fields())
	})

	t.Run("rejects nested values", func(t *testing.T) {
		var data validator.FormData
		err := json.Unmarshal([]byte(`{"tags":["a"]}`), &data)
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrInvalidValue)
	})

	t.Run("encodes back to scalars", func(t *testing.T) {
		data := validator.FormData{"age": validator.Int(31), "name": validator.String("Ana")}
		out, err := json.Marshal(data)
		require.NoError(t, err)
		assert.JSONEq(t, `{"age":31,"name":"Ana"}`, string(out))
	})
}

func TestFormDataOf(t *testing.T) {
	data, err := validator.FormDataOf(map[string]any{"a": "x", "b": 2.0})
	require.NoError(t, err)
	assert.Equal(t, validator.String("x"), data.Get("a"))
	assert.Equal(t, validator.Empty(), data.Get("missing"))

	_, err = validator.FormDataOf(map[string]any{"bad": map[string]any{}})
	assert.ErrorIs(t, err, validator.ErrInvalidValue)
}
