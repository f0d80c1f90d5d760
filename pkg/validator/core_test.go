package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Run("returns default message when no errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("joins field messages", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "email", Message: "email é obrigatório"})
		errs.Add(validator.ValidationError{Field: "name", Message: "Digite apenas letras"})
		assert.Equal(t, "validation failed: email: email é obrigatório; name: Digite apenas letras", errs.Error())
	})
}

func TestValidationErrors_Queries(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "password", Message: "too short", Type: validator.TypeLength},
		{Field: "password", Message: "bad format", Type: validator.TypeFormat},
		{Field: "email", Message: "required", Type: validator.TypeRequired},
	}

	t.Run("get keeps rule order", func(t *testing.T) {
		assert.Equal(t, []string{"too short", "bad format"}, errs.Get("password"))
		assert.Nil(t, errs.Get("missing"))
	})

	t.Run("fields keep first appearance order", func(t *testing.T) {
		assert.Equal(t, []string{"password", "email"}, errs.Fields())
	})

	t.Run("filters by type", func(t *testing.T) {
		assert.Len(t, errs.ByType(validator.TypeFormat), 1)
		assert.Empty(t, errs.ByType(validator.TypeCustom))
	})

	t.Run("has and empty", func(t *testing.T) {
		assert.True(t, errs.Has("email"))
		assert.False(t, errs.Has("name"))
		assert.False(t, errs.IsEmpty())
		assert.True(t, validator.ValidationErrors{}.IsEmpty())
	})
}

func TestExtractValidationErrors(t *testing.T) {
	errs := validator.ValidationErrors{{Field: "a", Message: "b"}}

	wrapped := fmt.Errorf("submit: %w", errs)
	assert.Equal(t, errs, validator.ExtractValidationErrors(wrapped))
	assert.True(t, validator.IsValidationError(wrapped))

	assert.Nil(t, validator.ExtractValidationErrors(nil))
	assert.False(t, validator.IsValidationError(errors.New("other")))
}

func TestValidationError_Args(t *testing.T) {
	errs := validator.ValidateField("bio", validator.String("x"), []validator.Rule{{MinLength: 3}}, nil)
	assert.ElementsMatch(t, []string{"field", "bio", "min", "3"}, errs[0].Args())
}
