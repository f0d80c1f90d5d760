package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

func TestSuggestions(t *testing.T) {
	t.Run("nothing for empty values", func(t *testing.T) {
		rules := []validator.Rule{validator.NameRule()}
		assert.Nil(t, validator.Suggestions("name", validator.String(""), rules, nil))
		assert.Nil(t, validator.Suggestions("name", validator.Empty(), rules, nil))
	})

	t.Run("counts missing characters", func(t *testing.T) {
		rules := []validator.Rule{{MinLength: 5}}
		got := validator.Suggestions("code", validator.String("ab"), rules, nil)
		assert.Equal(t, []string{"Adicione mais 3 caractere(s)"}, got)
	})

	t.Run("counts extra characters", func(t *testing.T) {
		rules := []validator.Rule{{MaxLength: 2}}
		got := validator.Suggestions("code", validator.String("abcd"), rules, nil)
		assert.Equal(t, []string{"Remova 2 caractere(s)"}, got)
	})

	t.Run("email hints", func(t *testing.T) {
		rules := []validator.Rule{validator.EmailRule()}
		testCases := []struct {
			value string
			want  string
		}{
			{"joao", "Adicione o símbolo @"},
			{"joao@", "Adicione um domínio válido (ex: gmail.com)"},
			{"joao@gmail", "Adicione um domínio válido (ex: gmail.com)"},
			{"joao@gmail.", "Adicione um domínio válido (ex: gmail.com)"},
			{"@gmail.com", "Adicione o nome antes do @"},
			{"jo ao@gmail.com", "Remova espaços e caracteres extras"},
		}

		for _, tc := range testCases {
			got := validator.Suggestions("email", validator.String(tc.value), rules, nil)
			assert.Equal(t, []string{tc.want}, got, "value %q", tc.value)
		}
	})

	t.Run("pattern hints by kind", func(t *testing.T) {
		testCases := []struct {
			kind  validator.PatternKind
			value string
			want  string
		}{
			{validator.PatternPhone, "123", "Use o formato (00) 00000-0000"},
			{validator.PatternCPF, "12345678900", "Use o formato 000.000.000-00"},
			{validator.PatternDigits, "12a", "Remova letras e símbolos"},
			{validator.PatternLetters, "Jo3", "Remova números e símbolos"},
			{validator.PatternAlphanumeric, "ab c", "Remova espaços e símbolos"},
		}

		for _, tc := range testCases {
			rules := []validator.Rule{{Pattern: validator.PatternFor(tc.kind)}}
			got := validator.Suggestions("f", validator.String(tc.value), rules, nil)
			assert.Equal(t, []string{tc.want}, got, "kind %s", tc.kind)
		}
	})

	t.Run("combines length and pattern hints without duplicates", func(t *testing.T) {
		rules := []validator.Rule{
			{MinLength: 4, Pattern: validator.PatternFor(validator.PatternDigits)},
			{MinLength: 4},
		}
		got := validator.Suggestions("pin", validator.String("1a"), rules, nil)
		assert.Equal(t, []string{"Adicione mais 2 caractere(s)", "Remova letras e símbolos"}, got)
	})

	t.Run("nothing for a valid value", func(t *testing.T) {
		rules := []validator.Rule{validator.EmailRule()}
		assert.Empty(t, validator.Suggestions("email", validator.String("a@b.com"), rules, nil))
	})
}
