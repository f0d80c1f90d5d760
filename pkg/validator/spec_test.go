package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

func TestCompileRules(t *testing.T) {
	t.Run("compiles yaml rule specs", func(t *testing.T) {
		src := `
email:
  - preset: email
nickname:
  - required: true
    min_length: 3
    pattern: alphanumeric
code:
  - pattern: custom
    expr: "^[A-Z]{2}-\\d{3}$"
cpf:
  - preset: cpf
    custom: cpf_digits
`
		var specs map[string][]validator.RuleSpec
		require.NoError(t, yaml.Unmarshal([]byte(src), &specs))

		rules, err := validator.CompileRules(specs, nil)
		require.NoError(t, err)
		require.Len(t, rules, 4)

		nick := rules["nickname"][0]
		assert.True(t, nick.Required)
		assert.Equal(t, 3, nick.MinLength)
		require.NotNil(t, nick.Pattern)
		assert.Equal(t, validator.PatternAlphanumeric, nick.Pattern.Kind)

		assert.Empty(t, validator.ValidateField("code", validator.String("AB-123"), rules["code"], nil))
		assert.Len(t, validator.ValidateField("code", validator.String("AB123"), rules["code"], nil), 1)

		errs := validator.ValidateField("cpf", validator.String("529.982.247-26"), rules["cpf"], nil)
		require.Len(t, errs, 1)
		assert.Equal(t, "CPF inválido", errs[0].Message)
	})

	t.Run("preset fields can be overridden", func(t *testing.T) {
		rule, err := validator.RuleSpec{Preset: "name", MaxLength: 20}.Compile(nil)
		require.NoError(t, err)
		assert.Equal(t, 2, rule.MinLength)
		assert.Equal(t, 20, rule.MaxLength)
		assert.True(t, rule.Required)
	})

	t.Run("uses registered custom checks", func(t *testing.T) {
		reg := validator.NewRegistry()
		require.NoError(t, reg.Register("even", func(v validator.Value, _ validator.FormData) error {
			if f, ok := v.Float(); ok && int(f)%2 == 0 {
				return nil
			}
			return validator.ErrInvalidValue
		}))

		rules, err := validator.CompileRules(map[string][]validator.RuleSpec{
			"n": {{Custom: "even"}},
		}, reg)
		require.NoError(t, err)
		assert.Empty(t, validator.ValidateField("n", validator.Int(4), rules["n"], nil))
		assert.Len(t, validator.ValidateField("n", validator.Int(3), rules["n"], nil), 1)
	})

	t.Run("reports every failure", func(t *testing.T) {
		_, err := validator.CompileRules(map[string][]validator.RuleSpec{
			"a": {{Pattern: "zipcode"}},
			"b": {{Custom: "missing"}},
			"c": {{Preset: "nope"}},
			"d": {{Pattern: "custom", Expr: "("}},
			"e": {{Expr: "^x$"}},
		}, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, validator.ErrUnknownPattern))
		assert.True(t, errors.Is(err, validator.ErrUnknownCustom))
		assert.True(t, errors.Is(err, validator.ErrUnknownPreset))
		assert.True(t, errors.Is(err, validator.ErrInvalidPattern))
	})
}

func TestRegistry(t *testing.T) {
	t.Run("has the built in checks", func(t *testing.T) {
		reg := validator.NewRegistry()
		assert.Equal(t, []string{"adult", "age_range", "cpf_digits"}, reg.Names())
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		reg := validator.NewRegistry()
		err := reg.Register("adult", validator.Adult)
		assert.ErrorIs(t, err, validator.ErrDuplicateRule)
	})

	t.Run("rejects nil functions", func(t *testing.T) {
		reg := validator.NewRegistry()
		assert.Error(t, reg.Register("x", nil))
	})
}

func TestParsePatternKind(t *testing.T) {
	kind, err := validator.ParsePatternKind(" Email ")
	require.NoError(t, err)
	assert.Equal(t, validator.PatternEmail, kind)

	_, err = validator.ParsePatternKind("zipcode")
	assert.ErrorIs(t, err, validator.ErrUnknownPattern)

	assert.Panics(t, func() { validator.PatternFor(validator.PatternCustom) })
}
