package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/config"
)

type defaultsConfig struct {
	Name  string `env:"FORMS_DEFAULTS_NAME" envDefault:"visa"`
	Delay int    `env:"FORMS_DEFAULTS_DELAY" envDefault:"300"`
	Debug bool   `env:"FORMS_DEFAULTS_DEBUG" envDefault:"true"`
}

type overrideConfig struct {
	Name string `env:"FORMS_OVERRIDE_NAME" envDefault:"visa"`
}

type requiredConfig struct {
	Value string `env:"FORMS_REQUIRED_VALUE,required"`
}

type validatedConfig struct {
	Driver string `env:"FORMS_VALIDATED_DRIVER" envDefault:"memory" validate:"oneof=memory redis postgres mongo"`
}

type fileConfig struct {
	Name string `env:"FORMS_TEST_NAME"`
	Port int    `env:"FORMS_TEST_PORT"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		config.ResetCache()
		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "visa", cfg.Name)
		assert.Equal(t, 300, cfg.Delay)
		assert.True(t, cfg.Debug)
	})

	t.Run("reads the environment and caches per type", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("FORMS_OVERRIDE_NAME", "first")

		var cfg overrideConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "first", cfg.Name)

		t.Setenv("FORMS_OVERRIDE_NAME", "second")
		var again overrideConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, "first", again.Name)

		config.ResetCache()
		var fresh overrideConfig
		require.NoError(t, config.Load(&fresh))
		assert.Equal(t, "second", fresh.Name)
	})

	t.Run("missing required variable", func(t *testing.T) {
		config.ResetCache()
		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, config.ErrParsingConfig))
	})

	t.Run("failed validation", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("FORMS_VALIDATED_DRIVER", "sqlite")
		var cfg validatedConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, config.ErrInvalidConfig))
	})

	t.Run("nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[defaultsConfig](nil), config.ErrNilPointer)
	})

	t.Run("must load panics", func(t *testing.T) {
		config.ResetCache()
		assert.Panics(t, func() {
			var cfg requiredConfig
			config.MustLoad(&cfg)
		})
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("FORMS_TEST_NAME", "")
	t.Setenv("FORMS_TEST_PORT", "")

	require.NoError(t, config.LoadEnv("testdata/.env.base", "testdata/.env.override"))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from_file", cfg.Name)
	assert.Equal(t, 9191, cfg.Port)

	assert.Error(t, config.LoadEnv("testdata/missing.env"))
	assert.Panics(t, func() { config.MustLoadEnv("testdata/missing.env") })
}
