package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var (
	cacheMu sync.RWMutex
	cache   = make(map[reflect.Type]any)

	defaultEnvOnce sync.Once
	validate       = validator.New(validator.WithRequiredStructEnabled())
)

// Load parses environment variables into v using `env` struct tags, then
// checks `validate` tags. The default .env file is read once, if present.
// Each configuration type is parsed once per process and served from cache
// afterwards.
//
//	type DraftsConfig struct {
//		Driver string `env:"DRAFTS_DRIVER" envDefault:"memory" validate:"oneof=memory redis postgres mongo"`
//	}
//
//	var cfg DraftsConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	defaultEnvOnce.Do(func() {
		// a missing .env file is fine
		_ = godotenv.Load()
	})

	typ := reflect.TypeFor[T]()

	cacheMu.RLock()
	cached, ok := cache[typ]
	cacheMu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := parse(&parsed); err != nil {
		return err
	}

	cacheMu.Lock()
	if existing, ok := cache[typ]; ok {
		parsed = existing.(T)
	} else {
		cache[typ] = parsed
	}
	cacheMu.Unlock()

	*v = parsed
	return nil
}

// MustLoad is like Load but panics on failure. Use it for configuration the
// service cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadEnv reads the given .env files into the process environment (the
// default .env when none are given). Later files override earlier ones and
// cached configurations are dropped.
func LoadEnv(paths ...string) error {
	values, err := godotenv.Read(paths...)
	if err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	for key, value := range values {
		if err := os.Setenv(key, value); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}
	ResetCache()
	return nil
}

// MustLoadEnv is like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("failed to load env files: %v", err))
	}
}

// ResetCache drops every cached configuration.
func ResetCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	clear(cache)
}

func parse[T any](v *T) error {
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if reflect.TypeFor[T]().Kind() == reflect.Struct {
		if err := validate.Struct(v); err != nil {
			return errors.Join(ErrInvalidConfig, err)
		}
	}
	return nil
}
