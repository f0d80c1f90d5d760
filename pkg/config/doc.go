// Package config loads typed configuration from environment variables.
//
// Structs describe their variables with `env` tags (github.com/caarlos0/env)
// and may add `validate` tags (github.com/go-playground/validator) for value
// checks. The default .env file is read on first use through
// github.com/joho/godotenv; LoadEnv reads explicit files.
//
//	type HTTPConfig struct {
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080" validate:"required"`
//	}
//
//	var cfg HTTPConfig
//	config.MustLoad(&cfg)
//
// Every configuration type is parsed once and cached; ResetCache clears the
// cache, which tests use after changing the environment.
package config
