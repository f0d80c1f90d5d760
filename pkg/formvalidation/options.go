package formvalidation

import (
	"log/slog"
	"time"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

const DefaultDebounceMs = 300

// Config is the engine construction parameters.
type Config struct {
	// FormData is read on every call; a nil source behaves as an empty form.
	FormData FormSource
	Rules    validator.Rules
	// ValidateOnChange is a hint for the orchestrator. Nil means true.
	ValidateOnChange *bool
	// DebounceMs is the delay of ValidateFieldDebounced. Zero or less means 300.
	DebounceMs int
}

// Timer is the part of *time.Timer the engine uses.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules fn to run once after d.
type AfterFunc func(d time.Duration, fn func()) Timer

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithAfterFunc replaces the timer factory used by ValidateFieldDebounced.
func WithAfterFunc(fn AfterFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.afterFunc = fn
		}
	}
}

func defaultAfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Bool returns a pointer to b, for Config.ValidateOnChange.
func Bool(b bool) *bool { return &b }
