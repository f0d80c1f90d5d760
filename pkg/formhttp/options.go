package formhttp

import (
	"log/slog"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/drafts"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/i18n"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/multistep"
)

// DefaultMaxBodyBytes caps request bodies.
const DefaultMaxBodyBytes = 1 << 20

// Config holds the FORMS_* settings of the API.
type Config struct {
	Dir              string        `env:"FORMS_DIR"`
	MaxSessions      int           `env:"FORMS_MAX_SESSIONS" envDefault:"1000" validate:"gt=0"`
	MaxBodyBytes     int64         `env:"FORMS_MAX_BODY_BYTES" envDefault:"1048576" validate:"gt=0"`
	Debounce         time.Duration `env:"FORMS_DEBOUNCE" envDefault:"300ms"`
	AutoSaveDelay    time.Duration `env:"FORMS_AUTOSAVE_DELAY" envDefault:"2s"`
	ValidateOnChange bool          `env:"FORMS_VALIDATE_ON_CHANGE" envDefault:"true"`
}

// Options converts the config into handler options. Session options are only
// set for positive durations.
func (c Config) Options() []Option {
	var sessionOpts []multistep.Option
	if c.Debounce > 0 {
		sessionOpts = append(sessionOpts, multistep.WithDebounce(c.Debounce))
	}
	if c.AutoSaveDelay > 0 {
		sessionOpts = append(sessionOpts, multistep.WithAutoSaveDelay(c.AutoSaveDelay))
	}
	sessionOpts = append(sessionOpts, multistep.WithValidateOnChange(c.ValidateOnChange))

	opts := []Option{WithSessionOptions(sessionOpts...)}
	if c.MaxSessions > 0 {
		opts = append(opts, WithMaxSessions(c.MaxSessions))
	}
	if c.MaxBodyBytes > 0 {
		opts = append(opts, WithMaxBodyBytes(c.MaxBodyBytes))
	}
	return opts
}

type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithTranslator localizes messages. Without one, messages are returned as
// the validator produced them.
func WithTranslator(t *i18n.Translator) Option {
	return func(h *Handler) { h.translator = t }
}

// WithStore enables drafts: sessions auto-save and can be resumed by ID.
func WithStore(store drafts.Store) Option {
	return func(h *Handler) { h.store = store }
}

func WithSubmitter(s multistep.Submitter) Option {
	return func(h *Handler) { h.submitter = s }
}

func WithMaxSessions(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxSessions = n
		}
	}
}

func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

// WithSessionOptions are passed to every new session, before the handler's
// own store, submitter and logger.
func WithSessionOptions(opts ...multistep.Option) Option {
	return func(h *Handler) { h.sessionOpts = append(h.sessionOpts, opts...) }
}

// WithPolicy replaces the markup policy applied to string values.
func WithPolicy(p *bluemonday.Policy) Option {
	return func(h *Handler) {
		if p != nil {
			h.policy = p
		}
	}
}
