package multistep

import (
	"context"
	"log/slog"
	"time"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/drafts"
	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/validator"
)

const DefaultAutoSaveDelay = 2 * time.Second

// Submission is handed to the Submitter when the whole form is valid.
type Submission struct {
	SessionID   string             `json:"session_id"`
	FormID      string             `json:"form_id"`
	Data        validator.FormData `json:"data"`
	SubmittedAt time.Time          `json:"submitted_at"`
}

// Submitter receives completed forms. An error keeps the session on its last
// step so the user can retry.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, s Submission) error

func (f SubmitterFunc) Submit(ctx context.Context, s Submission) error { return f(ctx, s) }

// Option configures a Session.
type Option func(*Session)

// WithStore enables draft persistence and auto-save.
func WithStore(store drafts.Store) Option {
	return func(s *Session) {
		s.store = store
	}
}

func WithSubmitter(sub Submitter) Option {
	return func(s *Session) {
		s.submitter = sub
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDebounce overrides the per-field validation delay. By default the
// engine's delay (300ms) is used.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.debounceDelay = d
		}
	}
}

// WithAutoSaveDelay sets how long value changes settle before a draft is saved.
func WithAutoSaveDelay(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.autoSaveDelay = d
		}
	}
}

// WithValidateOnChange toggles debounced validation on SetValue.
func WithValidateOnChange(enabled bool) Option {
	return func(s *Session) {
		s.validateOnChange = &enabled
	}
}

// WithSessionID sets the session ID, which is also the draft ID.
func WithSessionID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// WithClock replaces time.Now for draft and submission timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}
