package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups the non-nil errors under "errors". All nil yields an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Field records a form field name.
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

func FormID(id string) slog.Attr {
	return slog.String("form_id", id)
}

// SessionID records a form session identifier. Empty ids yield an empty Attr.
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}

func DraftID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("draft_id", id)
}

// Step records the current step identifier.
func Step(id string) slog.Attr {
	return slog.String("step", id)
}

func ErrorCount(n int) slog.Attr {
	return slog.Int("error_count", n)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func RetryCount(count int) slog.Attr {
	return slog.Int("retry_count", count)
}
