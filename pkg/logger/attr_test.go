package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestFormAttrs(t *testing.T) {
	testCases := []struct {
		attr slog.Attr
		key  string
		want any
	}{
		{logger.Component("engine"), "component", "engine"},
		{logger.Event("step.next"), "event", "step.next"},
		{logger.Field("email"), "field", "email"},
		{logger.FormID("visa"), "form_id", "visa"},
		{logger.SessionID("s1"), "session_id", "s1"},
		{logger.DraftID("d1"), "draft_id", "d1"},
		{logger.Step("personal"), "step", "personal"},
		{logger.ErrorCount(3), "error_count", int64(3)},
		{logger.RetryCount(2), "retry_count", int64(2)},
		{logger.Duration(time.Second), "duration", time.Second},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.key, tc.attr.Key)
		assert.Equal(t, tc.want, tc.attr.Value.Any(), tc.key)
	}
}

func TestEmptyIDs(t *testing.T) {
	assert.True(t, logger.SessionID("").Equal(slog.Attr{}))
	assert.True(t, logger.DraftID("").Equal(slog.Attr{}))
}
