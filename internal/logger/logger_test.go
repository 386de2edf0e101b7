package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	l, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, WarnLevel, l)

	_, err = ParseLevel("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown log level "loud"`)
}

func TestLogLevel_ToCharmlogLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		level    LogLevel
		expected int
	}{
		{DebugLevel, -4},
		{InfoLevel, 0},
		{WarnLevel, 4},
		{ErrorLevel, 8},
		{LogLevel("unknown"), 0},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, int(tc.level.ToCharmlogLevel()), "level %s", tc.level)
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewLogger(&Config{Level: InfoLevel, Output: &buf})

	l.Debug("hidden")
	l.With("pkg", "example.com/x").Info("generated", "records", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "generated")
	assert.Contains(t, out, "pkg=example.com/x")
	assert.Contains(t, out, "records=2")
}

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewLogger(&Config{Level: DebugLevel, Output: &buf, JSON: true})

	l.Warn("stale", "path", "a.go")

	assert.Contains(t, buf.String(), `"msg":"stale"`)
	assert.Contains(t, buf.String(), `"path":"a.go"`)
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	expected := NewLogger(&Config{Output: &bytes.Buffer{}})
	ctx := ContextWithLogger(t.Context(), expected)
	assert.Equal(t, expected, FromContext(ctx))

	require.NotNil(t, FromContext(t.Context()))
	require.NotNil(t, FromContext(context.WithValue(t.Context(), ctxKey{}, "not a logger")))
}
