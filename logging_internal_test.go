package anyhttp

import (
	"regexp"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGenerateRequestID(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	require.NotEqual(t, a, b)

	_, err := uuid.Parse(a)
	require.NoError(t, err)

	t.Run("fallback without uuid", func(t *testing.T) {
		orig := newUUID
		t.Cleanup(func() { newUUID = orig })
		newUUID = func() (uuid.UUID, error) { return uuid.Nil, errors.New("no entropy") }

		require.Regexp(t, regexp.MustCompile(`^[0-9a-f]+-[0-9a-f]{16}$`), GenerateRequestID())
	})
}

func TestResolveRequestID(t *testing.T) {
	require.Equal(t, "abc-123", ResolveRequestID("", "  abc-123 ", "native"))
	require.Equal(t, "native", ResolveRequestID("", "native"))
	require.NotEmpty(t, ResolveRequestID("", " "))
}

func TestStatusLevel(t *testing.T) {
	for status, want := range map[int]zapcore.Level{
		200: zapcore.InfoLevel, 302: zapcore.InfoLevel, 400: zapcore.WarnLevel,
		404: zapcore.WarnLevel, 499: zapcore.WarnLevel, 500: zapcore.ErrorLevel, 503: zapcore.ErrorLevel,
	} {
		assert.Equal(t, want, StatusLevel(status), "status %d", status)
	}
}

func TestTerminalRecords(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := zap.New(core)

	LogCompleted(l, "GET", "/x", 404, 1500*time.Microsecond)
	LogFailed(l, "GET", "/x", time.Millisecond, errors.New("boom"))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "request completed", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, int64(404), entries[0].ContextMap()["statusCode"])
	assert.InDelta(t, 1.5, entries[0].ContextMap()["responseTimeMs"], 0.001)

	assert.Equal(t, "request failed", entries[1].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestLogOptions(t *testing.T) {
	require.Equal(t, DefaultRequestIDHeader, LogOptions{}.Header())
	require.Equal(t, "X-Correlation-Id", LogOptions{RequestIDHeader: "X-Correlation-Id"}.Header())
	require.NotNil(t, LogOptions{}.Base())
}
