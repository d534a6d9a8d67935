package anyhttp

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultRequestIDHeader is the header that carries the correlation id in both directions.
const DefaultRequestIDHeader = "x-request-id"

// LogOptions configure the logging hook of every adapter.
type LogOptions struct {
	// Logger is the base logger. A no-op logger is used when nil.
	Logger *zap.Logger
	// RequestIDHeader overrides [DefaultRequestIDHeader].
	RequestIDHeader string
}

// Header returns the configured correlation id header in canonical form.
func (o LogOptions) Header() string {
	if h := strings.TrimSpace(o.RequestIDHeader); h != "" {
		return h
	}

	return DefaultRequestIDHeader
}

// Base returns the configured logger or a no-op logger.
func (o LogOptions) Base() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}

	return o.Logger
}

var newUUID = uuid.NewRandom

// GenerateRequestID mints a new correlation id. It is a random UUID, or a hex timestamp joined
// with random hex when no UUID can be generated.
func GenerateRequestID() string {
	if id, err := newUUID(); err == nil {
		return id.String()
	}

	var buf [8]byte
	_, _ = rand.Read(buf[:])

	return strconv.FormatInt(time.Now().UnixMilli(), 16) + "-" + hex.EncodeToString(buf[:])
}

// ResolveRequestID returns the first non-blank candidate, or a freshly generated id.
func ResolveRequestID(candidates ...string) string {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}

	return GenerateRequestID()
}

// StatusLevel maps a response status to the level of its completion record.
func StatusLevel(status int) zapcore.Level {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel
	case status >= 400:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// RequestLogger derives the request-scoped child logger.
func RequestLogger(base *zap.Logger, fw Framework, requestID string) *zap.Logger {
	return base.With(zap.String("framework", string(fw)), zap.String(StoreKeyRequestID, requestID))
}

// LogCompleted emits the terminal record of a request that produced a response.
func LogCompleted(logs *zap.Logger, method, path string, status int, elapsed time.Duration) {
	if ce := logs.Check(StatusLevel(status), "request completed"); ce != nil {
		ce.Write(
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("statusCode", status),
			zap.Float64("responseTimeMs", millis(elapsed)),
		)
	}
}

// LogFailed emits the terminal record of a request whose chain failed.
func LogFailed(logs *zap.Logger, method, path string, elapsed time.Duration, err error) {
	logs.Error("request failed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Float64("responseTimeMs", millis(elapsed)),
		zap.Error(err),
	)
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

// Log returns the request-scoped logger, or a no-op logger when no logging hook ran.
func Log(c *Context) *zap.Logger {
	if logs, ok := Value[*zap.Logger](c, StoreKeyLogger); ok && logs != nil {
		return logs
	}

	return zap.NewNop()
}
