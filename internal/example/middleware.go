// Package example implements example routes and middlewares in an outside package.
package example

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/advdv/anyhttp"
)

// store keys set by the middlewares.
const (
	keyUserAgent = "userAgent"
	keyStartedAt = "requestStartedAt"
)

// EnsureJSON short-circuits requests that do not send JSON.
func EnsureJSON(c *anyhttp.Context) error {
	if !strings.Contains(c.Req.Header("content-type"), "application/json") {
		return c.Res.Status(http.StatusUnsupportedMediaType).JSON(map[string]string{
			"message": "Send JSON when calling this endpoint.",
		})
	}

	return c.Next()
}

// CaptureRequestDetails enriches the context with request-scoped data.
func CaptureRequestDetails(c *anyhttp.Context) error {
	ua := c.Req.Header("user-agent")
	if ua == "" {
		ua = "unknown"
	}

	c.Set(keyUserAgent, ua)
	c.Set(keyStartedAt, time.Now())

	return c.Next()
}

// ApplyResponseTiming sets x-response-time to the time since the request details were captured,
// right before the controller runs.
func ApplyResponseTiming(c *anyhttp.Context) error {
	started, ok := anyhttp.Value[time.Time](c, keyStartedAt)
	if !ok {
		started = time.Now()
	}

	c.Res.Header("x-response-time", strconv.FormatInt(time.Since(started).Milliseconds(), 10)+"ms")

	return c.Next()
}

// UserAgent returns the user agent captured by [CaptureRequestDetails].
func UserAgent(c *anyhttp.Context) string {
	if ua, ok := anyhttp.Value[string](c, keyUserAgent); ok {
		return ua
	}

	return "unknown"
}
