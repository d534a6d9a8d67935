package anyhttp

import (
	"io"
	"slices"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// ErrNextCalledTwice is returned when a middleware calls next more than once.
var ErrNextCalledTwice = errors.New("next() called multiple times")

// Compose collapses middlewares into one. Middleware provided first runs first. Each one sees a
// continuation that runs the next middleware, or the original continuation after the last one.
//
// Once any middleware emitted a response, further continuations are no-ops that return the result
// of that emission. A middleware that neither calls next nor emits a response does not stop the
// chain: the composer logs a warning and resumes with the following middleware.
func Compose(mws ...Middleware) Middleware {
	stack := slices.Clone(mws)
	if len(stack) == 0 {
		return func(c *Context) error { return c.Next() }
	}

	return func(c *Context) error {
		tracked := &trackedResponse{inner: c.Res}
		cursor, resumed := -1, false

		var dispatch func(i int) error
		dispatch = func(i int) error {
			if tracked.sent {
				return tracked.result
			}

			if i <= cursor {
				return errors.Wrapf(ErrNextCalledTwice, "middleware at position %d", i-1)
			}

			cursor = i
			if i == len(stack) {
				resumed = true
				return c.Next()
			}

			return stack[i](c.derive(tracked, func() error { return dispatch(i + 1) }))
		}

		err := dispatch(0)
		for err == nil && !tracked.sent && !resumed {
			Log(c).Warn("middleware completed without calling next or sending a response",
				zap.Int("position", cursor))
			err = dispatch(cursor + 1)
		}

		if tracked.sent && tracked.result != nil {
			return tracked.result
		}

		return err
	}
}

// trackedResponse decorates a response and records the first emission.
type trackedResponse struct {
	inner  Response
	sent   bool
	result error
}

func (t *trackedResponse) record(err error) error {
	if !t.sent {
		t.sent, t.result = true, err
	}

	return err
}

func (t *trackedResponse) Status(code int) Response {
	t.inner.Status(code)
	return t
}

func (t *trackedResponse) Header(name, value string) Response {
	t.inner.Header(name, value)
	return t
}

func (t *trackedResponse) JSON(v any, status ...int) error {
	return t.record(t.inner.JSON(v, status...))
}

func (t *trackedResponse) Text(s string, status ...int) error {
	return t.record(t.inner.Text(s, status...))
}

func (t *trackedResponse) HTML(s string, status ...int) error {
	return t.record(t.inner.HTML(s, status...))
}

func (t *trackedResponse) Blob(b []byte, status ...int) error {
	return t.record(t.inner.Blob(b, status...))
}

func (t *trackedResponse) Stream(r io.Reader, status ...int) error {
	return t.record(t.inner.Stream(r, status...))
}

func (t *trackedResponse) Send(body any, status ...int) error {
	return t.record(t.inner.Send(body, status...))
}

func (t *trackedResponse) Redirect(url string, status ...int) error {
	return t.record(t.inner.Redirect(url, status...))
}
