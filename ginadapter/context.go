package ginadapter

import (
	"io"
	"net/http"

	"github.com/advdv/anyhttp"
	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewContext adapts a gin request. A nil next makes the continuation inert. Bracketed query keys
// are grouped into objects the way [gin.Context.QueryMap] reads them.
func NewContext(c *gin.Context, next func() error, requestIDHeader string) *anyhttp.Context {
	req := c.Request

	params := make(map[string]string, len(c.Params))
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}

	return anyhttp.NewContext(anyhttp.ContextConfig{
		Framework:       anyhttp.FrameworkGin,
		Context:         req.Context(),
		Method:          req.Method,
		Path:            req.URL.Path,
		Params:          params,
		Query:           anyhttp.NestedQueryFromValues(req.URL.Query()),
		Headers:         req.Header,
		Host:            req.Host,
		Body:            anyhttp.ReaderBody(req.Body),
		Emitter:         emitter{c},
		Store:           store{c},
		Next:            next,
		RequestIDHeader: requestIDHeader,
	})
}

// store exposes the gin context keys.
type store struct{ c *gin.Context }

func (s store) Get(key string) (any, bool) { return s.c.Get(key) }
func (s store) Set(key string, value any)  { s.c.Set(key, value) }

const (
	textContentType = "text/plain; charset=utf-8"
	htmlContentType = "text/html; charset=utf-8"
)

// emitter maps the response operations onto gin's renderers.
type emitter struct{ c *gin.Context }

func (e emitter) SetHeader(name, value string) {
	if e.c.Writer.Written() {
		if logs, ok := e.c.Value(anyhttp.StoreKeyLogger).(*zap.Logger); ok {
			logs.Debug("header dropped, response already written", zap.String("header", name))
		}

		return
	}

	e.c.Header(name, value)
}

func (e emitter) JSON(status int, v any) error {
	return e.render(func() { e.c.JSON(status, v) })
}

func (e emitter) Text(status int, s string) error {
	return e.render(func() { e.c.Data(status, textContentType, []byte(s)) })
}

func (e emitter) HTML(status int, s string) error {
	return e.render(func() { e.c.Data(status, htmlContentType, []byte(s)) })
}

func (e emitter) Blob(status int, contentType string, b []byte) error {
	return e.render(func() { e.c.Data(status, contentType, b) })
}

func (e emitter) Stream(status int, contentType string, r io.Reader) error {
	return e.render(func() { e.c.DataFromReader(status, -1, contentType, r, nil) })
}

func (e emitter) Redirect(status int, url string) error {
	if (status < http.StatusMultipleChoices || status > http.StatusPermanentRedirect) && status != http.StatusCreated {
		return errors.Newf("cannot redirect with status code %d", status)
	}

	e.c.Redirect(status, url)

	return nil
}

// render runs a gin renderer and reports the failure gin records on the context instead of
// returning. The error is taken off the list so it surfaces once, as the emitter's result.
func (e emitter) render(fn func()) error {
	before := len(e.c.Errors)
	fn()

	if len(e.c.Errors) == before {
		return nil
	}

	last := e.c.Errors.Last()
	e.c.Errors = e.c.Errors[:before]

	return last.Err
}
