package echoadapter

import (
	"io"

	"github.com/advdv/anyhttp"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NewContext adapts an echo request. A nil next makes the continuation inert, which is what
// terminal controllers get.
func NewContext(c echo.Context, next func() error, requestIDHeader string) *anyhttp.Context {
	req := c.Request()

	names, values := c.ParamNames(), c.ParamValues()
	params := make(map[string]string, len(names))
	for i, name := range names {
		if i < len(values) {
			params[name] = values[i]
		}
	}

	return anyhttp.NewContext(anyhttp.ContextConfig{
		Framework:       anyhttp.FrameworkEcho,
		Context:         req.Context(),
		Method:          req.Method,
		Path:            req.URL.Path,
		Params:          params,
		Query:           anyhttp.QueryFromValues(c.QueryParams()),
		Headers:         req.Header,
		Host:            req.Host,
		Body:            anyhttp.ReaderBody(req.Body),
		Emitter:         emitter{c},
		Store:           store{c},
		Next:            next,
		RequestIDHeader: requestIDHeader,
	})
}

// store exposes echo's per-request values.
type store struct{ c echo.Context }

func (s store) Get(key string) (any, bool) {
	v := s.c.Get(key)
	return v, v != nil
}

func (s store) Set(key string, value any) { s.c.Set(key, value) }

// emitter maps the response operations onto echo's responders.
type emitter struct{ c echo.Context }

func (e emitter) SetHeader(name, value string) {
	res := e.c.Response()
	if res.Committed {
		if logs, ok := e.c.Get(anyhttp.StoreKeyLogger).(*zap.Logger); ok {
			logs.Debug("header dropped, response already committed", zap.String("header", name))
		}

		return
	}

	res.Header().Set(name, value)
}

func (e emitter) JSON(status int, v any) error    { return e.c.JSON(status, v) }
func (e emitter) Text(status int, s string) error { return e.c.String(status, s) }
func (e emitter) HTML(status int, s string) error { return e.c.HTML(status, s) }

func (e emitter) Blob(status int, contentType string, b []byte) error {
	return e.c.Blob(status, contentType, b)
}

func (e emitter) Stream(status int, contentType string, r io.Reader) error {
	return e.c.Stream(status, contentType, r)
}

func (e emitter) Redirect(status int, url string) error { return e.c.Redirect(status, url) }
