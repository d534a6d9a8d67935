package chiadapter

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/advdv/anyhttp"
	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NewContext adapts a chi request. The request must have passed the lifecycle middleware that
// [New] installs, which carries the request store. A nil next makes the continuation inert.
func NewContext(w http.ResponseWriter, r *http.Request, next func() error, requestIDHeader string) *anyhttp.Context {
	var params map[string]string
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		params = make(map[string]string, len(rctx.URLParams.Keys))
		for i, key := range rctx.URLParams.Keys {
			if i < len(rctx.URLParams.Values) {
				params[key] = rctx.URLParams.Values[i]
			}
		}
	}

	store := StoreFrom(r.Context())

	return anyhttp.NewContext(anyhttp.ContextConfig{
		Framework:       anyhttp.FrameworkChi,
		Context:         r.Context(),
		Method:          r.Method,
		Path:            r.URL.Path,
		Params:          params,
		Query:           anyhttp.QueryFromValues(r.URL.Query()),
		Headers:         r.Header,
		Host:            r.Host,
		Body:            anyhttp.ReaderBody(r.Body),
		Emitter:         emitter{w: w, r: r, store: store},
		Store:           store,
		Next:            next,
		RequestIDHeader: requestIDHeader,
	})
}

// emitter writes responses onto the (buffered) response writer.
type emitter struct {
	w     http.ResponseWriter
	r     *http.Request
	store anyhttp.Store
}

func (e emitter) SetHeader(name, value string) {
	if wr, ok := e.w.(interface{ Written() bool }); ok && wr.Written() {
		loggerOf(e.store).Debug("header dropped, response already written", zap.String("header", name))

		return
	}

	e.w.Header().Set(name, value)
}

func (e emitter) JSON(status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encode json response")
	}

	return e.Blob(status, "application/json; charset=utf-8", append(b, '\n'))
}

func (e emitter) Text(status int, s string) error {
	return e.Blob(status, "text/plain; charset=utf-8", []byte(s))
}

func (e emitter) HTML(status int, s string) error {
	return e.Blob(status, "text/html; charset=utf-8", []byte(s))
}

func (e emitter) Blob(status int, contentType string, b []byte) error {
	return e.Stream(status, contentType, bytes.NewReader(b))
}

func (e emitter) Stream(status int, contentType string, r io.Reader) error {
	e.w.Header().Set("Content-Type", contentType)
	e.w.WriteHeader(status)

	if _, err := io.Copy(e.w, r); err != nil {
		return errors.Wrap(err, "write response body")
	}

	return nil
}

func (e emitter) Redirect(status int, url string) error {
	http.Redirect(e.w, e.r, url, status)
	return nil
}
