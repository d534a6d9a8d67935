package anyhttp_test

import (
	"context"
	"io"
	"net/http"

	"github.com/advdv/anyhttp"
)

// recorder is an in-memory [anyhttp.Emitter].
type recorder struct {
	status      int
	contentType string
	body        []byte
	json        any
	headers     http.Header
	emits       int
	location    string
}

func newRecorder() *recorder { return &recorder{headers: http.Header{}} }

func (r *recorder) SetHeader(name, value string) { r.headers.Set(name, value) }

func (r *recorder) JSON(status int, v any) error {
	r.emits++
	r.status, r.json, r.contentType = status, v, "application/json"

	return nil
}

func (r *recorder) Text(status int, s string) error {
	r.emits++
	r.status, r.body, r.contentType = status, []byte(s), "text/plain"

	return nil
}

func (r *recorder) HTML(status int, s string) error {
	r.emits++
	r.status, r.body, r.contentType = status, []byte(s), "text/html"

	return nil
}

func (r *recorder) Blob(status int, contentType string, b []byte) error {
	r.emits++
	r.status, r.body, r.contentType = status, b, contentType

	return nil
}

func (r *recorder) Stream(status int, contentType string, rd io.Reader) error {
	r.emits++
	b, err := io.ReadAll(rd)
	r.status, r.body, r.contentType = status, b, contentType

	return err
}

func (r *recorder) Redirect(status int, url string) error {
	r.emits++
	r.status, r.location = status, url

	return nil
}

// newTestContext builds a context over a recorder.
func newTestContext(next func() error) (*anyhttp.Context, *recorder) {
	rec := newRecorder()
	c := anyhttp.NewContext(anyhttp.ContextConfig{
		Framework: anyhttp.FrameworkChi,
		Context:   context.Background(),
		Method:    http.MethodGet,
		Path:      "/test",
		Emitter:   rec,
		Next:      next,
	})

	return c, rec
}
