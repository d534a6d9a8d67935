package anyhttp

import (
	"io"
	"net/http"
)

// Response is the chainable set of response operations on a [Context]. Emitting operations take an
// optional trailing status; when absent the status set through [Response.Status] is used.
type Response interface {
	JSON(v any, status ...int) error
	Text(s string, status ...int) error
	HTML(s string, status ...int) error
	Blob(b []byte, status ...int) error
	Stream(r io.Reader, status ...int) error
	Send(body any, status ...int) error
	Redirect(url string, status ...int) error

	Status(code int) Response
	Header(name, value string) Response
}

// Emitter is the native half of a [Response]. Each adapter maps these 1:1 onto its framework's
// response API.
type Emitter interface {
	SetHeader(name, value string)
	JSON(status int, v any) error
	Text(status int, s string) error
	HTML(status int, s string) error
	Blob(status int, contentType string, b []byte) error
	Stream(status int, contentType string, r io.Reader) error
	Redirect(status int, url string) error
}

// NewResponse builds the chainable response helpers on top of a native emitter.
func NewResponse(e Emitter) Response {
	return newResponse(e, &pending{status: http.StatusOK})
}

func newResponse(e Emitter, p *pending) *response {
	return &response{emit: e, pending: p}
}

// pending holds the status and content type set before emission. Every stage of one request
// shares it through the request store.
type pending struct {
	status      int
	contentType string
}

type response struct {
	emit Emitter
	*pending
}

func (r *response) pick(status []int, fallback int) int {
	if len(status) > 0 && status[0] > 0 {
		return status[0]
	}

	return fallback
}

func (r *response) Status(code int) Response {
	r.status = code
	return r
}

func (r *response) Header(name, value string) Response {
	if http.CanonicalHeaderKey(name) == "Content-Type" {
		r.contentType = value
	}

	r.emit.SetHeader(name, value)

	return r
}

func (r *response) JSON(v any, status ...int) error {
	return r.emit.JSON(r.pick(status, r.status), v)
}

func (r *response) Text(s string, status ...int) error {
	return r.emit.Text(r.pick(status, r.status), s)
}

func (r *response) HTML(s string, status ...int) error {
	return r.emit.HTML(r.pick(status, r.status), s)
}

func (r *response) Blob(b []byte, status ...int) error {
	return r.emit.Blob(r.pick(status, r.status), r.typeOr("application/octet-stream"), b)
}

func (r *response) Stream(rd io.Reader, status ...int) error {
	return r.emit.Stream(r.pick(status, r.status), r.typeOr("application/octet-stream"), rd)
}

func (r *response) Redirect(url string, status ...int) error {
	return r.emit.Redirect(r.pick(status, http.StatusFound), url)
}

// Send picks the emission path from the payload type.
func (r *response) Send(body any, status ...int) error {
	switch b := body.(type) {
	case string:
		return r.emit.Blob(r.pick(status, r.status), r.typeOr("text/plain; charset=utf-8"), []byte(b))
	case []byte:
		return r.Blob(b, status...)
	case io.Reader:
		return r.Stream(b, status...)
	default:
		return r.JSON(b, status...)
	}
}

func (r *response) typeOr(def string) string {
	if r.contentType != "" {
		return r.contentType
	}

	return def
}
